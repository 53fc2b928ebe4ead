package client

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

// ErrSuperseded marks a response that arrived after a newer request was
// issued for the same view. The caller drops it — the newer request's
// response is the one that gets applied.
var ErrSuperseded = errors.New("response superseded by a newer request")

// ErrEmptyQuery rejects a blank search before any network traffic.
var ErrEmptyQuery = errors.New("career query is required")

// Requester serializes recommendation results per view. Each issued
// request takes a sequence number; when the response lands, it is applied
// only if no newer request has been issued since. Out-of-order responses
// on a slow network can therefore never overwrite fresher results.
type Requester struct {
	api *Client

	mu         sync.Mutex
	analyzeSeq uint64
	searchSeq  uint64
}

// NewRequester creates a Requester over the API client.
func NewRequester(api *Client) *Requester {
	return &Requester{api: api}
}

// Analyze issues a full-profile analysis. Returns ErrSuperseded when a
// newer Analyze was started before this one finished.
func (r *Requester) Analyze(ctx context.Context) ([]model.CareerPath, error) {
	seq := r.nextAnalyze()

	paths, err := r.api.Analyze(ctx)

	if !r.analyzeCurrent(seq) {
		return nil, ErrSuperseded
	}
	return paths, err
}

// Search issues a named-career search. A blank query never reaches the
// network.
func (r *Requester) Search(ctx context.Context, careerQuery string) ([]model.CareerPath, error) {
	if strings.TrimSpace(careerQuery) == "" {
		return nil, ErrEmptyQuery
	}

	seq := r.nextSearch()

	paths, err := r.api.Search(ctx, careerQuery)

	if !r.searchCurrent(seq) {
		return nil, ErrSuperseded
	}
	return paths, err
}

func (r *Requester) nextAnalyze() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.analyzeSeq++
	return r.analyzeSeq
}

func (r *Requester) analyzeCurrent(seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return seq == r.analyzeSeq
}

func (r *Requester) nextSearch() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searchSeq++
	return r.searchSeq
}

func (r *Requester) searchCurrent(seq uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return seq == r.searchSeq
}
