package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

// APIError is a failure the backend reported, carrying its machine-readable
// kind and human message. The message is what the UI shows; the kind is for
// programmatic checks.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsUpstream reports whether the failure came from the AI provider and is
// worth retrying.
func (e *APIError) IsUpstream() bool {
	return e.Kind == "upstream_error" || e.Kind == "malformed_upstream"
}

// Client calls the OrbitAI API. Every authenticated request carries the
// session token as a bearer header. Any 401, from any endpoint, clears the
// session and fires OnSessionExpired exactly once per occurrence — the
// global-logout rule.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions *SessionManager

	// OnSessionExpired runs after a 401 has cleared the session. Typically
	// wired to Router.ForceLogout.
	OnSessionExpired func()
}

// New creates a Client for the API at baseURL.
func New(baseURL string, sessions *SessionManager) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 90 * time.Second},
		sessions: sessions,
	}
}

// tokenResponse mirrors the backend's authentication response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Email       string `json:"email"`
}

// Register creates an account and logs the session in.
func (c *Client) Register(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/auth/register", email, password)
}

// Login authenticates an existing account and logs the session in.
func (c *Client) Login(ctx context.Context, email, password string) error {
	return c.authenticate(ctx, "/api/auth/login", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) error {
	var res tokenResponse
	err := c.do(ctx, http.MethodPost, path, map[string]string{
		"email":    email,
		"password": password,
	}, &res)
	if err != nil {
		return err
	}
	return c.sessions.Login(res.Email, res.AccessToken)
}

// GetProfile fetches the caller's profile.
func (c *Client) GetProfile(ctx context.Context) (*model.Profile, error) {
	var profile model.Profile
	if err := c.do(ctx, http.MethodGet, "/api/profile", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile submits a profile form and returns the saved profile,
// including the server-extracted CV text.
func (c *Client) UpdateProfile(ctx context.Context, form *ProfileForm) (*model.Profile, error) {
	var profile model.Profile
	if err := c.do(ctx, http.MethodPut, "/api/profile", form.payload(), &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

type careerPathsResponse struct {
	CareerPaths []model.CareerPath `json:"career_paths"`
}

// Analyze requests a full-profile analysis: up to five ranked paths. An
// empty slice means the analysis genuinely found nothing.
func (c *Client) Analyze(ctx context.Context) ([]model.CareerPath, error) {
	var res careerPathsResponse
	if err := c.do(ctx, http.MethodPost, "/api/analyze-career", struct{}{}, &res); err != nil {
		return nil, err
	}
	return res.CareerPaths, nil
}

// Search requests the single best path toward a named career. Zero paths
// means no match, not an error.
func (c *Client) Search(ctx context.Context, careerQuery string) ([]model.CareerPath, error) {
	var res careerPathsResponse
	err := c.do(ctx, http.MethodPost, "/api/search-career", map[string]string{
		"career_query": careerQuery,
	}, &res)
	if err != nil {
		return nil, err
	}
	return res.CareerPaths, nil
}

// History fetches the stored analyses, newest first.
func (c *Client) History(ctx context.Context) ([]model.Analysis, error) {
	var analyses []model.Analysis
	if err := c.do(ctx, http.MethodGet, "/api/analyses", nil, &analyses); err != nil {
		return nil, err
	}
	return analyses, nil
}

// do runs one request: encode body, attach bearer token, decode response
// or error. All the cross-cutting behaviour lives here so every endpoint
// gets it for free.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encoding request: %w", err)
		}
		buf = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("client: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if session := c.sessions.Current(); session != nil {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		// Global logout: the session is dead no matter which endpoint
		// said so.
		c.sessions.Logout()
		if c.OnSessionExpired != nil {
			c.OnSessionExpired()
		}
	}

	if res.StatusCode >= 400 {
		return decodeAPIError(res)
	}

	if out != nil {
		if err := json.NewDecoder(res.Body).Decode(out); err != nil {
			return fmt.Errorf("client: decoding response: %w", err)
		}
	}
	return nil
}

// decodeAPIError surfaces the backend's message when it sent one, with a
// generic fallback when the body is not the standard error shape.
func decodeAPIError(res *http.Response) error {
	apiErr := &APIError{
		StatusCode: res.StatusCode,
		Kind:       "unknown",
		Message:    fmt.Sprintf("request failed with status %d", res.StatusCode),
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err == nil && json.Unmarshal(data, &body) == nil && body.Message != "" {
		apiErr.Kind = body.Error
		apiErr.Message = body.Message
	}

	return apiErr
}
