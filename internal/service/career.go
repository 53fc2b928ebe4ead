package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
	"github.com/Renan-Hawladar/OrbitAI/internal/repository"
)

// MaxAnalysisPaths is the most career paths an analyze run may return; a
// search returns at most one. The prompt asks for these counts, but the
// service clamps regardless — the model over-returning must not leak past
// this layer.
const MaxAnalysisPaths = 5

// CareerAdvisor generates career paths from a profile. Implemented by
// gemini.Client in production and by mocks in tests.
type CareerAdvisor interface {
	AnalyzeCareerPaths(ctx context.Context, profile *model.Profile) ([]model.CareerPath, error)
	SearchCareerPath(ctx context.Context, profile *model.Profile, careerQuery string) ([]model.CareerPath, error)
}

// CareerService orchestrates recommendation requests: completeness gating,
// the advisor call, clamping, and history persistence.
type CareerService struct {
	profiles repository.ProfileRepository
	analyses repository.AnalysisRepository
	advisor  CareerAdvisor
	logger   *slog.Logger
}

// NewCareerService creates a CareerService.
func NewCareerService(
	profiles repository.ProfileRepository,
	analyses repository.AnalysisRepository,
	advisor CareerAdvisor,
	logger *slog.Logger,
) *CareerService {
	return &CareerService{
		profiles: profiles,
		analyses: analyses,
		advisor:  advisor,
		logger:   logger,
	}
}

// Analyze runs a full-profile analysis and records it in history.
// Returns up to MaxAnalysisPaths paths; an empty slice is a valid outcome
// ("no careers matched"), not an error.
func (s *CareerService) Analyze(ctx context.Context, userID string) ([]model.CareerPath, error) {
	profile, err := s.completeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	paths, err := s.advisor.AnalyzeCareerPaths(ctx, profile)
	if err != nil {
		return nil, err
	}

	if len(paths) > MaxAnalysisPaths {
		s.logger.Warn("advisor over-returned, clamping",
			slog.Int("got", len(paths)),
			slog.Int("max", MaxAnalysisPaths),
		)
		paths = paths[:MaxAnalysisPaths]
	}

	// History is best-effort: the user already has their result, so a
	// failed history write is logged, not returned.
	analysis := &model.Analysis{UserID: userID, CareerPaths: paths}
	if err := s.analyses.Create(ctx, analysis); err != nil {
		s.logger.Error("failed to record analysis",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("career analysis completed",
		slog.String("userID", userID),
		slog.Int("paths", len(paths)),
	)

	return paths, nil
}

// Search asks for the single best path toward the named career. Returns an
// empty slice when nothing matched. Search results are not recorded in
// history — only full analyses are.
func (s *CareerService) Search(ctx context.Context, userID, careerQuery string) ([]model.CareerPath, error) {
	careerQuery = strings.TrimSpace(careerQuery)
	if careerQuery == "" {
		return nil, apperror.ValidationFailed("career_query", "career query is required")
	}

	profile, err := s.completeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	paths, err := s.advisor.SearchCareerPath(ctx, profile, careerQuery)
	if err != nil {
		return nil, err
	}

	if len(paths) > 1 {
		paths = paths[:1]
	}

	s.logger.Info("career search completed",
		slog.String("userID", userID),
		slog.Int("paths", len(paths)),
	)

	return paths, nil
}

// History returns the user's stored analyses, newest first.
func (s *CareerService) History(ctx context.Context, userID string) ([]model.Analysis, error) {
	analyses, err := s.analyses.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/career: listing analyses for user %s: %w", userID, err)
	}
	return analyses, nil
}

// completeProfile fetches the profile and enforces the completeness gate:
// every recommendation needs name, degree, qualifications, skills, and
// extracted CV text.
func (s *CareerService) completeProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !profile.Complete() {
		return nil, apperror.ValidationFailed("profile",
			"profile incomplete, please fill all required fields including CV upload")
	}

	return profile, nil
}
