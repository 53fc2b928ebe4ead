package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

// Hand-written in-memory mocks for the repository interfaces. The services
// only ever see the interfaces, so these swap in transparently.

type mockUserRepo struct {
	users  map[string]*model.User // keyed by ID
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Conflict("email already registered")
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) UpsertGoogleUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.GoogleID == user.GoogleID || u.Email == user.Email {
			u.Email = user.Email
			u.GoogleID = user.GoogleID
			user.ID = u.ID
			return nil
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

type mockProfileRepo struct {
	profiles map[string]*model.Profile // keyed by userID
	saveErr  error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (*model.Profile, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return nil, apperror.NotFound("profile", userID)
	}
	result := *p
	return &result, nil
}

func (m *mockProfileRepo) Save(_ context.Context, profile *model.Profile) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if profile.ID == "" {
		profile.ID = "profile-" + profile.UserID
	}
	stored := *profile
	m.profiles[profile.UserID] = &stored
	return nil
}

type mockAnalysisRepo struct {
	analyses  []model.Analysis
	createErr error
}

func (m *mockAnalysisRepo) Create(_ context.Context, analysis *model.Analysis) error {
	if m.createErr != nil {
		return m.createErr
	}
	analysis.ID = fmt.Sprintf("analysis-%d", len(m.analyses)+1)
	m.analyses = append(m.analyses, *analysis)
	return nil
}

func (m *mockAnalysisRepo) ListByUserID(_ context.Context, userID string) ([]model.Analysis, error) {
	var result []model.Analysis
	for i := len(m.analyses) - 1; i >= 0; i-- {
		if m.analyses[i].UserID == userID {
			result = append(result, m.analyses[i])
		}
	}
	return result, nil
}

// mockAdvisor lets tests script the career advisor's answer.
type mockAdvisor struct {
	paths     []model.CareerPath
	err       error
	lastQuery string
	calls     int
}

func (m *mockAdvisor) AnalyzeCareerPaths(_ context.Context, _ *model.Profile) ([]model.CareerPath, error) {
	m.calls++
	return m.paths, m.err
}

func (m *mockAdvisor) SearchCareerPath(_ context.Context, _ *model.Profile, careerQuery string) ([]model.CareerPath, error) {
	m.calls++
	m.lastQuery = careerQuery
	return m.paths, m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// completeTestProfile stores a complete profile so recommendation calls
// pass the gate.
func completeTestProfile(t *testing.T, profiles *mockProfileRepo, userID string) {
	t.Helper()
	if err := profiles.Save(context.Background(), &model.Profile{
		UserID:         userID,
		Name:           "Alice",
		Degree:         "BSc",
		Qualifications: "AWS SAA",
		Skills:         "Go",
		CVPDFBase64:    "JVBERi0xLjQ=",
		CVText:         "experienced engineer",
	}); err != nil {
		t.Fatalf("saving test profile: %v", err)
	}
}

func makePaths(n int) []model.CareerPath {
	paths := make([]model.CareerPath, n)
	for i := range paths {
		paths[i] = model.CareerPath{
			CareerPath:        fmt.Sprintf("Career %d", i+1),
			SuitabilityReason: "fits",
			RequiredSkills:    []string{"Go"},
			Roadmap:           []model.RoadmapStep{{Step: 1, Action: "learn", Details: "stuff"}},
		}
	}
	return paths
}
