package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/Renan-Hawladar/OrbitAI/internal/auth"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
	"github.com/Renan-Hawladar/OrbitAI/internal/repository/sqlite"
	"github.com/Renan-Hawladar/OrbitAI/internal/service"
)

// testEnv wires real services over an in-memory database so handler tests
// exercise the full decode → service → encode path. Only the AI advisor is
// mocked.
type testEnv struct {
	auths    *service.AuthService
	profiles *service.ProfileService
	careers  *service.CareerService
	tokens   *auth.TokenService
	advisor  *mockAdvisor
	db       *sqlite.DB
}

type mockAdvisor struct {
	Paths     []model.CareerPath
	Err       error
	LastQuery string
	Calls     int
}

func (m *mockAdvisor) AnalyzeCareerPaths(_ context.Context, _ *model.Profile) ([]model.CareerPath, error) {
	m.Calls++
	return m.Paths, m.Err
}

func (m *mockAdvisor) SearchCareerPath(_ context.Context, _ *model.Profile, careerQuery string) ([]model.CareerPath, error) {
	m.Calls++
	m.LastQuery = careerQuery
	return m.Paths, m.Err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := testLogger()

	db, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("opening in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens, err := auth.NewTokenService("test-secret-test-secret-test-secret")
	if err != nil {
		t.Fatalf("creating token service: %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(4)

	advisor := &mockAdvisor{}

	return &testEnv{
		auths:    service.NewAuthService(db, db, tokens, passwords, logger),
		profiles: service.NewProfileService(db, logger),
		careers:  service.NewCareerService(db, db, advisor, logger),
		tokens:   tokens,
		advisor:  advisor,
		db:       db,
	}
}

// registerUser creates an account through the service and returns its user
// ID and a valid bearer token.
func (env *testEnv) registerUser(t *testing.T, email string) (userID, token string) {
	t.Helper()
	result, err := env.auths.Register(context.Background(), email, "password123")
	if err != nil {
		t.Fatalf("registering test user: %v", err)
	}
	return result.User.ID, result.Token
}

// completeProfile fills in every required field so recommendation calls
// pass the completeness gate.
func (env *testEnv) completeProfile(t *testing.T, userID string) {
	t.Helper()
	err := env.db.Save(context.Background(), &model.Profile{
		UserID:         userID,
		Name:           "Alice",
		Degree:         "BSc Computer Science",
		Qualifications: "AWS SAA",
		Skills:         "Go, SQL",
		CVPDFBase64:    "JVBERi0xLjQ=",
		CVText:         "five years as a backend engineer",
	})
	if err != nil {
		t.Fatalf("saving test profile: %v", err)
	}
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func makePaths(n int) []model.CareerPath {
	paths := make([]model.CareerPath, n)
	for i := range paths {
		paths[i] = model.CareerPath{
			CareerPath:        "Backend Engineer",
			SuitabilityReason: "matches existing skills",
			RequiredSkills:    []string{"Go"},
			Roadmap:           []model.RoadmapStep{{Step: 1, Action: "Learn Go", Details: "Work through real projects"}},
		}
	}
	return paths
}
