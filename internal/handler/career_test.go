package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/auth"
	"github.com/Renan-Hawladar/OrbitAI/internal/handler"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

func TestCareerHandler_Analyze(t *testing.T) {
	env := newTestEnv(t)
	h := handler.NewCareerHandler(env.careers, testLogger())
	protected := auth.RequireAuth(env.tokens)(http.HandlerFunc(h.HandleAnalyze))

	t.Run("complete profile gets ranked paths", func(t *testing.T) {
		userID, token := env.registerUser(t, "ok@example.com")
		env.completeProfile(t, userID)
		env.advisor.Paths = makePaths(3)

		req := httptest.NewRequest(http.MethodPost, "/api/analyze-career", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var res struct {
			CareerPaths []model.CareerPath `json:"career_paths"`
		}
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Len(t, res.CareerPaths, 3)
	})

	t.Run("incomplete profile returns 400 before calling the advisor", func(t *testing.T) {
		_, token := env.registerUser(t, "incomplete@example.com")
		env.advisor.Calls = 0

		req := httptest.NewRequest(http.MethodPost, "/api/analyze-career", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Zero(t, env.advisor.Calls)
	})

	t.Run("provider outage returns 502 upstream_error", func(t *testing.T) {
		userID, token := env.registerUser(t, "outage@example.com")
		env.completeProfile(t, userID)
		env.advisor.Err = apperror.Upstream("the AI service is busy due to high demand, please retry")
		defer func() { env.advisor.Err = nil }()

		req := httptest.NewRequest(http.MethodPost, "/api/analyze-career", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)

		var res handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "upstream_error", res.Error)
	})

	t.Run("schema drift keeps its own label", func(t *testing.T) {
		userID, token := env.registerUser(t, "drift@example.com")
		env.completeProfile(t, userID)
		env.advisor.Err = apperror.MalformedUpstream("career path entry missing suitability_reason")
		defer func() { env.advisor.Err = nil }()

		req := httptest.NewRequest(http.MethodPost, "/api/analyze-career", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadGateway, rr.Code)

		var res handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "malformed_upstream", res.Error)
	})
}

func TestCareerHandler_Search(t *testing.T) {
	env := newTestEnv(t)
	h := handler.NewCareerHandler(env.careers, testLogger())
	protected := auth.RequireAuth(env.tokens)(http.HandlerFunc(h.HandleSearch))

	t.Run("named career gets a single path", func(t *testing.T) {
		userID, token := env.registerUser(t, "search@example.com")
		env.completeProfile(t, userID)
		env.advisor.Paths = makePaths(1)

		req := jsonRequest(http.MethodPost, "/api/search-career",
			map[string]string{"career_query": "Data Engineer"})
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Data Engineer", env.advisor.LastQuery)
	})

	t.Run("no match is 200 with an empty list, not an error", func(t *testing.T) {
		userID, token := env.registerUser(t, "nomatch@example.com")
		env.completeProfile(t, userID)
		env.advisor.Paths = nil

		req := jsonRequest(http.MethodPost, "/api/search-career",
			map[string]string{"career_query": "Astronaut"})
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"career_paths":[]}`, rr.Body.String())
	})

	t.Run("blank query returns 400", func(t *testing.T) {
		userID, token := env.registerUser(t, "blank@example.com")
		env.completeProfile(t, userID)

		req := jsonRequest(http.MethodPost, "/api/search-career",
			map[string]string{"career_query": "   "})
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCareerHandler_History(t *testing.T) {
	env := newTestEnv(t)
	careers := handler.NewCareerHandler(env.careers, testLogger())
	analyze := auth.RequireAuth(env.tokens)(http.HandlerFunc(careers.HandleAnalyze))
	history := auth.RequireAuth(env.tokens)(http.HandlerFunc(careers.HandleHistory))

	t.Run("empty history is an empty list", func(t *testing.T) {
		_, token := env.registerUser(t, "empty@example.com")

		req := httptest.NewRequest(http.MethodGet, "/api/analyses", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		history.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("analyses show up in history, searches do not", func(t *testing.T) {
		userID, token := env.registerUser(t, "hist@example.com")
		env.completeProfile(t, userID)
		env.advisor.Paths = makePaths(2)

		run := httptest.NewRequest(http.MethodPost, "/api/analyze-career", nil)
		run.Header.Set("Authorization", "Bearer "+token)
		analyze.ServeHTTP(httptest.NewRecorder(), run)

		req := httptest.NewRequest(http.MethodGet, "/api/analyses", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		history.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var analyses []model.Analysis
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&analyses))
		assert.Len(t, analyses, 1)
		assert.Len(t, analyses[0].CareerPaths, 2)
	})
}
