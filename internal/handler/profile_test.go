package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Renan-Hawladar/OrbitAI/internal/auth"
	"github.com/Renan-Hawladar/OrbitAI/internal/handler"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

func TestProfileHandler_Get(t *testing.T) {
	env := newTestEnv(t)
	h := handler.NewProfileHandler(env.profiles, testLogger())
	protected := auth.RequireAuth(env.tokens)(http.HandlerFunc(h.HandleGet))

	t.Run("first read returns an empty profile, not 404", func(t *testing.T) {
		_, token := env.registerUser(t, "fresh@example.com")

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var profile model.Profile
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&profile))
		assert.Empty(t, profile.Name)
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		var res handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "unauthorized", res.Error)
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestProfileHandler_Update(t *testing.T) {
	env := newTestEnv(t)
	h := handler.NewProfileHandler(env.profiles, testLogger())
	protected := auth.RequireAuth(env.tokens)(http.HandlerFunc(h.HandleUpdate))

	t.Run("partial update leaves omitted fields alone", func(t *testing.T) {
		userID, token := env.registerUser(t, "edit@example.com")
		env.completeProfile(t, userID)

		req := jsonRequest(http.MethodPut, "/api/profile",
			map[string]string{"name": "Alice B."})
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var profile model.Profile
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&profile))
		assert.Equal(t, "Alice B.", profile.Name)
		assert.Equal(t, "BSc Computer Science", profile.Degree, "omitted field keeps its value")
	})

	t.Run("present-but-empty field is cleared", func(t *testing.T) {
		userID, token := env.registerUser(t, "clear@example.com")
		env.completeProfile(t, userID)

		req := jsonRequest(http.MethodPut, "/api/profile",
			map[string]string{"skills": ""})
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var profile model.Profile
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&profile))
		assert.Empty(t, profile.Skills)
	})

	t.Run("rejected photo returns 400 with a field message", func(t *testing.T) {
		_, token := env.registerUser(t, "photo@example.com")

		req := jsonRequest(http.MethodPut, "/api/profile",
			map[string]string{"profile_picture_base64": "bm90IGFuIGltYWdl"})
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var res handler.ErrorResponse
		assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
		assert.Equal(t, "validation_error", res.Error)
	})

	t.Run("non-PDF CV returns 400", func(t *testing.T) {
		_, token := env.registerUser(t, "cv@example.com")

		req := jsonRequest(http.MethodPut, "/api/profile",
			map[string]string{"cv_pdf_base64": "bm90IGEgcGRm"})
		req.Header.Set("Authorization", "Bearer "+token)
		rr := httptest.NewRecorder()

		protected.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
