package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/auth"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
	"github.com/Renan-Hawladar/OrbitAI/internal/service"
)

// CareerHandler serves the recommendation endpoints and the analyses
// history.
type CareerHandler struct {
	careers *service.CareerService
	logger  *slog.Logger
}

// NewCareerHandler creates a CareerHandler.
func NewCareerHandler(careers *service.CareerService, logger *slog.Logger) *CareerHandler {
	return &CareerHandler{careers: careers, logger: logger}
}

type searchCareerRequest struct {
	CareerQuery string `json:"career_query"`
}

// careerPathsResponse wraps the result list so an empty outcome is an
// explicit `{"career_paths": []}` rather than a bare `null`.
type careerPathsResponse struct {
	CareerPaths []model.CareerPath `json:"career_paths"`
}

// HandleAnalyze runs a full-profile analysis: up to five ranked paths.
//
// HTTP: POST /api/analyze-career
func (h *CareerHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	paths, err := h.careers.Analyze(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, careerPathsResponse{CareerPaths: nonNil(paths)})
}

// HandleSearch evaluates the profile against a specific named career:
// zero or one path.
//
// HTTP: POST /api/search-career
func (h *CareerHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	var req searchCareerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON in request body"))
		return
	}

	paths, err := h.careers.Search(r.Context(), userID, req.CareerQuery)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, careerPathsResponse{CareerPaths: nonNil(paths)})
}

// HandleHistory returns the caller's stored analyses, newest first.
//
// HTTP: GET /api/analyses
func (h *CareerHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	analyses, err := h.careers.History(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	if analyses == nil {
		analyses = []model.Analysis{}
	}
	writeJSON(w, http.StatusOK, analyses)
}

func nonNil(paths []model.CareerPath) []model.CareerPath {
	if paths == nil {
		return []model.CareerPath{}
	}
	return paths
}
