package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/auth"
	"github.com/Renan-Hawladar/OrbitAI/internal/service"
)

// ProfileHandler serves the career profile. Both routes sit behind
// RequireAuth, so the user ID always comes from the request context.
type ProfileHandler struct {
	profiles *service.ProfileService
	logger   *slog.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(profiles *service.ProfileService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: logger}
}

// updateProfileRequest uses pointer fields so a PUT can distinguish "field
// absent, leave it alone" from "field present and empty, clear it". The
// JSON keys match what GET /api/profile returns.
type updateProfileRequest struct {
	Name           *string `json:"name"`
	Degree         *string `json:"degree"`
	Qualifications *string `json:"qualifications"`
	Skills         *string `json:"skills"`
	PhotoBase64    *string `json:"profile_picture_base64"`
	CVPDFBase64    *string `json:"cv_pdf_base64"`
}

// HandleGet returns the caller's profile, creating an empty one on first
// read.
//
// HTTP: GET /api/profile
func (h *ProfileHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	profile, err := h.profiles.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// HandleUpdate applies a partial update to the caller's profile. Uploads
// are validated server-side; the response is the saved profile, including
// freshly extracted CV text.
//
// HTTP: PUT /api/profile
func (h *ProfileHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("valid authentication required"))
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON in request body"))
		return
	}

	profile, err := h.profiles.Update(r.Context(), userID, service.ProfileUpdate{
		Name:           req.Name,
		Degree:         req.Degree,
		Qualifications: req.Qualifications,
		Skills:         req.Skills,
		PhotoBase64:    req.PhotoBase64,
		CVPDFBase64:    req.CVPDFBase64,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.logger.Info("profile updated", slog.String("userID", userID))
	writeJSON(w, http.StatusOK, profile)
}
