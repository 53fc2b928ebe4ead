// Package handler contains the HTTP layer: request decoding, response
// encoding, and the error-to-status mapping. Handlers never contain
// business rules; they call into the service layer and translate.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
)

// ErrorResponse is the standard error shape returned by every endpoint,
// so clients can always read `error` and `message` regardless of status.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable kind, e.g. "validation_error"
	Message string `json:"message"` // human-readable description
}

// writeJSON sends a JSON response. Headers and status go first; once the
// body starts, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status in one place. The
// service layer stays protocol-agnostic; only this function knows that
// ErrUpstream means 502.
//
// Note the ordering: MalformedUpstream wraps nothing Upstream-related, but
// it still must be checked explicitly so schema drift keeps its own label
// instead of collapsing into a generic upstream failure.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
			errorType = "unauthorized"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		case errors.Is(err, apperror.ErrMalformedUpstream):
			status = http.StatusBadGateway
			errorType = "malformed_upstream"
		case errors.Is(err, apperror.ErrUpstream):
			status = http.StatusBadGateway
			errorType = "upstream_error"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
		})
		return
	}

	// Unknown error: generic 500. The raw message stays server-side — it
	// may contain SQL or file paths.
	slog.Error("unhandled error in HTTP layer", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "an unexpected error occurred",
	})
}
