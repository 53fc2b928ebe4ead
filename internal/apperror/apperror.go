// Package apperror defines the application's error taxonomy.
//
// Services return these typed errors; the HTTP layer maps them to status
// codes in one place (handler/response.go). The kinds mirror how failures
// are surfaced to the user:
//
//   - Validation   → caught before any real work, field-local, 400
//   - Unauthorized → bad credentials or bad/expired token, 401
//     (a 401 is the ONLY error that triggers a cross-cutting action:
//     clients clear their session and return to the marketing page)
//   - NotFound / Conflict / Forbidden → the usual REST mappings
//   - Upstream     → the AI provider (or another dependency) failed, 502,
//     retryable by the user
//   - MalformedUpstream → the provider answered, but the payload does not
//     conform to the declared schema. Kept distinct from Upstream so a
//     schema drift is labelled at the decode step instead of surfacing as
//     a rendering-time failure.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
	ErrForbidden         = errors.New("forbidden")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUpstream          = errors.New("upstream error")
	ErrMalformedUpstream = errors.New("malformed upstream response")
)

type AppError struct {
	Err     error  // sentinel identifying the kind
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Forbidden returns an AppError indicating the caller lacks permission.
// HTTP handlers map this to 403 Forbidden.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized returns an AppError for credential failures. HTTP handlers
// map this to 401; the client reacts to any 401 with a global logout.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Upstream returns an AppError for a failed AI-provider or dependency call.
// Maps to 502; the UI shows it as a retryable error block.
func Upstream(message string) *AppError {
	return &AppError{
		Err:     ErrUpstream,
		Message: message,
	}
}

// MalformedUpstream returns an AppError for a provider response that parsed
// or validated wrong. The message should say what was malformed, not dump
// the payload.
func MalformedUpstream(message string) *AppError {
	return &AppError{
		Err:     ErrMalformedUpstream,
		Message: message,
	}
}
