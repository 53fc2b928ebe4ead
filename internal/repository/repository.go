// Package repository declares the storage interfaces the service layer
// depends on. Services receive these interfaces, never a concrete DB type —
// tests inject in-memory mocks, production injects the sqlite implementation.
package repository

import (
	"context"

	"github.com/Renan-Hawladar/OrbitAI/internal/model"
)

// UserRepository manages user accounts.
type UserRepository interface {
	// CreateUser inserts a new user. Returns apperror.ErrConflict when the
	// email is already registered.
	CreateUser(ctx context.Context, user *model.User) error

	// GetUserByEmail returns the user with the given email, or
	// apperror.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// GetUserByID returns the user with the given internal ID, or
	// apperror.ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*model.User, error)

	// UpsertGoogleUser creates or updates a user keyed by Google sub.
	// After the call user.ID holds the internal ID.
	UpsertGoogleUser(ctx context.Context, user *model.User) error
}

// ProfileRepository manages the one-per-user career profile.
type ProfileRepository interface {
	// GetByUserID returns the user's profile, or apperror.ErrNotFound when
	// none exists yet.
	GetByUserID(ctx context.Context, userID string) (*model.Profile, error)

	// Save inserts or overwrites the user's profile wholesale.
	Save(ctx context.Context, profile *model.Profile) error
}

// AnalysisRepository stores completed career analyses for history.
type AnalysisRepository interface {
	// Create persists one analysis run.
	Create(ctx context.Context, analysis *model.Analysis) error

	// ListByUserID returns the user's analyses, newest first.
	ListByUserID(ctx context.Context, userID string) ([]model.Analysis, error)
}
