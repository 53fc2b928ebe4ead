// Package service contains the business logic layer.
//
// The layering matches the rest of the codebase: handlers parse HTTP and
// write responses, services enforce the rules, repositories talk to the
// database. Services depend on repository interfaces, never on sqlite
// directly, so tests inject in-memory mocks.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/auth"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
	"github.com/Renan-Hawladar/OrbitAI/internal/repository"
)

// MinPasswordLength is the registration floor. The backend is the authority
// on this — the login form merely mirrors it.
const MinPasswordLength = 8

// AuthService handles registration, login, and the Google OAuth upsert.
type AuthService struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
func NewAuthService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		profiles:  profiles,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the authenticated user with the issued token so the
// handler can build the token response in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new password account, an empty profile for it, and
// issues an access token. A duplicate email surfaces as a Conflict.
func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperror.ValidationFailed("email", "invalid email address")
	}
	if len(password) < MinPasswordLength {
		return nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", "password is too long")
	}

	user := &model.User{Email: email, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		// Conflict passes through with its own message.
		return nil, err
	}

	// Every account starts with an empty profile, so GET /api/profile
	// always has a row to return.
	if err := s.profiles.Save(ctx, &model.Profile{UserID: user.ID}); err != nil {
		return nil, fmt.Errorf("service/auth: creating empty profile for user %s: %w", user.ID, err)
	}

	s.logger.Info("user registered", slog.String("userID", user.ID))

	return s.issueToken(user)
}

// Login verifies credentials and issues an access token.
//
// A wrong email and a wrong password return the identical message so the
// login form cannot be used to probe which addresses are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Unauthorized("incorrect email or password")
	}

	if user.PasswordHash == "" {
		// OAuth-only account — there is no password to check.
		return nil, apperror.Unauthorized("incorrect email or password")
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("incorrect email or password")
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return s.issueToken(user)
}

// LoginOrRegisterGoogle completes the OAuth callback: upsert the account
// keyed on the Google sub, make sure a profile row exists, issue a token.
func (s *AuthService) LoginOrRegisterGoogle(ctx context.Context, gUser *auth.GoogleUser) (*AuthResult, error) {
	if gUser == nil {
		return nil, fmt.Errorf("service/auth: Google user must not be nil")
	}

	user := &model.User{
		Email:    strings.ToLower(gUser.Email),
		GoogleID: gUser.Sub,
	}
	if err := s.users.UpsertGoogleUser(ctx, user); err != nil {
		return nil, fmt.Errorf("service/auth: upserting Google user: %w", err)
	}

	if _, err := s.profiles.GetByUserID(ctx, user.ID); err != nil {
		if saveErr := s.profiles.Save(ctx, &model.Profile{UserID: user.ID}); saveErr != nil {
			return nil, fmt.Errorf("service/auth: creating empty profile for user %s: %w", user.ID, saveErr)
		}
	}

	s.logger.Info("user authenticated via Google", slog.String("userID", user.ID))

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}
