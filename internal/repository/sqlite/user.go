package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
	"github.com/Renan-Hawladar/OrbitAI/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new password-based account.
//
// The UNIQUE constraint on email is the real duplicate guard — checking
// first and inserting after would race with a concurrent registration.
// A constraint violation is translated to apperror.Conflict so the handler
// can answer 409 "email already registered".
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, google_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.GoogleID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("email already registered")
		}
		return fmt.Errorf("sqlite: inserting user (email=%s): %w", user.Email, err)
	}

	return nil
}

// GetUserByEmail returns the user with the given email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, `SELECT id, email, password_hash, google_id, created_at, updated_at
		 FROM users WHERE email = ?`, email)
}

// GetUserByID returns the user with the given internal ID.
func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `SELECT id, email, password_hash, google_id, created_at, updated_at
		 FROM users WHERE id = ?`, id)
}

func (db *DB) getUser(ctx context.Context, query, arg string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx, query, arg).Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.GoogleID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user", arg)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetching user %s: %w", arg, err)
	}

	return &u, nil
}

// UpsertGoogleUser creates or refreshes a user keyed by their Google sub.
//
// First OAuth login inserts a row; later logins keep the internal ID stable
// and update the email in case it changed on the Google side. An existing
// password account with the same email gets the Google ID linked onto it
// instead of a second account.
func (db *DB) UpsertGoogleUser(ctx context.Context, user *model.User) error {
	var existingID string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id FROM users WHERE google_id = ? OR email = ?`,
		user.GoogleID, user.Email,
	).Scan(&existingID)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: looking up user by google_id: %w", err)
	}

	if existingID != "" {
		user.ID = existingID
		user.UpdatedAt = time.Now()
		_, err = db.conn.ExecContext(ctx,
			`UPDATE users SET email = ?, google_id = ?, updated_at = ? WHERE id = ?`,
			user.Email,
			user.GoogleID,
			user.UpdatedAt,
			user.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating user %s: %w", user.ID, err)
		}
		return nil
	}

	now := time.Now()
	user.ID = xid.New().String()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, google_id, created_at, updated_at)
		 VALUES (?, ?, '', ?, ?, ?)`,
		user.ID,
		user.Email,
		user.GoogleID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting Google user (sub=%s): %w", user.GoogleID, err)
	}

	return nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. modernc.org/sqlite exposes the extended result code; the string
// check is a fallback for wrapped errors.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
