package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/Renan-Hawladar/OrbitAI/internal/apperror"
	"github.com/Renan-Hawladar/OrbitAI/internal/model"
	"github.com/Renan-Hawladar/OrbitAI/internal/repository"
)

var _ repository.ProfileRepository = (*DB)(nil)

// GetByUserID returns the user's profile. ErrNotFound means the user has
// never saved one — the service auto-creates an empty profile in that case.
func (db *DB) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, name, degree, qualifications, skills,
		        photo_base64, cv_pdf_base64, cv_text, created_at, updated_at
		 FROM profiles WHERE user_id = ?`,
		userID,
	).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Degree,
		&p.Qualifications,
		&p.Skills,
		&p.PhotoBase64,
		&p.CVPDFBase64,
		&p.CVText,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("profile", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetching profile for user %s: %w", userID, err)
	}

	return &p, nil
}

// Save inserts or overwrites the user's profile. The profile is one row per
// user (user_id UNIQUE), and a save replaces every field — the editor
// submits the whole form, so there is no partial-write path at this layer.
func (db *DB) Save(ctx context.Context, profile *model.Profile) error {
	var existingID string
	var createdAt time.Time
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, created_at FROM profiles WHERE user_id = ?`, profile.UserID,
	).Scan(&existingID, &createdAt)

	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sqlite: looking up profile for user %s: %w", profile.UserID, err)
	}

	now := time.Now()

	if existingID != "" {
		profile.ID = existingID
		profile.CreatedAt = createdAt
		profile.UpdatedAt = now
		_, err = db.conn.ExecContext(ctx,
			`UPDATE profiles
			 SET name = ?, degree = ?, qualifications = ?, skills = ?,
			     photo_base64 = ?, cv_pdf_base64 = ?, cv_text = ?, updated_at = ?
			 WHERE id = ?`,
			profile.Name,
			profile.Degree,
			profile.Qualifications,
			profile.Skills,
			profile.PhotoBase64,
			profile.CVPDFBase64,
			profile.CVText,
			profile.UpdatedAt,
			profile.ID,
		)
		if err != nil {
			return fmt.Errorf("sqlite: updating profile %s: %w", profile.ID, err)
		}
		return nil
	}

	profile.ID = xid.New().String()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO profiles (id, user_id, name, degree, qualifications, skills,
		                       photo_base64, cv_pdf_base64, cv_text, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		profile.ID,
		profile.UserID,
		profile.Name,
		profile.Degree,
		profile.Qualifications,
		profile.Skills,
		profile.PhotoBase64,
		profile.CVPDFBase64,
		profile.CVText,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting profile for user %s: %w", profile.UserID, err)
	}

	return nil
}
