package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/Renan-Hawladar/OrbitAI/internal/model"
	"github.com/Renan-Hawladar/OrbitAI/internal/repository"
)

var _ repository.AnalysisRepository = (*DB)(nil)

// Create persists one analysis run. The career paths are serialized to JSON
// once here and deserialized wholesale on read — history is never filtered
// by path fields, so a JSON column beats a normalized table.
func (db *DB) Create(ctx context.Context, analysis *model.Analysis) error {
	resultJSON, err := json.Marshal(analysis.CareerPaths)
	if err != nil {
		return fmt.Errorf("sqlite: marshaling analysis result: %w", err)
	}

	analysis.ID = xid.New().String()
	analysis.CreatedAt = time.Now()

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO analyses (id, user_id, result_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		analysis.ID,
		analysis.UserID,
		string(resultJSON),
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting analysis for user %s: %w", analysis.UserID, err)
	}

	return nil
}

// ListByUserID returns the user's analyses, newest first.
//
// A stored row whose JSON no longer parses is skipped rather than failing
// the whole listing — one corrupt historical row should not take down the
// history endpoint.
func (db *DB) ListByUserID(ctx context.Context, userID string) ([]model.Analysis, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, result_json, created_at
		 FROM analyses WHERE user_id = ?
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing analyses for user %s: %w", userID, err)
	}
	defer rows.Close()

	analyses := []model.Analysis{}
	for rows.Next() {
		var a model.Analysis
		var resultJSON string
		if err := rows.Scan(&a.ID, &a.UserID, &resultJSON, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning analysis row: %w", err)
		}
		if err := json.Unmarshal([]byte(resultJSON), &a.CareerPaths); err != nil {
			continue
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating analysis rows: %w", err)
	}

	return analyses, nil
}
