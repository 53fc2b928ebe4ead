// Package sqlite implements the repository interfaces on SQLite.
//
// SQLite is embedded — the whole database is a single file next to the
// binary, which fits a single-server app like this one: no database server
// to provision, and tests run against ":memory:".
//
// We use modernc.org/sqlite rather than mattn/go-sqlite3 because it is a
// pure-Go translation of SQLite — no CGo, no C toolchain, painless
// cross-compilation.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under
	// the name "sqlite" in its init().
	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB pool and carries the repository method sets.
// It implements repository.UserRepository, ProfileRepository, and
// AnalysisRepository.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for an ephemeral database in tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Force a real connection now; a bad path should fail here, not on
	// the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — needed for a
	// web server where requests overlap.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. The server defers this on shutdown so
// the WAL is flushed and the file lock released.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it
// idempotent; the index set mirrors what the query paths need (login by
// email, profile by user, history by user ordered by time).
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL DEFAULT '',
			google_id     TEXT NOT NULL DEFAULT '',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_google_id
			ON users(google_id) WHERE google_id != '';
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// One profile per user: user_id is UNIQUE, and the row dies with the
	// account.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS profiles (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL UNIQUE REFERENCES users(id) ON DELETE CASCADE,
			name           TEXT NOT NULL DEFAULT '',
			degree         TEXT NOT NULL DEFAULT '',
			qualifications TEXT NOT NULL DEFAULT '',
			skills         TEXT NOT NULL DEFAULT '',
			photo_base64   TEXT NOT NULL DEFAULT '',
			cv_pdf_base64  TEXT NOT NULL DEFAULT '',
			cv_text        TEXT NOT NULL DEFAULT '',
			created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating profiles table: %w", err)
	}

	// Career paths are stored as the JSON the API returned — history is
	// read back wholesale, never queried field-by-field.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS analyses (
			id           TEXT PRIMARY KEY,
			user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			result_json  TEXT NOT NULL,
			created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_analyses_user_id ON analyses(user_id);
		CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating analyses table: %w", err)
	}

	return nil
}
