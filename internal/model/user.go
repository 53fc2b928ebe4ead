// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Primary sign-in is email + bcrypt password. GoogleID is set only for
// accounts created (or linked) through the Google OAuth flow — it is
// Google's stable "sub" claim, unique per Google account. We still generate
// our own internal string ID (xid) so primary keys never depend on a
// third party's numbering scheme.
//
// PasswordHash is never serialized: the `json:"-"` tag keeps it out of every
// API response, no matter which handler writes the struct.
type User struct {
	ID           string    `json:"id"         db:"id"`
	Email        string    `json:"email"      db:"email"`
	PasswordHash string    `json:"-"          db:"password_hash"`
	GoogleID     string    `json:"-"          db:"google_id"` // Google "sub" claim, empty for password accounts
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
