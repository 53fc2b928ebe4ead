// Package client is a Go consumer of the OrbitAI API: session persistence,
// view navigation, profile form handling, and recommendation requests. The
// cmd/careerctl CLI is built on it, and its state rules match what the web
// frontend implements.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the client's whole idea of "logged in": a bearer token and
// the email it was issued for. There is no client-side expiry check — the
// token is trusted until the backend answers 401, at which point the
// session is cleared everywhere at once.
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

// Store persists a session across runs.
type Store interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// SessionManager owns the in-memory session and keeps the Store in sync
// with it. Construct it, then call Hydrate once to pick up a persisted
// session from a previous run.
type SessionManager struct {
	store   Store
	current *Session
}

// NewSessionManager creates a manager over the given store. The manager
// starts unauthenticated; call Hydrate to restore a persisted session.
func NewSessionManager(store Store) *SessionManager {
	return &SessionManager{store: store}
}

// Hydrate loads a previously persisted session, if any. A missing or
// unreadable stored session leaves the manager unauthenticated and is not
// an error — the user just logs in again.
func (m *SessionManager) Hydrate() {
	session, err := m.store.Load()
	if err != nil || session == nil || session.Token == "" {
		m.current = nil
		return
	}
	m.current = session
}

// Login stores a fresh session in memory and persists it.
func (m *SessionManager) Login(email, token string) error {
	session := &Session{Token: token, Email: email}
	if err := m.store.Save(session); err != nil {
		return fmt.Errorf("client: persisting session: %w", err)
	}
	m.current = session
	return nil
}

// Logout clears the session in memory and in the store. Safe to call when
// already logged out.
func (m *SessionManager) Logout() {
	m.current = nil
	// Failing to remove the persisted file still leaves this process
	// logged out; the next Hydrate may resurrect the session, which the
	// backend will 401 if the token has expired since.
	_ = m.store.Clear()
}

// IsAuthenticated reports whether a session is present. It says nothing
// about token validity — only the backend decides that.
func (m *SessionManager) IsAuthenticated() bool {
	return m.current != nil && m.current.Token != ""
}

// Current returns the active session, or nil when logged out.
func (m *SessionManager) Current() *Session {
	return m.current
}

// FileStore persists the session as a JSON file, typically under the user
// config directory.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultSessionPath returns the conventional session file location under
// the user config dir.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("client: resolving config dir: %w", err)
	}
	return filepath.Join(dir, "orbitai", "session.json"), nil
}

// Load reads the persisted session. A missing file means "not logged in"
// and returns (nil, nil).
func (s *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("client: reading session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("client: parsing session file: %w", err)
	}
	return &session, nil
}

// Save writes the session with owner-only permissions; the token is a
// credential.
func (s *FileStore) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("client: creating session dir: %w", err)
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("client: encoding session: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("client: writing session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Removing an absent file is fine.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("client: removing session file: %w", err)
	}
	return nil
}
