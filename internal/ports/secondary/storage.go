package secondary

import (
	"context"
	"io"
	"time"
)

// FileStore stores uploaded files and returns paths relative to the storage root.
type FileStore interface {
	// Store writes r under folder and returns the stored relative path.
	// The file name is derived from slugHint and the original extension.
	Store(ctx context.Context, r io.Reader, originalName, folder, slugHint string) (string, error)

	// Delete removes a stored file. It reports false if there was nothing to delete.
	Delete(ctx context.Context, relativePath string) (bool, error)
}

// SessionStore persists the logged-in session between CLI invocations.
type SessionStore interface {
	// Load returns the current session, or nil if nobody is logged in.
	Load() (*SessionRecord, error)

	// Save persists the session.
	Save(session *SessionRecord) error

	// Clear removes the session.
	Clear() error
}

// SessionRecord is a persisted login session.
type SessionRecord struct {
	UserID       string    `yaml:"user_id"`
	Email        string    `yaml:"email"`
	Name         string    `yaml:"name"`
	Role         string    `yaml:"role"`
	ProfileID    string    `yaml:"profile_id"`
	LoginAt      time.Time `yaml:"login_at"`
	LastActivity time.Time `yaml:"last_activity"`
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
