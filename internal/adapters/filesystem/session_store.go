package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/example/madar/internal/ports/secondary"
)

// SessionStore implements secondary.SessionStore as a YAML file.
type SessionStore struct {
	path string
}

// NewSessionStore creates a store backed by the file at path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Load returns the saved session, or nil if there is none.
func (s *SessionStore) Load() (*secondary.SessionRecord, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session secondary.SessionRecord
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}
	if session.UserID == "" {
		return nil, nil
	}
	return &session, nil
}

// Save writes the session, readable only by the owner.
func (s *SessionStore) Save(session *secondary.SessionRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

var _ secondary.SessionStore = (*SessionStore)(nil)
