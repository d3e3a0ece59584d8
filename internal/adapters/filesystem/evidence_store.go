// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/calendar"
	"github.com/example/madar/internal/core/evidence"
	"github.com/example/madar/internal/ports/secondary"
)

// EvidenceStore implements secondary.FileStore under a root directory.
// Stored paths are slash-separated and relative to the root, e.g.
// /evidence/valve-photo-2026-03-10-<uuid>.jpg.
type EvidenceStore struct {
	root string
	now  func() time.Time
}

// NewEvidenceStore creates a store rooted at root. If root is empty,
// defaults to ~/.madar/storage.
func NewEvidenceStore(root string) (*EvidenceStore, error) {
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		root = filepath.Join(home, ".madar", "storage")
	}
	return &EvidenceStore{root: root, now: time.Now}, nil
}

// WithClock overrides the clock used for the date part of file names.
func (s *EvidenceStore) WithClock(now func() time.Time) *EvidenceStore {
	s.now = now
	return s
}

// Root returns the storage root directory.
func (s *EvidenceStore) Root() string {
	return s.root
}

// Store copies r into folder under a generated name and returns the relative path.
func (s *EvidenceStore) Store(ctx context.Context, r io.Reader, originalName, folder, slugHint string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	hint := slugHint
	if strings.TrimSpace(hint) == "" {
		hint = strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	}
	name := fmt.Sprintf("%s-%s-%s%s", evidence.Slug(hint), calendar.FormatDate(s.now()), uuid.NewString(), ext)
	rel := path.Join("/", evidence.Slug(folder), name)

	dir := filepath.Join(s.root, filepath.FromSlash(path.Dir(rel)))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage folder: %w", err)
	}

	target := filepath.Join(s.root, filepath.FromSlash(rel))
	f, err := os.OpenFile(target, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", rel, err)
	}

	if _, err := io.Copy(f, io.LimitReader(r, evidence.MaxFileSize+1)); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write %s: %w", rel, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write %s: %w", rel, err)
	}

	if info, err := os.Stat(target); err == nil && info.Size() > evidence.MaxFileSize {
		os.Remove(target)
		return "", apperr.Invalid("file %s exceeds the 10 MB limit", originalName)
	}

	return rel, nil
}

// Delete removes a stored file. It reports false if the file did not exist.
func (s *EvidenceStore) Delete(ctx context.Context, relativePath string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	target, err := s.resolve(relativePath)
	if err != nil {
		return false, err
	}

	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete %s: %w", relativePath, err)
	}
	return true, nil
}

// resolve maps a stored relative path to a file under root, refusing escapes.
func (s *EvidenceStore) resolve(relativePath string) (string, error) {
	clean := path.Clean("/" + relativePath)
	if clean == "/" || strings.Contains(relativePath, "..") {
		return "", apperr.Invalid("invalid storage path %q", relativePath)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

var _ secondary.FileStore = (*EvidenceStore)(nil)
