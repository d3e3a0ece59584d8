package primary

import (
	"context"
	"time"
)

// AuthService defines the primary port for CLI sessions.
type AuthService interface {
	// Login verifies credentials and starts a session.
	Login(ctx context.Context, email, password string) (*Session, error)

	// Logout ends the current session.
	Logout(ctx context.Context) error

	// Resume returns the active session and refreshes its activity time.
	// An idle session past the timeout is cleared and rejected.
	Resume(ctx context.Context) (*Session, error)

	// ChangePassword replaces the acting user's password after checking the
	// current one.
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}

// Session is the logged-in identity.
type Session struct {
	UserID       string
	Email        string
	Name         string
	Role         string
	ProfileID    string
	LoginAt      time.Time
	LastActivity time.Time
}
