package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/session"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

// Session errors surfaced to the user verbatim.
var (
	ErrNotLoggedIn    = errors.New("not logged in, run 'madar login'")
	ErrSessionExpired = errors.New("session expired, log in again")
)

// AuthServiceImpl implements the AuthService interface.
type AuthServiceImpl struct {
	userRepo       secondary.UserRepository
	personRepo     secondary.PersonRepository
	hasher         secondary.PasswordHasher
	sessions       secondary.SessionStore
	timeoutMinutes int
	clock          Clock
	logger         *zap.Logger
}

// NewAuthService creates a new AuthService with injected dependencies.
func NewAuthService(
	userRepo secondary.UserRepository,
	personRepo secondary.PersonRepository,
	hasher secondary.PasswordHasher,
	sessions secondary.SessionStore,
	timeoutMinutes int,
	clock Clock,
	logger *zap.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		userRepo:       userRepo,
		personRepo:     personRepo,
		hasher:         hasher,
		sessions:       sessions,
		timeoutMinutes: timeoutMinutes,
		clock:          clockOrNow(clock),
		logger:         loggerOrNop(logger),
	}
}

// Login verifies credentials and persists a new session.
// Unknown emails and wrong passwords fail identically.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*primary.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			s.logger.Info("login failed", zap.String("email", email), zap.String("reason", "unknown email"))
			return nil, apperr.Denied("invalid email or password")
		}
		return nil, err
	}
	if user.Status != "active" || !s.hasher.Compare(user.PasswordHash, password) {
		s.logger.Info("login failed", zap.String("email", email), zap.String("user", user.ID))
		return nil, apperr.Denied("invalid email or password")
	}

	profile, err := s.personRepo.GetByUserID(ctx, user.UserType, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s profile of %s: %w", user.UserType, user.ID, err)
	}

	now := s.clock()
	record := &secondary.SessionRecord{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.UserType,
		ProfileID:    profile.ID,
		LoginAt:      now,
		LastActivity: now,
	}
	if err := s.sessions.Save(record); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	s.logger.Info("login", zap.String("user", user.ID), zap.String("role", user.UserType))
	return recordToSession(record), nil
}

// Logout ends the current session. Logging out twice is not an error.
func (s *AuthServiceImpl) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Resume returns the active session and refreshes its activity time.
func (s *AuthServiceImpl) Resume(ctx context.Context) (*primary.Session, error) {
	record, err := s.sessions.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if record == nil {
		return nil, ErrNotLoggedIn
	}

	now := s.clock()
	if session.IsExpired(record.LastActivity, now, s.timeoutMinutes) {
		if err := s.sessions.Clear(); err != nil {
			s.logger.Warn("failed to clear expired session", zap.Error(err))
		}
		s.logger.Info("session expired", zap.String("user", record.UserID))
		return nil, ErrSessionExpired
	}

	record.LastActivity = now
	if err := s.sessions.Save(record); err != nil {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}
	return recordToSession(record), nil
}

// ChangePassword replaces the acting user's password. A wrong current
// password is rejected as invalid input so the reason reaches the user.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	userID := actorOf(ctx).UserID
	if userID == "" {
		return ErrNotLoggedIn
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Compare(user.PasswordHash, currentPassword) {
		s.logger.Info("password change refused", zap.String("user", userID))
		return apperr.Invalid("current password is incorrect")
	}
	if len(newPassword) < minPasswordLength {
		return apperr.Invalid("password must be at least %d characters", minPasswordLength)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	s.logger.Info("password changed", zap.String("user", userID))
	return nil
}

func recordToSession(r *secondary.SessionRecord) *primary.Session {
	return &primary.Session{
		UserID:       r.UserID,
		Email:        r.Email,
		Name:         r.Name,
		Role:         r.Role,
		ProfileID:    r.ProfileID,
		LoginAt:      r.LoginAt,
		LastActivity: r.LastActivity,
	}
}

// Ensure AuthServiceImpl implements the interface
var _ primary.AuthService = (*AuthServiceImpl)(nil)
