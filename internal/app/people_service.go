package app

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

// minPasswordLength is the shortest accepted password.
const minPasswordLength = 8

// PeopleServiceImpl implements the PeopleService interface.
type PeopleServiceImpl struct {
	userRepo   secondary.UserRepository
	personRepo secondary.PersonRepository
	hasher     secondary.PasswordHasher
	transactor secondary.Transactor
	logger     *zap.Logger
	activity   activity
}

// NewPeopleService creates a new PeopleService with injected dependencies.
func NewPeopleService(
	userRepo secondary.UserRepository,
	personRepo secondary.PersonRepository,
	hasher secondary.PasswordHasher,
	transactor secondary.Transactor,
	logWriter secondary.LogWriter,
	logger *zap.Logger,
) *PeopleServiceImpl {
	logger = loggerOrNop(logger)
	return &PeopleServiceImpl{
		userRepo:   userRepo,
		personRepo: personRepo,
		hasher:     hasher,
		transactor: transactor,
		logger:     logger,
		activity:   activity{writer: logWriter, logger: logger},
	}
}

// CreateUser creates a login account and its role profile atomically.
// Only management may create users; bootstrapping the first manager goes
// through the seed command.
func (s *PeopleServiceImpl) CreateUser(ctx context.Context, req primary.CreateUserRequest) (*primary.CreateUserResponse, error) {
	if !access.HasRole(actorOf(ctx).Role, access.Management) {
		return nil, apperr.Denied("access denied")
	}
	if err := validateNewUser(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := s.userRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return nil, apperr.Conflict("email %s is already registered", email)
	}

	if req.Role == access.ResponsiblePerson && req.AreaOwnerID != "" {
		exists, err := s.personRepo.Exists(ctx, access.AreaOwner, req.AreaOwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check area owner: %w", err)
		}
		if !exists {
			return nil, apperr.NotFound("area owner %s not found", req.AreaOwnerID)
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	resp := &primary.CreateUserResponse{}
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		userID, err := s.userRepo.GetNextID(ctx)
		if err != nil {
			return fmt.Errorf("failed to generate user ID: %w", err)
		}
		profileID, err := s.personRepo.GetNextID(ctx, req.Role)
		if err != nil {
			return fmt.Errorf("failed to generate profile ID: %w", err)
		}
		resp.UserID, resp.ProfileID = userID, profileID

		user := &secondary.UserRecord{
			ID:           userID,
			Email:        email,
			Name:         strings.TrimSpace(req.FirstName + " " + req.LastName),
			PasswordHash: hash,
			UserType:     req.Role,
			Status:       "active",
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		person := &secondary.PersonRecord{
			ID:          profileID,
			UserID:      userID,
			AreaOwnerID: req.AreaOwnerID,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       email,
			Extension:   req.Extension,
			Role:        req.JobTitle,
		}
		return s.personRepo.Create(ctx, req.Role, person)
	})
	if err != nil {
		return nil, err
	}

	s.activity.created(ctx, "user", resp.UserID)
	s.logger.Info("user created", zap.String("user", resp.UserID), zap.String("role", req.Role))
	return resp, nil
}

func validateNewUser(req primary.CreateUserRequest) error {
	if !access.IsValidUserType(req.Role) {
		return apperr.Invalid("invalid role %q", req.Role)
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return apperr.Invalid("first and last name are required")
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperr.Invalid("invalid email %q", req.Email)
	}
	if len(req.Password) < minPasswordLength {
		return apperr.Invalid("password must be at least %d characters", minPasswordLength)
	}
	if req.AreaOwnerID != "" && req.Role != access.ResponsiblePerson {
		return apperr.Invalid("only responsible persons report to an area owner")
	}
	return nil
}

// GetPerson retrieves a role profile.
func (s *PeopleServiceImpl) GetPerson(ctx context.Context, role, id string) (*primary.Person, error) {
	record, err := s.personRepo.GetByID(ctx, role, id)
	if err != nil {
		return nil, err
	}
	return recordToPerson(role, record), nil
}

// ListPeople lists the profiles of a role.
func (s *PeopleServiceImpl) ListPeople(ctx context.Context, role string, filters primary.PersonFilters) ([]*primary.Person, error) {
	if !access.IsValidUserType(role) {
		return nil, apperr.Invalid("invalid role %q", role)
	}
	records, err := s.personRepo.List(ctx, role, secondary.PersonFilters{AreaOwnerID: filters.AreaOwnerID})
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	out := make([]*primary.Person, len(records))
	for i, r := range records {
		out[i] = recordToPerson(role, r)
	}
	return out, nil
}

// MyProfile returns the acting user's profile.
func (s *PeopleServiceImpl) MyProfile(ctx context.Context) (*primary.Person, error) {
	actor := actorOf(ctx)
	if actor.UserID == "" || !access.IsValidUserType(actor.Role) {
		return nil, apperr.Denied("access denied")
	}
	record, err := s.personRepo.GetByUserID(ctx, actor.Role, actor.UserID)
	if err != nil {
		return nil, err
	}
	return recordToPerson(actor.Role, record), nil
}

// UpdateProfile changes the acting user's name, email and extension on both
// the account and the role profile. The email must not belong to another user.
func (s *PeopleServiceImpl) UpdateProfile(ctx context.Context, req primary.UpdateProfileRequest) (*primary.Person, error) {
	actor := actorOf(ctx)
	if actor.UserID == "" || !access.IsValidUserType(actor.Role) {
		return nil, apperr.Denied("access denied")
	}
	person, err := s.personRepo.GetByUserID(ctx, actor.Role, actor.UserID)
	if err != nil {
		return nil, err
	}

	updated := *person
	if v := strings.TrimSpace(req.FirstName); v != "" {
		updated.FirstName = v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		updated.LastName = v
	}
	if req.Extension != "" {
		updated.Extension = req.Extension
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return nil, apperr.Invalid("invalid email %q", req.Email)
		}
		updated.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}

	if updated.Email != person.Email {
		owner, err := s.userRepo.GetByEmail(ctx, updated.Email)
		switch {
		case err == nil && owner.ID != actor.UserID:
			return nil, apperr.Conflict("email %s is already taken", updated.Email)
		case err != nil && !isNotFound(err):
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	name := strings.TrimSpace(updated.FirstName + " " + updated.LastName)
	err = s.transactor.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.userRepo.UpdateAccount(ctx, actor.UserID, name, updated.Email); err != nil {
			return err
		}
		return s.personRepo.Update(ctx, actor.Role, &updated)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if updated.Email != person.Email {
		s.activity.updated(ctx, "user", actor.UserID, "email", person.Email, updated.Email)
	}
	s.logger.Info("profile updated", zap.String("user", actor.UserID))
	return recordToPerson(actor.Role, &updated), nil
}

func recordToPerson(role string, r *secondary.PersonRecord) *primary.Person {
	return &primary.Person{
		ID:          r.ID,
		UserID:      r.UserID,
		Role:        role,
		Name:        strings.TrimSpace(r.FirstName + " " + r.LastName),
		Email:       r.Email,
		Extension:   r.Extension,
		JobTitle:    r.Role,
		AreaOwnerID: r.AreaOwnerID,
		CreatedAt:   r.CreatedAt,
	}
}

// Ensure PeopleServiceImpl implements the interface
var _ primary.PeopleService = (*PeopleServiceImpl)(nil)
