package primary

import "context"

// PeopleService defines the primary port for user accounts and role profiles.
type PeopleService interface {
	// CreateUser creates a login account together with its role profile.
	CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResponse, error)

	// GetPerson retrieves a role profile.
	GetPerson(ctx context.Context, role, id string) (*Person, error)

	// ListPeople lists the profiles of a role.
	ListPeople(ctx context.Context, role string, filters PersonFilters) ([]*Person, error)

	// MyProfile returns the acting user's profile.
	MyProfile(ctx context.Context) (*Person, error)

	// UpdateProfile changes the acting user's name, email and extension.
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Person, error)
}

// UpdateProfileRequest contains the editable profile fields. Empty fields
// keep their stored value.
type UpdateProfileRequest struct {
	FirstName string
	LastName  string
	Email     string
	Extension string
}

// CreateUserRequest contains parameters for creating a user.
type CreateUserRequest struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	Role        string // Management, Auditor, AreaOwner, ResponsiblePerson
	Extension   string
	JobTitle    string
	AreaOwnerID string // responsible persons only
}

// CreateUserResponse contains the result of creating a user.
type CreateUserResponse struct {
	UserID    string
	ProfileID string
}

// Person is a role profile at the port boundary.
type Person struct {
	ID          string
	UserID      string
	Role        string
	Name        string
	Email       string
	Extension   string
	JobTitle    string
	AreaOwnerID string
	CreatedAt   string
}

// PersonFilters contains filter options for listing profiles.
type PersonFilters struct {
	AreaOwnerID string
}
