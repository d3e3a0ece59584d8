package primary

import "context"

// ActionService defines the primary port for corrective actions.
type ActionService interface {
	// RaiseAction records a corrective action against an audit.
	RaiseAction(ctx context.Context, req RaiseActionRequest) (*Action, error)

	// GetAction retrieves a corrective action.
	GetAction(ctx context.Context, actionID string) (*Action, error)

	// ListActions lists actions with deadline flags computed for today.
	ListActions(ctx context.Context, filters ActionFilters) (*ActionList, error)

	// UpdateAction edits description, deadline and responsible person.
	UpdateAction(ctx context.Context, actionID string, req UpdateActionRequest) (*Action, error)

	// SetActionStatus writes any vocabulary status.
	SetActionStatus(ctx context.Context, actionID, newStatus string) error

	// ApproveExtension sets the action to Extended.
	ApproveExtension(ctx context.Context, actionID string) error

	// RejectExtension sets the action to Overdue.
	RejectExtension(ctx context.Context, actionID string) error

	// Escalate sets the action to Escalated.
	Escalate(ctx context.Context, actionID string) error

	// DeleteAction deletes an action; linked evidence is kept.
	DeleteAction(ctx context.Context, actionID string) error
}

// RaiseActionRequest contains parameters for raising an action.
type RaiseActionRequest struct {
	AuditID             string
	ResponsiblePersonID string
	Description         string
	Deadline            string // YYYY-MM-DD
}

// UpdateActionRequest contains the editable action fields.
type UpdateActionRequest struct {
	Description         string
	Deadline            string
	ResponsiblePersonID string
}

// Action is a corrective action at the port boundary.
type Action struct {
	ID                  string
	AuditID             string
	ResponsiblePersonID string
	ManagementID        string
	Description         string
	Deadline            string
	Status              string
	IsOverdue           bool
	IsCritical          bool
	DaysRemaining       int
	CreatedAt           string
	UpdatedAt           string
}

// ActionFilters contains filter options for listing actions.
type ActionFilters struct {
	AuditID  string
	PlantID  string
	Status   string
	Priority string // "", overdue or critical
	Mine     bool   // only the acting responsible person's actions
}

// ActionList is a filtered list of actions with counts over the result.
type ActionList struct {
	Actions        []*Action
	Overdue        int
	Critical       int
	CompletionRate int
}
