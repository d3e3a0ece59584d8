package primary

import "context"

// HistoryService defines the primary port for audit completion records.
type HistoryService interface {
	// GetHistory retrieves a completion record.
	GetHistory(ctx context.Context, historyID string) (*History, error)

	// ListHistories lists completion records, newest first.
	ListHistories(ctx context.Context, filters HistoryFilters) ([]*History, error)

	// ReviewHistory records a management review. Approval closes the audit.
	ReviewHistory(ctx context.Context, req ReviewHistoryRequest) error
}

// History is an audit completion record at the port boundary.
type History struct {
	ID              string
	AuditID         string
	AreaOwnerID     string
	ManagementID    string
	Title           string
	Status          string
	Score           *float64
	Comments        string
	EscalationLevel string
	Priority        string
	ReviewComments  string
	CreatedAt       string
}

// HistoryFilters contains filter options for listing completion records.
type HistoryFilters struct {
	Status          string
	EscalationLevel string
	Mine            bool // only the acting area owner's records
	Limit           int
}

// ReviewHistoryRequest contains a review decision.
type ReviewHistoryRequest struct {
	HistoryID string
	Status    string // Approved, Rejected or Under_Review
	Comments  string
}
