package primary

import "context"

// ActivityLogService defines the primary port for reading the activity log.
type ActivityLogService interface {
	// ListEntries lists log entries, newest first.
	ListEntries(ctx context.Context, filters ActivityLogFilters) ([]*ActivityLogEntry, error)
}

// ActivityLogEntry is one recorded change.
type ActivityLogEntry struct {
	ID         string
	Timestamp  string
	ActorID    string
	EntityType string
	EntityID   string
	Action     string
	FieldName  string
	OldValue   string
	NewValue   string
}

// ActivityLogFilters contains filter options for the activity log.
type ActivityLogFilters struct {
	EntityType string
	EntityID   string
	ActorID    string
	Limit      int
}
