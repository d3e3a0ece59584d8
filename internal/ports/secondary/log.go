package secondary

import "context"

// LogWriter appends entries to the activity log. The actor is taken from ctx.
// Callers treat write failures as non-fatal.
type LogWriter interface {
	LogCreate(ctx context.Context, entityType, entityID string) error

	// LogUpdate records one changed field, typically a status.
	LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error

	LogDelete(ctx context.Context, entityType, entityID string) error
}
