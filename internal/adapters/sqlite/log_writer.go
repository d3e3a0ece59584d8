package sqlite

import (
	"context"

	"github.com/example/madar/internal/ctxutil"
	"github.com/example/madar/internal/ports/secondary"
)

// Activity log actions.
const (
	logActionCreate = "create"
	logActionUpdate = "update"
	logActionDelete = "delete"
)

// ActivityLogWriter implements secondary.LogWriter over an ActivityLogRepository,
// stamping each entry with the acting profile from the context.
type ActivityLogWriter struct {
	repo secondary.ActivityLogRepository
}

// NewActivityLogWriter creates a writer appending to repo.
func NewActivityLogWriter(repo secondary.ActivityLogRepository) *ActivityLogWriter {
	return &ActivityLogWriter{repo: repo}
}

func (w *ActivityLogWriter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return w.append(ctx, &secondary.ActivityLogRecord{EntityType: entityType, EntityID: entityID, Action: logActionCreate})
}

func (w *ActivityLogWriter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.append(ctx, &secondary.ActivityLogRecord{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     logActionUpdate,
		FieldName:  fieldName,
		OldValue:   oldValue,
		NewValue:   newValue,
	})
}

func (w *ActivityLogWriter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return w.append(ctx, &secondary.ActivityLogRecord{EntityType: entityType, EntityID: entityID, Action: logActionDelete})
}

// append assigns the next LOG id and the actor, then persists the entry.
// Commands run without a session leave the actor empty.
func (w *ActivityLogWriter) append(ctx context.Context, entry *secondary.ActivityLogRecord) error {
	id, err := w.repo.GetNextID(ctx)
	if err != nil {
		return err
	}
	entry.ID = id
	entry.ActorID = ctxutil.ActorIDFromContext(ctx)
	return w.repo.Create(ctx, entry)
}

var _ secondary.LogWriter = (*ActivityLogWriter)(nil)
