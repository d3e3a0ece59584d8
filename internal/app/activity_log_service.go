package app

import (
	"context"
	"fmt"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	"github.com/example/madar/internal/ports/primary"
	"github.com/example/madar/internal/ports/secondary"
)

const defaultLogLimit = 50

// ActivityLogServiceImpl implements the ActivityLogService interface.
type ActivityLogServiceImpl struct {
	logRepo secondary.ActivityLogRepository
}

// NewActivityLogService creates a new ActivityLogService.
func NewActivityLogService(logRepo secondary.ActivityLogRepository) *ActivityLogServiceImpl {
	return &ActivityLogServiceImpl{logRepo: logRepo}
}

// ListEntries lists log entries, newest first. Management only.
func (s *ActivityLogServiceImpl) ListEntries(ctx context.Context, filters primary.ActivityLogFilters) ([]*primary.ActivityLogEntry, error) {
	if !access.HasRole(actorOf(ctx).Role, access.Management) {
		return nil, apperr.Denied("access denied")
	}
	if filters.Limit <= 0 {
		filters.Limit = defaultLogLimit
	}

	records, err := s.logRepo.List(ctx, secondary.ActivityLogFilters{
		EntityType: filters.EntityType,
		EntityID:   filters.EntityID,
		ActorID:    filters.ActorID,
		Limit:      filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list activity log: %w", err)
	}

	entries := make([]*primary.ActivityLogEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.ActivityLogEntry{
			ID:         r.ID,
			Timestamp:  r.Timestamp,
			ActorID:    r.ActorID,
			EntityType: r.EntityType,
			EntityID:   r.EntityID,
			Action:     r.Action,
			FieldName:  r.FieldName,
			OldValue:   r.OldValue,
			NewValue:   r.NewValue,
		}
	}
	return entries, nil
}

// Ensure ActivityLogServiceImpl implements the interface
var _ primary.ActivityLogService = (*ActivityLogServiceImpl)(nil)
