package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/madar/internal/ports/primary"
)

// LogAdapter prints the activity log.
type LogAdapter struct {
	service primary.ActivityLogService
	out     io.Writer
}

// NewLogAdapter creates a new LogAdapter with the given service.
func NewLogAdapter(service primary.ActivityLogService, out io.Writer) *LogAdapter {
	return &LogAdapter{service: service, out: out}
}

// List prints log entries, newest first.
func (a *LogAdapter) List(ctx context.Context, filters primary.ActivityLogFilters) error {
	entries, err := a.service.ListEntries(ctx, filters)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No activity found")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s %-10s %-8s %s %s", e.Timestamp, e.ActorID, e.Action, e.EntityType, idCell(e.EntityID, 0))
		if e.FieldName != "" {
			line += fmt.Sprintf(" %s: %s → %s", e.FieldName, orDash(e.OldValue), orDash(e.NewValue))
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}
