package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/madar/internal/ports/primary"
)

// HistoryAdapter translates completion record commands to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{service: service, out: out}
}

// List prints completion records, newest first.
func (a *HistoryAdapter) List(ctx context.Context, filters primary.HistoryFilters) error {
	histories, err := a.service.ListHistories(ctx, filters)
	if err != nil {
		return err
	}
	if len(histories) == 0 {
		fmt.Fprintln(a.out, "No audit histories found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-10s %-11s %-13s %6s %-9s %s\n", "ID", "AUDIT", "REVIEW", "SCORE", "PRIORITY", "TITLE")
	fmt.Fprintln(a.out, rule)
	for _, h := range histories {
		fmt.Fprintf(a.out, "%s %-11s %s %6s %s %s\n",
			idCell(h.ID, 10), h.AuditID, statusCell(h.Status, 13), scoreText(h.Score), priorityCell(h.Priority, 9), h.Title)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show prints one completion record.
func (a *HistoryAdapter) Show(ctx context.Context, historyID string) error {
	h, err := a.service.GetHistory(ctx, historyID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nHistory:    %s\n", h.ID)
	fmt.Fprintf(a.out, "Title:      %s\n", h.Title)
	fmt.Fprintf(a.out, "Audit:      %s\n", h.AuditID)
	fmt.Fprintf(a.out, "Score:      %s\n", scoreText(h.Score))
	fmt.Fprintf(a.out, "Escalation: %s\n", priorityCell(h.EscalationLevel, 0))
	fmt.Fprintf(a.out, "Review:     %s\n", statusCell(h.Status, 0))
	fmt.Fprintf(a.out, "Area owner: %s\n", orDash(h.AreaOwnerID))
	if h.Comments != "" {
		fmt.Fprintf(a.out, "Comments:   %s\n", h.Comments)
	}
	if h.ReviewComments != "" {
		fmt.Fprintf(a.out, "Reviewer:   %s (%s)\n", h.ReviewComments, orDash(h.ManagementID))
	}
	fmt.Fprintf(a.out, "Created:    %s\n\n", h.CreatedAt)
	return nil
}

// Review records a management review decision.
func (a *HistoryAdapter) Review(ctx context.Context, req primary.ReviewHistoryRequest) error {
	if err := a.service.ReviewHistory(ctx, req); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("History %s marked %s", req.HistoryID, req.Status))
	return nil
}
