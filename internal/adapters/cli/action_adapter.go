package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/status"
	"github.com/example/madar/internal/ports/primary"
)

// ActionAdapter translates corrective action commands to ActionService calls.
type ActionAdapter struct {
	service primary.ActionService
	out     io.Writer
}

// NewActionAdapter creates a new ActionAdapter with the given service.
func NewActionAdapter(service primary.ActionService, out io.Writer) *ActionAdapter {
	return &ActionAdapter{service: service, out: out}
}

// Raise records a corrective action.
func (a *ActionAdapter) Raise(ctx context.Context, req primary.RaiseActionRequest) error {
	action, err := a.service.RaiseAction(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Raised action %s on %s for %s, due %s", action.ID, action.AuditID, action.ResponsiblePersonID, action.Deadline))
	if action.IsCritical {
		fmt.Fprintln(a.out, "  "+warn("due in %d days", action.DaysRemaining))
	}
	return nil
}

// List prints actions with overdue and critical markers.
func (a *ActionAdapter) List(ctx context.Context, filters primary.ActionFilters) error {
	list, err := a.service.ListActions(ctx, filters)
	if err != nil {
		return err
	}
	if len(list.Actions) == 0 {
		fmt.Fprintln(a.out, "No corrective actions found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-8s %-11s %-11s %-10s %-9s %s\n", "ID", "STATUS", "DEADLINE", "OWNER", "FLAG", "DESCRIPTION")
	fmt.Fprintln(a.out, rule)
	for _, c := range list.Actions {
		fmt.Fprintf(a.out, "%s %s %-11s %-10s %s %s\n",
			idCell(c.ID, 8), statusCell(c.Status, 11), c.Deadline, c.ResponsiblePersonID, flagCell(c), c.Description)
	}
	fmt.Fprintf(a.out, "\nOverdue: %d  Critical: %d  Completed: %d%%\n\n", list.Overdue, list.Critical, list.CompletionRate)
	return nil
}

func flagCell(c *primary.Action) string {
	switch {
	case c.IsOverdue:
		return tagColor(status.ColorDanger).Sprintf("%-9s", "overdue")
	case c.IsCritical:
		return tagColor(status.ColorWarning).Sprintf("%-9s", "critical")
	default:
		return fmt.Sprintf("%-9s", "")
	}
}

// Show prints one action.
func (a *ActionAdapter) Show(ctx context.Context, actionID string) error {
	c, err := a.service.GetAction(ctx, actionID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nAction:      %s\n", c.ID)
	fmt.Fprintf(a.out, "Audit:       %s\n", c.AuditID)
	fmt.Fprintf(a.out, "Status:      %s\n", statusCell(c.Status, 0))
	fmt.Fprintf(a.out, "Responsible: %s\n", c.ResponsiblePersonID)
	fmt.Fprintf(a.out, "Deadline:    %s (%d days remaining)\n", c.Deadline, c.DaysRemaining)
	fmt.Fprintf(a.out, "Description: %s\n", c.Description)
	if c.ManagementID != "" {
		fmt.Fprintf(a.out, "Signed off:  %s\n", c.ManagementID)
	}
	if c.IsOverdue {
		fmt.Fprintln(a.out, warn("overdue"))
	} else if c.IsCritical {
		fmt.Fprintln(a.out, warn("deadline within 3 days"))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Update edits an action.
func (a *ActionAdapter) Update(ctx context.Context, actionID string, req primary.UpdateActionRequest) error {
	if req.Description == "" && req.Deadline == "" && req.ResponsiblePersonID == "" {
		return apperr.Invalid("must specify at least --description, --deadline or --responsible")
	}
	action, err := a.service.UpdateAction(ctx, actionID, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Action %s updated", action.ID))
	return nil
}

// SetStatus writes an action status.
func (a *ActionAdapter) SetStatus(ctx context.Context, actionID, newStatus string) error {
	if err := a.service.SetActionStatus(ctx, actionID, newStatus); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Action %s is now %s", actionID, newStatus))
	return nil
}

// ApproveExtension grants a deadline extension.
func (a *ActionAdapter) ApproveExtension(ctx context.Context, actionID string) error {
	if err := a.service.ApproveExtension(ctx, actionID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Extension approved for %s", actionID))
	return nil
}

// RejectExtension refuses a deadline extension.
func (a *ActionAdapter) RejectExtension(ctx context.Context, actionID string) error {
	if err := a.service.RejectExtension(ctx, actionID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Extension rejected for %s; action is overdue", actionID))
	return nil
}

// Escalate escalates an action.
func (a *ActionAdapter) Escalate(ctx context.Context, actionID string) error {
	if err := a.service.Escalate(ctx, actionID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Action %s escalated", actionID))
	return nil
}

// Delete deletes an action.
func (a *ActionAdapter) Delete(ctx context.Context, actionID string) error {
	if err := a.service.DeleteAction(ctx, actionID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Deleted action %s", actionID))
	return nil
}
