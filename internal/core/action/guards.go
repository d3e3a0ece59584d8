// Package action contains the pure rules for corrective actions: the
// overdue and critical windows and the management-gated status writes.
package action

import (
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	"github.com/example/madar/internal/core/calendar"
	"github.com/example/madar/internal/core/status"
)

// CriticalWindowDays is how close a deadline must be for an open action to be critical.
const CriticalWindowDays = 3

// Priority filters accepted by action listings.
const (
	PriorityOverdue  = "overdue"
	PriorityCritical = "critical"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Kind    apperr.Kind
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return apperr.New(r.Kind, "%s", r.Reason)
}

func deny(kind apperr.Kind, format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...), Kind: kind}
}

// IsOverdue reports whether the deadline has passed and the action is not Completed.
func IsOverdue(deadline time.Time, actionStatus string, today time.Time) bool {
	return calendar.Before(deadline, today) && actionStatus != status.ActionCompleted
}

// IsCritical reports whether the deadline falls on or before today+3 days and
// the action is neither Completed nor Rejected. Overdue open actions are critical too.
func IsCritical(deadline time.Time, actionStatus string, today time.Time) bool {
	if actionStatus == status.ActionCompleted || actionStatus == status.ActionRejected {
		return false
	}
	return !calendar.Day(deadline).After(calendar.AddDays(today, CriticalWindowDays))
}

// DaysRemaining returns whole days until the deadline, negative once passed.
func DaysRemaining(deadline, today time.Time) int {
	return calendar.DaysBetween(today, deadline)
}

// MatchesPriority applies a listing priority filter. An empty filter matches everything.
func MatchesPriority(priority string, deadline time.Time, actionStatus string, today time.Time) bool {
	switch priority {
	case PriorityOverdue:
		return IsOverdue(deadline, actionStatus, today)
	case PriorityCritical:
		return IsCritical(deadline, actionStatus, today)
	default:
		return true
	}
}

// IsValidPriorityFilter reports whether p is a supported listing filter.
func IsValidPriorityFilter(p string) bool {
	return p == "" || p == PriorityOverdue || p == PriorityCritical
}

// CreateActionContext provides context for raising a corrective action.
type CreateActionContext struct {
	AuditID                 string
	AuditStatus             string
	ActorIsAllocated        bool
	ResponsiblePersonID     string
	ResponsiblePersonExists bool
	Description             string
	Deadline                time.Time
	Today                   time.Time
}

// CanCreateAction evaluates whether an auditor can raise an action on an audit.
// Rules:
// - Actor must be allocated to the audit's schedule
// - Audit must be Draft or In_Progress
// - Responsible person must exist
// - Description must not be empty
// - Deadline must not be in the past
func CanCreateAction(ctx CreateActionContext) GuardResult {
	if !ctx.ActorIsAllocated {
		return deny(apperr.KindDenied, "access denied")
	}
	if ctx.AuditStatus != status.AuditInProgress && ctx.AuditStatus != status.AuditDraft {
		return deny(apperr.KindInvalid, "cannot raise corrective action on audit %s (status: %s)", ctx.AuditID, ctx.AuditStatus)
	}
	if !ctx.ResponsiblePersonExists {
		return deny(apperr.KindNotFound, "responsible person %s not found", ctx.ResponsiblePersonID)
	}
	if ctx.Description == "" {
		return deny(apperr.KindInvalid, "description is required")
	}
	if calendar.Before(ctx.Deadline, ctx.Today) {
		return deny(apperr.KindInvalid, "deadline %s is in the past", calendar.FormatDate(ctx.Deadline))
	}
	return GuardResult{Allowed: true}
}

// SetStatusContext provides context for a direct status write.
type SetStatusContext struct {
	ActionID  string
	ActorRole string
	NewStatus string
}

// CanSetStatus evaluates whether a corrective action status can be written.
// Rules:
// - Actor must be management
// - New status must be in the action vocabulary
//
// Any status may follow any other; there is no forward-only ordering.
func CanSetStatus(ctx SetStatusContext) GuardResult {
	if !access.HasRole(ctx.ActorRole, access.Management) {
		return deny(apperr.KindDenied, "access denied")
	}
	if !status.IsValidActionStatus(ctx.NewStatus) {
		return deny(apperr.KindInvalid, "invalid corrective action status %q", ctx.NewStatus)
	}
	return GuardResult{Allowed: true}
}

// UpdateActionContext provides context for editing an action's details.
type UpdateActionContext struct {
	ActorRole               string
	Description             string
	ResponsiblePersonID     string
	ResponsiblePersonExists bool
}

// CanUpdateAction evaluates whether an action's details can be edited.
// Rules:
// - Actor must be management
// - Description must not be empty
// - Responsible person must exist
func CanUpdateAction(ctx UpdateActionContext) GuardResult {
	if !access.HasRole(ctx.ActorRole, access.Management) {
		return deny(apperr.KindDenied, "access denied")
	}
	if ctx.Description == "" {
		return deny(apperr.KindInvalid, "description is required")
	}
	if !ctx.ResponsiblePersonExists {
		return deny(apperr.KindNotFound, "responsible person %s not found", ctx.ResponsiblePersonID)
	}
	return GuardResult{Allowed: true}
}
