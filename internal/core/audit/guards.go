// Package audit contains the pure business logic for the audit lifecycle.
// Guards are pure functions that evaluate preconditions without side effects.
//
// State machine:
//
//	Draft -> In_Progress -> Under_Review -> Closed
//	any non-terminal state -> Cancelled
package audit

import (
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	"github.com/example/madar/internal/core/status"
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

func allowed() GuardResult { return GuardResult{Allowed: true} }

func deny(kind apperr.Kind, format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...), Kind: kind}
}

var transitions = map[string][]string{
	status.AuditDraft:       {status.AuditInProgress, status.AuditCancelled},
	status.AuditInProgress:  {status.AuditUnderReview, status.AuditCancelled},
	status.AuditUnderReview: {status.AuditClosed, status.AuditCancelled},
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(s string) bool {
	return s == status.AuditClosed || s == status.AuditCancelled
}

// CanTransition evaluates a single state machine step.
// Rules:
// - Target must be reachable from the current status in one step
func CanTransition(auditID, from, to string) GuardResult {
	for _, next := range transitions[from] {
		if next == to {
			return allowed()
		}
	}
	return deny(apperr.KindInvalid, "cannot move audit %s from %s to %s", auditID, from, to)
}

// StartAuditContext provides context for starting a scheduled audit.
type StartAuditContext struct {
	ScheduleID       string
	ScheduleStatus   string
	ActorRole        string
	ActorIsAllocated bool
	HasOpenAudit     bool
}

// CanStartAudit evaluates whether an auditor can start the audit for a schedule.
// Rules:
// - Actor must be an auditor allocated to the schedule
// - Schedule must be Scheduled
// - Schedule must not already have an audit that is not Cancelled
func CanStartAudit(ctx StartAuditContext) GuardResult {
	if !access.HasRole(ctx.ActorRole, access.Auditor) || !ctx.ActorIsAllocated {
		return deny(apperr.KindDenied, "access denied")
	}
	if ctx.ScheduleStatus != status.ScheduleScheduled {
		return deny(apperr.KindInvalid, "can only start audits for Scheduled schedules (schedule %s is %s)", ctx.ScheduleID, ctx.ScheduleStatus)
	}
	if ctx.HasOpenAudit {
		return deny(apperr.KindConflict, "schedule %s already has an audit in progress", ctx.ScheduleID)
	}
	return allowed()
}

// CompleteAuditContext provides context for completing an audit.
type CompleteAuditContext struct {
	AuditID          string
	AuditStatus      string
	ActorIsAllocated bool
	Score            *float64
	HistoryExists    bool
}

// CanCompleteAudit evaluates whether an audit can be submitted for review.
// Rules:
// - Actor must be allocated to the audit's schedule
// - Audit must be In_Progress
// - Score, if given, must be within 0..100
// - Audit must not already have a history entry
func CanCompleteAudit(ctx CompleteAuditContext) GuardResult {
	if !ctx.ActorIsAllocated {
		return deny(apperr.KindDenied, "access denied")
	}
	if r := CanTransition(ctx.AuditID, ctx.AuditStatus, status.AuditUnderReview); !r.Allowed {
		return r
	}
	if ctx.Score != nil && !status.IsValidScore(*ctx.Score) {
		return deny(apperr.KindInvalid, "score %.2f out of range (0-100)", *ctx.Score)
	}
	if ctx.HistoryExists {
		return deny(apperr.KindConflict, "audit %s already has a completion record", ctx.AuditID)
	}
	return allowed()
}

// CancelAuditContext provides context for cancelling an audit.
type CancelAuditContext struct {
	AuditID          string
	AuditStatus      string
	ActorRole        string
	ActorIsAllocated bool
}

// CanCancelAudit evaluates whether an audit can be cancelled.
// Rules:
// - Actor must be management or an allocated auditor
// - Audit must not be in a terminal state
func CanCancelAudit(ctx CancelAuditContext) GuardResult {
	if !access.HasRole(ctx.ActorRole, access.Management) && !ctx.ActorIsAllocated {
		return deny(apperr.KindDenied, "access denied")
	}
	if IsTerminal(ctx.AuditStatus) {
		return deny(apperr.KindInvalid, "audit %s is already %s", ctx.AuditID, ctx.AuditStatus)
	}
	return allowed()
}

// Title builds the generated audit title.
func Title(plantName string, scheduleDate time.Time) string {
	return fmt.Sprintf("Safety Audit - %s - %s", plantName, scheduleDate.Format("Jan 02, 2006"))
}

// DefaultDescription is the description given to audits started from a schedule.
const DefaultDescription = "Routine safety audit conducted as per schedule"

// HistoryTitle builds the title of the completion record.
func HistoryTitle(auditTitle string) string {
	return "Audit Completed - " + auditTitle
}
