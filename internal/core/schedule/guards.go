// Package schedule contains the pure business logic for audit schedules
// and auditor allocations.
package schedule

import (
	"fmt"
	"strings"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	"github.com/example/madar/internal/core/status"
)

// Duration bounds, in hours.
const (
	MinDurationHours     = 1
	MaxDurationHours     = 480
	DefaultDurationHours = 8
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

// CreateScheduleContext provides context for schedule creation guards.
type CreateScheduleContext struct {
	ActorRole       string
	PlantID         string
	PlantExists     bool
	PlantStatus     string
	DurationHours   int
	AuditorIDs      []string
	MissingAuditors []string
	AllocationRole  string
}

// CanCreateSchedule evaluates whether a schedule can be created.
// Rules:
// - Actor must be management
// - Plant must exist and not be decommissioned
// - Duration must be within 1..480 hours
// - At least one auditor, all of which exist
// - Allocation role must be valid
func CanCreateSchedule(ctx CreateScheduleContext) GuardResult {
	if !access.HasRole(ctx.ActorRole, access.Management) {
		return deny(apperr.KindDenied, "access denied")
	}
	if !ctx.PlantExists {
		return deny(apperr.KindNotFound, "plant %s not found", ctx.PlantID)
	}
	if ctx.PlantStatus == status.PlantDecommissioned {
		return deny(apperr.KindInvalid, "cannot schedule audits for decommissioned plant %s", ctx.PlantID)
	}
	if ctx.DurationHours < MinDurationHours || ctx.DurationHours > MaxDurationHours {
		return deny(apperr.KindInvalid, "duration must be between %d and %d hours (got %d)", MinDurationHours, MaxDurationHours, ctx.DurationHours)
	}
	if len(ctx.AuditorIDs) == 0 {
		return deny(apperr.KindInvalid, "at least one auditor must be allocated")
	}
	if len(ctx.MissingAuditors) > 0 {
		return deny(apperr.KindNotFound, "auditor(s) not found: %s", strings.Join(ctx.MissingAuditors, ", "))
	}
	if !status.IsValidAllocationRole(ctx.AllocationRole) {
		return deny(apperr.KindInvalid, "invalid allocation role %q", ctx.AllocationRole)
	}
	return GuardResult{Allowed: true}
}

// SetStatusContext provides context for direct schedule status writes.
type SetStatusContext struct {
	ActorRole string
	NewStatus string
}

// CanSetStatus evaluates whether a schedule status can be written.
// Rules:
// - Actor must be management
// - Status must be in the schedule vocabulary
func CanSetStatus(ctx SetStatusContext) GuardResult {
	if !access.HasRole(ctx.ActorRole, access.Management) {
		return deny(apperr.KindDenied, "access denied")
	}
	if !status.IsValidScheduleStatus(ctx.NewStatus) {
		return deny(apperr.KindInvalid, "invalid schedule status %q", ctx.NewStatus)
	}
	return GuardResult{Allowed: true}
}

// DeleteScheduleContext provides context for schedule deletion guards.
type DeleteScheduleContext struct {
	ActorRole  string
	ScheduleID string
	AuditCount int
}

// CanDeleteSchedule evaluates whether a schedule can be deleted.
// Allocations cascade; audits do not.
// Rules:
// - Actor must be management
// - No audit may reference the schedule
func CanDeleteSchedule(ctx DeleteScheduleContext) GuardResult {
	if !access.HasRole(ctx.ActorRole, access.Management) {
		return deny(apperr.KindDenied, "access denied")
	}
	if ctx.AuditCount > 0 {
		return deny(apperr.KindConflict, "cannot delete schedule %s: has audits (%d)", ctx.ScheduleID, ctx.AuditCount)
	}
	return GuardResult{Allowed: true}
}

// ViewScheduleContext provides context for viewing a schedule.
type ViewScheduleContext struct {
	ActorRole        string
	ActorIsAllocated bool
}

// CanViewSchedule evaluates whether the actor may see a schedule's details.
// Rules:
// - Management sees every schedule
// - Auditors see schedules they are allocated to
func CanViewSchedule(ctx ViewScheduleContext) GuardResult {
	if access.HasRole(ctx.ActorRole, access.Management) {
		return GuardResult{Allowed: true}
	}
	if access.HasRole(ctx.ActorRole, access.Auditor) && ctx.ActorIsAllocated {
		return GuardResult{Allowed: true}
	}
	return deny(apperr.KindDenied, "access denied")
}
