// Package plant contains the pure business logic for plant operations.
package plant

import (
	"fmt"

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

func deny(kind apperr.Kind, format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...), Kind: kind}
}

// SavePlantContext provides context for plant create and update guards.
// OwnerID is the stored area owner on update and empty on create.
type SavePlantContext struct {
	ActorRole          string
	ActorProfileID     string
	OwnerID            string
	ReassignsOwnership bool
	Name               string
	Status             string
	Capacity           int
	AreaOwnerID        string
	AreaOwnerExists    bool
	ManagementID       string
	ManagementExists   bool
}

// CanSavePlant evaluates whether a plant can be created or updated.
// Rules:
// - Actor must be management, or the plant's own area owner updating its
//   profile fields without reassigning ownership
// - Name is required
// - Status must be in the plant vocabulary
// - Capacity must not be negative
// - Area owner and management references must exist
func CanSavePlant(ctx SavePlantContext) GuardResult {
	if !access.HasRole(ctx.ActorRole, access.Management) && !ownerEdit(ctx) {
		return deny(apperr.KindDenied, "access denied")
	}
	if ctx.Name == "" {
		return deny(apperr.KindInvalid, "plant name is required")
	}
	if !status.IsValidPlantStatus(ctx.Status) {
		return deny(apperr.KindInvalid, "invalid plant status %q", ctx.Status)
	}
	if ctx.Capacity < 0 {
		return deny(apperr.KindInvalid, "capacity must not be negative")
	}
	if !ctx.AreaOwnerExists {
		return deny(apperr.KindNotFound, "area owner %s not found", ctx.AreaOwnerID)
	}
	if !ctx.ManagementExists {
		return deny(apperr.KindNotFound, "management %s not found", ctx.ManagementID)
	}
	return GuardResult{Allowed: true}
}

func ownerEdit(ctx SavePlantContext) bool {
	return access.HasRole(ctx.ActorRole, access.AreaOwner) &&
		ctx.OwnerID != "" &&
		ctx.OwnerID == ctx.ActorProfileID &&
		!ctx.ReassignsOwnership
}

// DeletePlantContext provides context for plant deletion guards.
type DeletePlantContext struct {
	ActorRole      string
	PlantID        string
	EquipmentCount int
	ScheduleCount  int
}

// CanDeletePlant evaluates whether a plant can be deleted.
// Rules:
// - Actor must be management
// - No equipment may reference the plant
// - No audit schedule may reference the plant
func CanDeletePlant(ctx DeletePlantContext) GuardResult {
	if !access.HasRole(ctx.ActorRole, access.Management) {
		return deny(apperr.KindDenied, "access denied")
	}
	if ctx.EquipmentCount > 0 {
		return deny(apperr.KindConflict, "cannot delete plant %s: has equipment (%d). Remove equipment first", ctx.PlantID, ctx.EquipmentCount)
	}
	if ctx.ScheduleCount > 0 {
		return deny(apperr.KindConflict, "cannot delete plant %s: has audit schedules (%d)", ctx.PlantID, ctx.ScheduleCount)
	}
	return GuardResult{Allowed: true}
}
