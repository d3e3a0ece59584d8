// Package equipment contains the pure business logic for plant equipment.
package equipment

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

// ManageContext provides context for equipment add/update/delete guards.
type ManageContext struct {
	ActorRole        string
	ActorProfileID   string
	PlantID          string
	PlantExists      bool
	PlantAreaOwnerID string
}

// CanManage evaluates whether the actor may change equipment of a plant.
// Rules:
// - Plant must exist
// - Management may manage any plant
// - An area owner may manage only the plants they own
func CanManage(ctx ManageContext) GuardResult {
	if !ctx.PlantExists {
		return deny(apperr.KindNotFound, "plant %s not found", ctx.PlantID)
	}
	if access.HasRole(ctx.ActorRole, access.Management) {
		return GuardResult{Allowed: true}
	}
	if access.HasRole(ctx.ActorRole, access.AreaOwner) && ctx.ActorProfileID == ctx.PlantAreaOwnerID {
		return GuardResult{Allowed: true}
	}
	return deny(apperr.KindDenied, "access denied")
}

// ValidateContext provides the editable equipment fields.
type ValidateContext struct {
	Name             string
	Status           string
	Capacity         int
	MaintenanceCycle int
}

// Validate checks equipment field values.
// Rules:
// - Name is required
// - Status must be in the equipment vocabulary
// - Capacity and maintenance cycle must not be negative
func Validate(ctx ValidateContext) GuardResult {
	if ctx.Name == "" {
		return deny(apperr.KindInvalid, "equipment name is required")
	}
	if !status.IsValidEquipmentStatus(ctx.Status) {
		return deny(apperr.KindInvalid, "invalid equipment status %q", ctx.Status)
	}
	if ctx.Capacity < 0 || ctx.MaintenanceCycle < 0 {
		return deny(apperr.KindInvalid, "capacity and maintenance cycle must not be negative")
	}
	return GuardResult{Allowed: true}
}
