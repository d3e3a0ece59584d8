// Package attendance validates auditor attendance entries.
package attendance

import (
	"fmt"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/calendar"
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

// EntryContext describes one attendance entry being recorded.
type EntryContext struct {
	ActorIsAllocated bool
	AuditorID        string
	AuditorAllocated bool
	Status           string
	ArrivalTime      string
	DepartureTime    string
}

// CanRecord evaluates whether an attendance entry can be saved.
// Rules:
// - Actor must be allocated to the audit's schedule
// - The auditor the entry is for must be allocated too
// - Status must be in the attendance vocabulary
// - Times must be HH:MM; departure, if set, must be after arrival
func CanRecord(ctx EntryContext) GuardResult {
	if !ctx.ActorIsAllocated {
		return deny(apperr.KindDenied, "access denied")
	}
	if !ctx.AuditorAllocated {
		return deny(apperr.KindInvalid, "auditor %s is not allocated to this audit", ctx.AuditorID)
	}
	if !status.IsValidAttendanceStatus(ctx.Status) {
		return deny(apperr.KindInvalid, "invalid attendance status %q", ctx.Status)
	}
	var arrival int
	if ctx.ArrivalTime != "" {
		m, err := calendar.ParseClock(ctx.ArrivalTime)
		if err != nil {
			return deny(apperr.KindInvalid, "arrival: %v", err)
		}
		arrival = m
	}
	if ctx.DepartureTime != "" {
		if ctx.ArrivalTime == "" {
			return deny(apperr.KindInvalid, "departure time requires an arrival time")
		}
		departure, err := calendar.ParseClock(ctx.DepartureTime)
		if err != nil {
			return deny(apperr.KindInvalid, "departure: %v", err)
		}
		if departure <= arrival {
			return deny(apperr.KindInvalid, "departure time %s must be after arrival time %s", ctx.DepartureTime, ctx.ArrivalTime)
		}
	}
	return GuardResult{Allowed: true}
}
