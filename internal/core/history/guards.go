// Package history contains the rules for reviewing audit completion records.
package history

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

// ReviewContext provides context for a management review.
type ReviewContext struct {
	HistoryID     string
	ActorRole     string
	CurrentStatus string
	NewStatus     string
	AuditStatus   string
}

// CanReview evaluates whether a completion record can be reviewed.
// Rules:
// - Actor must be management
// - Record must be Pending or Under_Review
// - New status must be Approved, Rejected or Under_Review
// - Approval requires the audit to be Under_Review, since it closes the audit
func CanReview(ctx ReviewContext) GuardResult {
	if !access.HasRole(ctx.ActorRole, access.Management) {
		return GuardResult{Reason: "access denied", Kind: apperr.KindDenied}
	}
	if ctx.CurrentStatus != status.ReviewPending && ctx.CurrentStatus != status.ReviewUnderReview {
		return GuardResult{
			Reason: fmt.Sprintf("history %s has already been reviewed (%s)", ctx.HistoryID, ctx.CurrentStatus),
			Kind:   apperr.KindInvalid,
		}
	}
	switch ctx.NewStatus {
	case status.ReviewApproved, status.ReviewRejected, status.ReviewUnderReview:
	default:
		return GuardResult{
			Reason: fmt.Sprintf("invalid review status %q", ctx.NewStatus),
			Kind:   apperr.KindInvalid,
		}
	}
	if ctx.NewStatus == status.ReviewApproved && ctx.AuditStatus != status.AuditUnderReview {
		return GuardResult{
			Reason: fmt.Sprintf("cannot approve history %s: audit is %s", ctx.HistoryID, ctx.AuditStatus),
			Kind:   apperr.KindInvalid,
		}
	}
	return GuardResult{Allowed: true}
}
