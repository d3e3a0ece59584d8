package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/madar/internal/ports/primary"
)

// AuditAdapter translates audit commands to AuditService calls.
type AuditAdapter struct {
	service primary.AuditService
	out     io.Writer
}

// NewAuditAdapter creates a new AuditAdapter with the given service.
func NewAuditAdapter(service primary.AuditService, out io.Writer) *AuditAdapter {
	return &AuditAdapter{service: service, out: out}
}

// Start opens an audit on a schedule.
func (a *AuditAdapter) Start(ctx context.Context, scheduleID string) error {
	audit, err := a.service.StartAudit(ctx, scheduleID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Started audit %s: %s", audit.ID, audit.Title))
	return nil
}

// List prints audits.
func (a *AuditAdapter) List(ctx context.Context, filters primary.AuditFilters) error {
	audits, err := a.service.ListAudits(ctx, filters)
	if err != nil {
		return err
	}
	if len(audits) == 0 {
		fmt.Fprintln(a.out, "No audits found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-11s %-13s %-12s %s\n", "ID", "STATUS", "SCHEDULE", "TITLE")
	fmt.Fprintln(a.out, rule)
	for _, au := range audits {
		fmt.Fprintf(a.out, "%s %s %-12s %s\n", idCell(au.ID, 11), statusCell(au.Status, 13), au.ScheduleID, au.Title)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Show prints an audit with attendance, evidence, actions and its completion record.
func (a *AuditAdapter) Show(ctx context.Context, auditID string) error {
	detail, err := a.service.GetAudit(ctx, auditID)
	if err != nil {
		return err
	}
	au := detail.Audit

	fmt.Fprintf(a.out, "\nAudit:    %s\n", au.ID)
	fmt.Fprintf(a.out, "Title:    %s\n", au.Title)
	fmt.Fprintf(a.out, "Status:   %s\n", statusCell(au.Status, 0))
	fmt.Fprintf(a.out, "Schedule: %s (plant %s)\n", au.ScheduleID, au.PlantID)
	if au.Description != "" {
		fmt.Fprintf(a.out, "Notes:    %s\n", au.Description)
	}

	if len(detail.Attendance) > 0 {
		fmt.Fprintln(a.out, "\nAttendance:")
		for _, at := range detail.Attendance {
			fmt.Fprintf(a.out, "  %-10s %-11s %-8s %s-%s\n",
				at.AuditorID, at.AttendDate, at.Status, orDash(at.ArrivalTime), orDash(at.DepartureTime))
		}
	}

	if len(detail.Evidence) > 0 {
		fmt.Fprintln(a.out, "\nEvidence:")
		for _, e := range detail.Evidence {
			fmt.Fprintf(a.out, "  %s %-24s %s\n", idCell(e.ID, 9), e.Title, e.URL)
		}
	}

	if len(detail.Actions) > 0 {
		fmt.Fprintln(a.out, "\nCorrective actions:")
		for _, c := range detail.Actions {
			fmt.Fprintf(a.out, "  %s %s %-11s %s\n", idCell(c.ID, 8), statusCell(c.Status, 11), c.Deadline, c.Description)
		}
	}

	if h := detail.History; h != nil {
		fmt.Fprintf(a.out, "\nCompletion: %s score %s, escalation %s, review %s\n",
			h.ID, scoreText(h.Score), priorityCell(h.EscalationLevel, 0), statusCell(h.Status, 0))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Attend records attendance.
func (a *AuditAdapter) Attend(ctx context.Context, req primary.RecordAttendanceRequest) error {
	att, err := a.service.RecordAttendance(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Recorded %s as %s on %s for %s", att.AuditorID, att.Status, att.AttendDate, att.AuditID))
	return nil
}

// AddEvidence stores a file against an audit.
func (a *AuditAdapter) AddEvidence(ctx context.Context, req primary.AddEvidenceRequest) error {
	evidence, err := a.service.AddEvidence(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Added evidence %s: %s", evidence.ID, evidence.URL))
	return nil
}

// DeleteEvidence removes evidence.
func (a *AuditAdapter) DeleteEvidence(ctx context.Context, evidenceID string) error {
	if err := a.service.DeleteEvidence(ctx, evidenceID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Deleted evidence %s", evidenceID))
	return nil
}

// Complete submits an audit for review.
func (a *AuditAdapter) Complete(ctx context.Context, req primary.CompleteAuditRequest) error {
	resp, err := a.service.CompleteAudit(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Audit %s submitted for review (%s)", resp.AuditID, resp.HistoryID))
	fmt.Fprintf(a.out, "  Score: %s  Escalation: %s\n", scoreText(req.Score), priorityCell(resp.EscalationLevel, 0))
	return nil
}

// Cancel cancels an audit.
func (a *AuditAdapter) Cancel(ctx context.Context, auditID string) error {
	if err := a.service.CancelAudit(ctx, auditID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Audit %s cancelled", auditID))
	return nil
}
