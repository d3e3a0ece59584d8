package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	"github.com/example/madar/internal/core/status"
	"github.com/example/madar/internal/ports/primary"
)

// ReportAdapter renders reports and role dashboards.
type ReportAdapter struct {
	service primary.ReportService
	out     io.Writer
}

// NewReportAdapter creates a new ReportAdapter with the given service.
func NewReportAdapter(service primary.ReportService, out io.Writer) *ReportAdapter {
	return &ReportAdapter{service: service, out: out}
}

// Performance prints the performance report.
func (a *ReportAdapter) Performance(ctx context.Context, req primary.PerformanceReportRequest) error {
	r, err := a.service.PerformanceReport(ctx, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nPerformance report (%s), generated %s\n", r.Period, r.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "Audits:          %d\n", r.TotalAudits)
	fmt.Fprintf(a.out, "Compliance rate: %d%%\n", r.ComplianceRate)
	fmt.Fprintf(a.out, "Average score:   %d\n", r.AverageScore)
	fmt.Fprintf(a.out, "Completion rate: %d%%\n", r.CompletionRate)
	fmt.Fprintf(a.out, "Open actions:    %d (%d overdue)\n", r.OpenActions, r.OverdueActions)

	if len(r.PlantPerformance) > 0 {
		fmt.Fprintf(a.out, "\n%-12s %-24s %6s %6s %9s %s\n", "PLANT", "NAME", "AUDITS", "AVG", "EQUIPMENT", "COMPLIANCE")
		for _, p := range r.PlantPerformance {
			fmt.Fprintf(a.out, "%s %-24s %6d %6d %9d %d%%\n",
				idCell(p.PlantID, 12), p.Name, p.AuditCount, p.AverageScore, p.EquipmentCount, p.ComplianceRate)
		}
	}

	if len(r.AuditorPerformance) > 0 {
		fmt.Fprintf(a.out, "\n%-10s %-24s %6s %6s %s\n", "AUDITOR", "NAME", "AUDITS", "AVG", "COMPLETION")
		for _, p := range r.AuditorPerformance {
			fmt.Fprintf(a.out, "%s %-24s %6d %6d %d%%\n",
				idCell(p.AuditorID, 10), p.Name, p.AuditCount, p.AverageScore, p.CompletionRate)
		}
	}

	if len(r.Timeline) > 0 {
		fmt.Fprintln(a.out, "\nTimeline:")
		for _, pt := range r.Timeline {
			fmt.Fprintf(a.out, "  %-10s avg %3d over %d audits\n", pt.Label, pt.AverageScore, pt.Count)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// Dashboard prints the dashboard of the acting role.
func (a *ReportAdapter) Dashboard(ctx context.Context, role string) error {
	switch role {
	case access.Management:
		return a.management(ctx)
	case access.Auditor:
		return a.auditor(ctx)
	case access.AreaOwner:
		return a.areaOwner(ctx)
	default:
		return apperr.Invalid("no dashboard for role %q", role)
	}
}

func (a *ReportAdapter) management(ctx context.Context) error {
	d, err := a.service.ManagementDashboard(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nManagement dashboard")
	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "Plants: %d  Equipment: %d  Audits: %d  Users: %d\n", d.TotalPlants, d.TotalEquipment, d.TotalAudits, d.TotalUsers)
	fmt.Fprintf(a.out, "Pending audits: %d  Overdue actions: %d  Critical actions: %d\n", d.PendingAudits, d.OverdueActions, d.CriticalActions)
	fmt.Fprintf(a.out, "Audit completion: %d%%  Action completion: %d%%\n", d.AuditCompletionRate, d.ActionCompletionRate)

	if len(d.AuditsByStatus) > 0 {
		fmt.Fprint(a.out, "Audits by status:")
		for _, s := range []string{status.AuditDraft, status.AuditInProgress, status.AuditUnderReview, status.AuditClosed, status.AuditCancelled} {
			if n := d.AuditsByStatus[s]; n > 0 {
				fmt.Fprintf(a.out, " %s=%d", s, n)
			}
		}
		fmt.Fprintln(a.out)
	}

	a.printSchedules("Upcoming audits", d.UpcomingSchedules)
	a.printActions("Actions due this week", d.ActionsDueThisWeek)

	if len(d.RecentUsers) > 0 {
		fmt.Fprintln(a.out, "\nNew users:")
		for _, u := range d.RecentUsers {
			fmt.Fprintf(a.out, "  %-10s %-20s %-28s %s\n", u.UserID, u.Name, u.Email, u.Role)
		}
	}
	a.printNotifications(d.Notifications)
	fmt.Fprintln(a.out)
	return nil
}

func (a *ReportAdapter) auditor(ctx context.Context) error {
	d, err := a.service.AuditorDashboard(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nAuditor dashboard")
	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "Pending audits: %d\n", d.PendingAudits)
	a.printSchedules("Today", d.TodaySchedules)
	a.printSchedules("Upcoming", d.UpcomingSchedules)
	if len(d.RecentClosed) > 0 {
		fmt.Fprintln(a.out, "\nRecently closed:")
		for _, au := range d.RecentClosed {
			fmt.Fprintf(a.out, "  %s %s\n", idCell(au.ID, 11), au.Title)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *ReportAdapter) areaOwner(ctx context.Context) error {
	d, err := a.service.AreaOwnerDashboard(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\nArea owner dashboard")
	fmt.Fprintln(a.out, rule)
	fmt.Fprintf(a.out, "Plants: %d  Equipment: %d (%d in maintenance)  Team: %d\n",
		len(d.Plants), d.EquipmentCount, d.EquipmentInMaintenance, d.TeamSize)
	fmt.Fprintf(a.out, "Open actions: %d  Overdue: %d\n", d.OpenActions, d.OverdueActions)
	for _, p := range d.Plants {
		fmt.Fprintf(a.out, "  %s %s %s\n", idCell(p.ID, 12), statusCell(p.Status, 18), p.Name)
	}
	a.printSchedules("Upcoming audits", d.UpcomingSchedules)
	a.printNotifications(d.Notifications)
	fmt.Fprintln(a.out)
	return nil
}

func (a *ReportAdapter) printSchedules(title string, schedules []*primary.Schedule) {
	if len(schedules) == 0 {
		return
	}
	fmt.Fprintf(a.out, "\n%s:\n", title)
	for _, s := range schedules {
		fmt.Fprintf(a.out, "  %s %-11s %s %s\n", idCell(s.ID, 12), s.ScheduleDate, s.PlantID, s.PlantName)
	}
}

func (a *ReportAdapter) printActions(title string, actions []*primary.Action) {
	if len(actions) == 0 {
		return
	}
	fmt.Fprintf(a.out, "\n%s:\n", title)
	for _, c := range actions {
		fmt.Fprintf(a.out, "  %s %-11s %s %s\n", idCell(c.ID, 8), c.Deadline, statusCell(c.Status, 11), c.Description)
	}
}

func (a *ReportAdapter) printNotifications(notes []primary.Notification) {
	if len(notes) == 0 {
		return
	}
	fmt.Fprintln(a.out, "\nNotifications:")
	for _, n := range notes {
		fmt.Fprintf(a.out, "  %s\n", tagColor(status.ColorTag(n.Severity)).Sprint(n.Message))
	}
}
