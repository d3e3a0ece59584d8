package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/madar/internal/ports/primary"
)

// ScheduleAdapter translates schedule commands to ScheduleService calls.
type ScheduleAdapter struct {
	service primary.ScheduleService
	out     io.Writer
}

// NewScheduleAdapter creates a new ScheduleAdapter with the given service.
func NewScheduleAdapter(service primary.ScheduleService, out io.Writer) *ScheduleAdapter {
	return &ScheduleAdapter{service: service, out: out}
}

// Create schedules an audit and allocates its auditors.
func (a *ScheduleAdapter) Create(ctx context.Context, req primary.CreateScheduleRequest) error {
	schedule, err := a.service.CreateSchedule(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Created schedule %s for %s on %s (%s)",
		schedule.ID, schedule.PlantID, schedule.ScheduleDate, strings.Join(req.AuditorIDs, ", ")))
	return nil
}

// List prints schedules with their completion rate.
func (a *ScheduleAdapter) List(ctx context.Context, filters primary.ScheduleFilters) error {
	list, err := a.service.ListSchedules(ctx, filters)
	if err != nil {
		return err
	}
	if len(list.Schedules) == 0 {
		fmt.Fprintln(a.out, "No schedules found")
		return nil
	}

	a.printSchedules(list.Schedules)
	fmt.Fprintf(a.out, "\n%d of %d completed (%d%%)\n\n", list.Completed, len(list.Schedules), list.CompletionRate)
	return nil
}

// Assigned prints the acting auditor's schedules.
func (a *ScheduleAdapter) Assigned(ctx context.Context) error {
	schedules, err := a.service.AssignedSchedules(ctx)
	if err != nil {
		return err
	}
	if len(schedules) == 0 {
		fmt.Fprintln(a.out, "No assigned schedules")
		return nil
	}
	a.printSchedules(schedules)
	fmt.Fprintln(a.out)
	return nil
}

func (a *ScheduleAdapter) printSchedules(schedules []*primary.Schedule) {
	fmt.Fprintf(a.out, "\n%-12s %-11s %-10s %5s %s\n", "ID", "DATE", "STATUS", "HOURS", "PLANT")
	fmt.Fprintln(a.out, rule)
	for _, s := range schedules {
		plant := s.PlantID
		if s.PlantName != "" {
			plant = s.PlantID + " " + s.PlantName
		}
		fmt.Fprintf(a.out, "%s %-11s %s %5d %s\n",
			idCell(s.ID, 12), s.ScheduleDate, statusCell(s.Status, 10), s.DurationHours, plant)
	}
}

// Show prints a schedule with its allocations and audits.
func (a *ScheduleAdapter) Show(ctx context.Context, scheduleID string) error {
	detail, err := a.service.GetSchedule(ctx, scheduleID)
	if err != nil {
		return err
	}
	s := detail.Schedule

	fmt.Fprintf(a.out, "\nSchedule: %s\n", s.ID)
	fmt.Fprintf(a.out, "Plant:    %s %s\n", s.PlantID, s.PlantName)
	fmt.Fprintf(a.out, "Date:     %s (%d hours)\n", s.ScheduleDate, s.DurationHours)
	fmt.Fprintf(a.out, "Status:   %s\n", statusCell(s.Status, 0))

	fmt.Fprintln(a.out, "\nAuditors:")
	for _, al := range detail.Allocations {
		fmt.Fprintf(a.out, "  %s %-24s %s\n", idCell(al.AuditorID, 10), al.AuditorName, al.RoleType)
	}

	if len(detail.Audits) > 0 {
		fmt.Fprintln(a.out, "\nAudits:")
		for _, au := range detail.Audits {
			fmt.Fprintf(a.out, "  %s %s %s\n", idCell(au.ID, 11), statusCell(au.Status, 13), au.Title)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// SetStatus writes a schedule status.
func (a *ScheduleAdapter) SetStatus(ctx context.Context, scheduleID, newStatus string) error {
	if err := a.service.SetScheduleStatus(ctx, scheduleID, newStatus); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Schedule %s is now %s", scheduleID, newStatus))
	return nil
}

// Delete deletes a schedule.
func (a *ScheduleAdapter) Delete(ctx context.Context, scheduleID string) error {
	if err := a.service.DeleteSchedule(ctx, scheduleID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, ok("Deleted schedule %s", scheduleID))
	return nil
}
