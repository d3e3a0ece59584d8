package primary

import "context"

// ScheduleService defines the primary port for audit schedules.
type ScheduleService interface {
	// CreateSchedule creates a schedule and allocates its auditors atomically.
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (*Schedule, error)

	// GetSchedule retrieves a schedule with its allocations and audits.
	// Auditors may only view schedules they are allocated to.
	GetSchedule(ctx context.Context, scheduleID string) (*ScheduleDetail, error)

	// ListSchedules lists schedules with the share of them that are Completed.
	ListSchedules(ctx context.Context, filters ScheduleFilters) (*ScheduleList, error)

	// AssignedSchedules lists the acting auditor's schedules from a week ago onward.
	AssignedSchedules(ctx context.Context) ([]*Schedule, error)

	// SetScheduleStatus writes a schedule status directly.
	SetScheduleStatus(ctx context.Context, scheduleID, newStatus string) error

	// DeleteSchedule deletes a schedule without audits.
	DeleteSchedule(ctx context.Context, scheduleID string) error
}

// CreateScheduleRequest contains parameters for creating a schedule.
type CreateScheduleRequest struct {
	PlantID        string
	ScheduleDate   string // YYYY-MM-DD
	DurationHours  int    // defaults to 8
	AuditorIDs     []string
	AllocationRole string // defaults to Auditor
}

// Schedule is an audit schedule at the port boundary.
type Schedule struct {
	ID            string
	PlantID       string
	PlantName     string
	ScheduleDate  string
	Status        string
	DurationHours int
	CreatedAt     string
}

// Allocation is an auditor allocated to a schedule.
type Allocation struct {
	AuditorID    string
	AuditorName  string
	AssignedDate string
	RoleType     string
}

// ScheduleDetail is a schedule with its allocations and audits.
type ScheduleDetail struct {
	Schedule    *Schedule
	Allocations []*Allocation
	Audits      []*Audit
}

// ScheduleFilters contains filter options for listing schedules.
type ScheduleFilters struct {
	PlantID  string
	Status   string
	FromDate string
	ToDate   string
}

// ScheduleList is a list of schedules with its completion rate.
type ScheduleList struct {
	Schedules      []*Schedule
	Completed      int
	CompletionRate int
}
