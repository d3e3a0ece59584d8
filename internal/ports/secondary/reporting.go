package secondary

import (
	"context"
	"time"
)

// ReportRepository defines the read-model queries behind reports and
// dashboards. Each method is a single batch query.
type ReportRepository interface {
	// AuditFacts returns every audit with its plant and completion score.
	AuditFacts(ctx context.Context, filters ReportFilters) ([]AuditFact, error)

	// AllocationFacts returns schedule/auditor pairs for the filtered audits' schedules.
	AllocationFacts(ctx context.Context, filters ReportFilters) ([]AllocationFact, error)

	// ActionFacts returns every corrective action of the filtered audits.
	ActionFacts(ctx context.Context, filters ReportFilters) ([]ActionFact, error)

	// PlantFacts returns all plants, or the filtered one.
	PlantFacts(ctx context.Context, filters ReportFilters) ([]PlantFact, error)

	// AuditorFacts returns all auditors, or the filtered one.
	AuditorFacts(ctx context.Context, filters ReportFilters) ([]AuditorFact, error)

	// CountRows returns the number of rows in a reportable table.
	CountRows(ctx context.Context, table string) (int, error)

	// CountByStatus returns row counts per status for a reportable table.
	CountByStatus(ctx context.Context, table string) (map[string]int, error)

	// RecentUsers returns users created at or after since, newest first.
	RecentUsers(ctx context.Context, since time.Time, limit int) ([]UserFact, error)
}

// Reportable tables accepted by CountRows and CountByStatus.
const (
	TablePlants    = "plants"
	TableEquipment = "equipment"
	TableSchedules = "audit_schedules"
	TableAudits    = "audits"
	TableActions   = "corrective_actions"
	TableUsers     = "users"
)

// ReportFilters narrows report queries to one plant and/or one auditor.
type ReportFilters struct {
	PlantID   string
	AuditorID string
}

// AuditFact is one audit joined with its schedule and completion record.
type AuditFact struct {
	AuditID          string     `db:"audit_id"`
	ScheduleID       string     `db:"schedule_id"`
	PlantID          string     `db:"plant_id"`
	Status           string     `db:"status"`
	Score            *float64   `db:"score"`
	HasHistory       bool       `db:"has_history"`
	HistoryCreatedAt *time.Time `db:"history_created_at"`
}

// AllocationFact is one schedule/auditor allocation.
type AllocationFact struct {
	ScheduleID string `db:"schedule_id"`
	AuditorID  string `db:"auditor_id"`
}

// ActionFact is the minimal corrective action view used for counts.
type ActionFact struct {
	ActionID string `db:"action_id"`
	AuditID  string `db:"audit_id"`
	PlantID  string `db:"plant_id"`
	Status   string `db:"status"`
	Deadline string `db:"deadline"`
}

// PlantFact is the plant view used for performance rows.
type PlantFact struct {
	PlantID        string `db:"plant_id"`
	Name           string `db:"name"`
	EquipmentCount int    `db:"equipment_count"`
}

// AuditorFact is the auditor view used for performance rows.
type AuditorFact struct {
	AuditorID string `db:"auditor_id"`
	Name      string `db:"name"`
}

// UserFact is the user view used for the recent users panel.
type UserFact struct {
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	UserType  string    `db:"user_type"`
	CreatedAt time.Time `db:"created_at"`
}
