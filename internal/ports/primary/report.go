package primary

import (
	"context"
	"time"
)

// ReportService defines the primary port for reports and dashboards.
type ReportService interface {
	// PerformanceReport computes rates, rollups and the score timeline.
	PerformanceReport(ctx context.Context, req PerformanceReportRequest) (*PerformanceReport, error)

	// ManagementDashboard summarises the whole system for management.
	ManagementDashboard(ctx context.Context) (*ManagementDashboard, error)

	// AuditorDashboard summarises the acting auditor's work.
	AuditorDashboard(ctx context.Context) (*AuditorDashboard, error)

	// AreaOwnerDashboard summarises the acting area owner's plants.
	AreaOwnerDashboard(ctx context.Context) (*AreaOwnerDashboard, error)
}

// PerformanceReportRequest selects the report period and scope.
type PerformanceReportRequest struct {
	Period    string // monthly, quarterly or yearly
	PlantID   string
	AuditorID string
}

// PerformanceReport is the performance report.
type PerformanceReport struct {
	Period             string
	GeneratedAt        time.Time
	TotalAudits        int
	ComplianceRate     int
	AverageScore       int
	CompletionRate     int
	OpenActions        int
	OverdueActions     int
	PlantPerformance   []PlantPerformanceRow
	AuditorPerformance []AuditorPerformanceRow
	Timeline           []TimelinePoint
}

// PlantPerformanceRow is one plant's rollup.
type PlantPerformanceRow struct {
	PlantID        string
	Name           string
	AuditCount     int
	AverageScore   int
	EquipmentCount int
	ComplianceRate int
}

// AuditorPerformanceRow is one auditor's rollup.
type AuditorPerformanceRow struct {
	AuditorID      string
	Name           string
	AuditCount     int
	AverageScore   int
	CompletionRate int
}

// TimelinePoint is one bucket of the score timeline.
type TimelinePoint struct {
	Label        string
	AverageScore int
	Count        int
}

// Notification is one dashboard alert.
type Notification struct {
	Kind     string // overdue_action, audit_today, action_due_soon
	EntityID string
	Message  string
	Severity string // a colour tag
}

// ManagementDashboard is the management overview.
type ManagementDashboard struct {
	TotalPlants          int
	TotalEquipment       int
	TotalAudits          int
	TotalUsers           int
	PendingAudits        int
	OverdueActions       int
	CriticalActions      int
	AuditCompletionRate  int
	ActionCompletionRate int
	AuditsByStatus       map[string]int
	ActionsDueThisWeek   []*Action
	UpcomingSchedules    []*Schedule
	RecentUsers          []RecentUser
	Notifications        []Notification
}

// RecentUser is a recently created account.
type RecentUser struct {
	UserID    string
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

// AuditorDashboard is the auditor overview.
type AuditorDashboard struct {
	UpcomingSchedules []*Schedule
	TodaySchedules    []*Schedule
	RecentClosed      []*Audit
	PendingAudits     int
}

// AreaOwnerDashboard is the area owner overview.
type AreaOwnerDashboard struct {
	Plants                 []*Plant
	EquipmentCount         int
	EquipmentInMaintenance int
	UpcomingSchedules      []*Schedule
	OpenActions            int
	OverdueActions         int
	TeamSize               int
	Notifications          []Notification
}
