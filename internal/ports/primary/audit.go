package primary

import (
	"context"
	"io"
)

// AuditService defines the primary port for conducting audits.
type AuditService interface {
	// StartAudit creates an In_Progress audit for a Scheduled schedule.
	StartAudit(ctx context.Context, scheduleID string) (*Audit, error)

	// GetAudit retrieves an audit with its attendance, evidence and actions.
	GetAudit(ctx context.Context, auditID string) (*AuditDetail, error)

	// ListAudits lists audits with optional filters.
	ListAudits(ctx context.Context, filters AuditFilters) ([]*Audit, error)

	// RecordAttendance creates or updates an auditor's attendance entry.
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (*Attendance, error)

	// AddEvidence stores a file and attaches it to an audit.
	AddEvidence(ctx context.Context, req AddEvidenceRequest) (*Evidence, error)

	// DeleteEvidence removes the stored file and the evidence row.
	DeleteEvidence(ctx context.Context, evidenceID string) error

	// CompleteAudit submits an audit for review, completing its schedule and
	// recording its score in one transaction.
	CompleteAudit(ctx context.Context, req CompleteAuditRequest) (*CompleteAuditResponse, error)

	// CancelAudit cancels a non-terminal audit.
	CancelAudit(ctx context.Context, auditID string) error
}

// Audit is an audit at the port boundary.
type Audit struct {
	ID             string
	ScheduleID     string
	PlantID        string
	Title          string
	Description    string
	ChecklistSteps string
	Status         string
	CreatedAt      string
	UpdatedAt      string
}

// AuditDetail is an audit with everything recorded against it.
type AuditDetail struct {
	Audit      *Audit
	Attendance []*Attendance
	Evidence   []*Evidence
	Actions    []*Action
	History    *History // nil until completed
}

// AuditFilters contains filter options for listing audits.
type AuditFilters struct {
	ScheduleID string
	PlantID    string
	Status     string
	Mine       bool // only audits of schedules the acting auditor is allocated to
	Limit      int
}

// RecordAttendanceRequest contains an attendance entry.
type RecordAttendanceRequest struct {
	AuditID             string
	AuditorID           string // defaults to the acting auditor
	ResponsiblePersonID string
	AttendDate          string // defaults to today
	Status              string
	ArrivalTime         string
	DepartureTime       string
}

// Attendance is an attendance entry at the port boundary.
type Attendance struct {
	ID                  string
	AuditID             string
	AuditorID           string
	ResponsiblePersonID string
	AttendDate          string
	Status              string
	ArrivalTime         string
	DepartureTime       string
}

// AddEvidenceRequest contains an evidence upload.
type AddEvidenceRequest struct {
	AuditID  string
	ActionID string
	Title    string
	FileName string
	Size     int64
	Content  io.Reader
}

// Evidence is evidence at the port boundary.
type Evidence struct {
	ID        string
	AuditID   string
	ActionID  string
	Title     string
	URL       string
	CreatedAt string
}

// CompleteAuditRequest contains the outcome of an audit.
type CompleteAuditRequest struct {
	AuditID  string
	Score    *float64
	Comments string
}

// CompleteAuditResponse contains the completion record created.
type CompleteAuditResponse struct {
	AuditID         string
	HistoryID       string
	EscalationLevel string
}
