package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/secondary"
)

// AttendanceRepository implements secondary.AttendanceRepository with SQLite.
type AttendanceRepository struct {
	db *sql.DB
}

// NewAttendanceRepository creates a new SQLite attendance repository.
func NewAttendanceRepository(db *sql.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

const attendanceColumns = "id, audit_id, auditor_id, responsible_person_id, attend_date, status, arrival_time, departure_time"

func scanAttendance(row interface{ Scan(...any) error }) (*secondary.AttendanceRecord, error) {
	var respID, arrival, departure sql.NullString
	record := &secondary.AttendanceRecord{}
	err := row.Scan(&record.ID, &record.AuditID, &record.AuditorID, &respID, &record.AttendDate, &record.Status, &arrival, &departure)
	if err != nil {
		return nil, err
	}
	record.ResponsiblePersonID = respID.String
	record.ArrivalTime = arrival.String
	record.DepartureTime = departure.String
	return record, nil
}

// Create persists a new attendance entry.
func (r *AttendanceRepository) Create(ctx context.Context, a *secondary.AttendanceRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO audit_attendance (id, audit_id, auditor_id, responsible_person_id, attend_date, status, arrival_time, departure_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.AuditID, a.AuditorID, nullString(a.ResponsiblePersonID), a.AttendDate, a.Status, nullString(a.ArrivalTime), nullString(a.DepartureTime),
	)
	if err != nil {
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	return nil
}

// Update updates an existing attendance entry.
func (r *AttendanceRepository) Update(ctx context.Context, a *secondary.AttendanceRecord) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE audit_attendance SET responsible_person_id = ?, attend_date = ?, status = ?, arrival_time = ?, departure_time = ?
		WHERE id = ?`,
		nullString(a.ResponsiblePersonID), a.AttendDate, a.Status, nullString(a.ArrivalTime), nullString(a.DepartureTime), a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	return expectRow(result, "attendance", a.ID)
}

// GetByAuditAndAuditor retrieves an auditor's entry for an audit.
func (r *AttendanceRepository) GetByAuditAndAuditor(ctx context.Context, auditID, auditorID string) (*secondary.AttendanceRecord, error) {
	record, err := scanAttendance(conn(ctx, r.db).QueryRowContext(ctx,
		"SELECT "+attendanceColumns+" FROM audit_attendance WHERE audit_id = ? AND auditor_id = ?", auditID, auditorID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("attendance for auditor %s on audit %s not found", auditorID, auditID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return record, nil
}

// ListByAudit retrieves the entries of an audit.
func (r *AttendanceRepository) ListByAudit(ctx context.Context, auditID string) ([]*secondary.AttendanceRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		"SELECT "+attendanceColumns+" FROM audit_attendance WHERE audit_id = ? ORDER BY auditor_id", auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AttendanceRecord
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		entries = append(entries, record)
	}
	return entries, rows.Err()
}

// GetNextID returns the next available attendance ID.
func (r *AttendanceRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, conn(ctx, r.db), "audit_attendance", "ATT")
}

var _ secondary.AttendanceRepository = (*AttendanceRepository)(nil)
