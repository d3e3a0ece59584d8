package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/secondary"
)

// AuditRepository implements secondary.AuditRepository with SQLite.
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository creates a new SQLite audit repository.
func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

const auditSelect = `SELECT a.id, a.schedule_id, s.plant_id, a.title, a.description, a.checklist_steps, a.status, a.created_at, a.updated_at
	FROM audits a JOIN audit_schedules s ON s.id = a.schedule_id`

func scanAudit(row interface{ Scan(...any) error }) (*secondary.AuditRecord, error) {
	var (
		desc      sql.NullString
		checklist sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.AuditRecord{}
	err := row.Scan(&record.ID, &record.ScheduleID, &record.PlantID, &record.Title, &desc, &checklist, &record.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.Description = desc.String
	record.ChecklistSteps = checklist.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists a new audit.
func (r *AuditRepository) Create(ctx context.Context, a *secondary.AuditRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO audits (id, schedule_id, title, description, checklist_steps, status) VALUES (?, ?, ?, ?, ?, ?)",
		a.ID, a.ScheduleID, a.Title, nullString(a.Description), nullString(a.ChecklistSteps), a.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit: %w", err)
	}
	return nil
}

// GetByID retrieves an audit by its ID.
func (r *AuditRepository) GetByID(ctx context.Context, id string) (*secondary.AuditRecord, error) {
	record, err := scanAudit(conn(ctx, r.db).QueryRowContext(ctx, auditSelect+" WHERE a.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("audit %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit: %w", err)
	}
	return record, nil
}

// List retrieves audits matching the given filters, newest first.
func (r *AuditRepository) List(ctx context.Context, filters secondary.AuditFilters) ([]*secondary.AuditRecord, error) {
	query := auditSelect + " WHERE 1=1"
	args := []any{}

	if filters.ScheduleID != "" {
		query += " AND a.schedule_id = ?"
		args = append(args, filters.ScheduleID)
	}
	if filters.PlantID != "" {
		query += " AND s.plant_id = ?"
		args = append(args, filters.PlantID)
	}
	if filters.Status != "" {
		query += " AND a.status = ?"
		args = append(args, filters.Status)
	}
	if filters.AuditorID != "" {
		query += " AND EXISTS (SELECT 1 FROM auditor_allocations al WHERE al.schedule_id = a.schedule_id AND al.auditor_id = ?)"
		args = append(args, filters.AuditorID)
	}

	query += " ORDER BY a.updated_at DESC, a.id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audits: %w", err)
	}
	defer rows.Close()

	var audits []*secondary.AuditRecord
	for rows.Next() {
		record, err := scanAudit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit: %w", err)
		}
		audits = append(audits, record)
	}
	return audits, rows.Err()
}

// UpdateStatus sets an audit's status.
func (r *AuditRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE audits SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update audit status: %w", err)
	}
	return expectRow(result, "audit", id)
}

// GetNextID returns the next available audit ID.
func (r *AuditRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, conn(ctx, r.db), "audits", "AUDIT")
}

// CountOpenForSchedule returns the number of audits of a schedule that are not Cancelled.
func (r *AuditRepository) CountOpenForSchedule(ctx context.Context, scheduleID string) (int, error) {
	n, err := count(ctx, conn(ctx, r.db),
		"SELECT COUNT(*) FROM audits WHERE schedule_id = ? AND status != 'Cancelled'", scheduleID)
	if err != nil {
		return 0, fmt.Errorf("failed to count audits: %w", err)
	}
	return n, nil
}

var _ secondary.AuditRepository = (*AuditRepository)(nil)
