package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/secondary"
)

// ScheduleRepository implements secondary.ScheduleRepository with SQLite.
type ScheduleRepository struct {
	db *sql.DB
}

// NewScheduleRepository creates a new SQLite audit schedule repository.
func NewScheduleRepository(db *sql.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleSelect = `SELECT s.id, s.plant_id, p.name, s.schedule_date, s.status, s.duration_hours, s.created_at, s.updated_at
	FROM audit_schedules s JOIN plants p ON p.id = s.plant_id`

func scanSchedule(row interface{ Scan(...any) error }) (*secondary.ScheduleRecord, error) {
	var createdAt, updatedAt time.Time
	record := &secondary.ScheduleRecord{}
	err := row.Scan(&record.ID, &record.PlantID, &record.PlantName, &record.ScheduleDate, &record.Status, &record.DurationHours, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists a new schedule.
func (r *ScheduleRepository) Create(ctx context.Context, s *secondary.ScheduleRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO audit_schedules (id, plant_id, schedule_date, status, duration_hours) VALUES (?, ?, ?, ?, ?)",
		s.ID, s.PlantID, s.ScheduleDate, s.Status, s.DurationHours,
	)
	if err != nil {
		return fmt.Errorf("failed to create schedule: %w", err)
	}
	return nil
}

// GetByID retrieves a schedule by its ID.
func (r *ScheduleRepository) GetByID(ctx context.Context, id string) (*secondary.ScheduleRecord, error) {
	record, err := scanSchedule(conn(ctx, r.db).QueryRowContext(ctx, scheduleSelect+" WHERE s.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("schedule %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return record, nil
}

// List retrieves schedules matching the given filters, earliest date first.
func (r *ScheduleRepository) List(ctx context.Context, filters secondary.ScheduleFilters) ([]*secondary.ScheduleRecord, error) {
	query := scheduleSelect + " WHERE 1=1"
	args := []any{}

	if filters.PlantID != "" {
		query += " AND s.plant_id = ?"
		args = append(args, filters.PlantID)
	}
	if filters.Status != "" {
		query += " AND s.status = ?"
		args = append(args, filters.Status)
	}
	if filters.AuditorID != "" {
		query += " AND EXISTS (SELECT 1 FROM auditor_allocations a WHERE a.schedule_id = s.id AND a.auditor_id = ?)"
		args = append(args, filters.AuditorID)
	}
	if filters.FromDate != "" {
		query += " AND s.schedule_date >= ?"
		args = append(args, filters.FromDate)
	}
	if filters.ToDate != "" {
		query += " AND s.schedule_date <= ?"
		args = append(args, filters.ToDate)
	}

	query += " ORDER BY s.schedule_date, s.id"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*secondary.ScheduleRecord
	for rows.Next() {
		record, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, record)
	}
	return schedules, rows.Err()
}

// UpdateStatus sets a schedule's status.
func (r *ScheduleRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE audit_schedules SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update schedule status: %w", err)
	}
	return expectRow(result, "schedule", id)
}

// Delete removes a schedule. Its allocations cascade.
func (r *ScheduleRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM audit_schedules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return expectRow(result, "schedule", id)
}

// GetNextID returns the next available schedule ID.
func (r *ScheduleRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, conn(ctx, r.db), "audit_schedules", "SCHED")
}

// CountAudits returns the number of audits referencing the schedule.
func (r *ScheduleRepository) CountAudits(ctx context.Context, scheduleID string) (int, error) {
	n, err := count(ctx, conn(ctx, r.db), "SELECT COUNT(*) FROM audits WHERE schedule_id = ?", scheduleID)
	if err != nil {
		return 0, fmt.Errorf("failed to count audits: %w", err)
	}
	return n, nil
}

var _ secondary.ScheduleRepository = (*ScheduleRepository)(nil)
