package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/madar/internal/ports/secondary"
)

// AllocationRepository implements secondary.AllocationRepository with SQLite.
type AllocationRepository struct {
	db *sql.DB
}

// NewAllocationRepository creates a new SQLite auditor allocation repository.
func NewAllocationRepository(db *sql.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

// Create persists a new allocation.
func (r *AllocationRepository) Create(ctx context.Context, a *secondary.AllocationRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO auditor_allocations (auditor_id, schedule_id, assigned_date, role_type) VALUES (?, ?, ?, ?)",
		a.AuditorID, a.ScheduleID, a.AssignedDate, a.RoleType,
	)
	if err != nil {
		return fmt.Errorf("failed to allocate auditor %s: %w", a.AuditorID, err)
	}
	return nil
}

// ListBySchedule retrieves the allocations of a schedule.
func (r *AllocationRepository) ListBySchedule(ctx context.Context, scheduleID string) ([]*secondary.AllocationRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		`SELECT a.auditor_id, a.schedule_id, au.first_name || ' ' || au.last_name, a.assigned_date, a.role_type
		FROM auditor_allocations a JOIN auditors au ON au.id = a.auditor_id
		WHERE a.schedule_id = ? ORDER BY a.auditor_id`,
		scheduleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list allocations: %w", err)
	}
	defer rows.Close()

	var allocations []*secondary.AllocationRecord
	for rows.Next() {
		record := &secondary.AllocationRecord{}
		if err := rows.Scan(&record.AuditorID, &record.ScheduleID, &record.AuditorName, &record.AssignedDate, &record.RoleType); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, record)
	}
	return allocations, rows.Err()
}

// Exists checks whether an auditor is allocated to a schedule.
func (r *AllocationRepository) Exists(ctx context.Context, auditorID, scheduleID string) (bool, error) {
	n, err := count(ctx, conn(ctx, r.db),
		"SELECT COUNT(*) FROM auditor_allocations WHERE auditor_id = ? AND schedule_id = ?",
		auditorID, scheduleID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to check allocation: %w", err)
	}
	return n > 0, nil
}

var _ secondary.AllocationRepository = (*AllocationRepository)(nil)
