package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/secondary"
)

// ActionRepository implements secondary.ActionRepository with SQLite.
type ActionRepository struct {
	db *sql.DB
}

// NewActionRepository creates a new SQLite corrective action repository.
func NewActionRepository(db *sql.DB) *ActionRepository {
	return &ActionRepository{db: db}
}

const actionSelect = `SELECT c.id, c.audit_id, c.responsible_person_id, c.mgmt_id, c.description, c.deadline, c.status, c.created_at, c.updated_at
	FROM corrective_actions c`

func scanAction(row interface{ Scan(...any) error }) (*secondary.ActionRecord, error) {
	var (
		mgmtID    sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.ActionRecord{}
	err := row.Scan(&record.ID, &record.AuditID, &record.ResponsiblePersonID, &mgmtID, &record.Description,
		&record.Deadline, &record.Status, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.ManagementID = mgmtID.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists a new corrective action.
func (r *ActionRepository) Create(ctx context.Context, a *secondary.ActionRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO corrective_actions (id, audit_id, responsible_person_id, mgmt_id, description, deadline, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.AuditID, a.ResponsiblePersonID, nullString(a.ManagementID), a.Description, a.Deadline, a.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create corrective action: %w", err)
	}
	return nil
}

// GetByID retrieves a corrective action by its ID.
func (r *ActionRepository) GetByID(ctx context.Context, id string) (*secondary.ActionRecord, error) {
	record, err := scanAction(conn(ctx, r.db).QueryRowContext(ctx, actionSelect+" WHERE c.id = ?", id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("corrective action %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get corrective action: %w", err)
	}
	return record, nil
}

// List retrieves corrective actions matching the given filters, nearest deadline first.
func (r *ActionRepository) List(ctx context.Context, filters secondary.ActionFilters) ([]*secondary.ActionRecord, error) {
	query := actionSelect
	args := []any{}

	if filters.PlantID != "" {
		query += " JOIN audits a ON a.id = c.audit_id JOIN audit_schedules s ON s.id = a.schedule_id WHERE s.plant_id = ?"
		args = append(args, filters.PlantID)
	} else {
		query += " WHERE 1=1"
	}
	if filters.AuditID != "" {
		query += " AND c.audit_id = ?"
		args = append(args, filters.AuditID)
	}
	if filters.Status != "" {
		query += " AND c.status = ?"
		args = append(args, filters.Status)
	}
	if filters.ResponsiblePersonID != "" {
		query += " AND c.responsible_person_id = ?"
		args = append(args, filters.ResponsiblePersonID)
	}

	query += " ORDER BY c.deadline ASC, c.id ASC"

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrective actions: %w", err)
	}
	defer rows.Close()

	var actions []*secondary.ActionRecord
	for rows.Next() {
		record, err := scanAction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan corrective action: %w", err)
		}
		actions = append(actions, record)
	}
	return actions, rows.Err()
}

// Update updates description, deadline and responsible person.
func (r *ActionRepository) Update(ctx context.Context, a *secondary.ActionRecord) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE corrective_actions SET description = ?, deadline = ?, responsible_person_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		a.Description, a.Deadline, a.ResponsiblePersonID, a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update corrective action: %w", err)
	}
	return expectRow(result, "corrective action", a.ID)
}

// UpdateStatus sets the status and, when given, the approving management profile.
func (r *ActionRepository) UpdateStatus(ctx context.Context, id, status, managementID string) error {
	query := "UPDATE corrective_actions SET status = ?, updated_at = CURRENT_TIMESTAMP"
	args := []any{status}
	if managementID != "" {
		query += ", mgmt_id = ?"
		args = append(args, managementID)
	}
	query += " WHERE id = ?"
	args = append(args, id)

	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update corrective action status: %w", err)
	}
	return expectRow(result, "corrective action", id)
}

// Delete removes a corrective action.
func (r *ActionRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM corrective_actions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete corrective action: %w", err)
	}
	return expectRow(result, "corrective action", id)
}

// GetNextID returns the next available corrective action ID.
func (r *ActionRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, conn(ctx, r.db), "corrective_actions", "ACT")
}

var _ secondary.ActionRepository = (*ActionRepository)(nil)
