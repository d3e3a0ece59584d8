package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/secondary"
)

// EquipmentRepository implements secondary.EquipmentRepository with SQLite.
type EquipmentRepository struct {
	db *sql.DB
}

// NewEquipmentRepository creates a new SQLite equipment repository.
func NewEquipmentRepository(db *sql.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

const equipmentColumns = "id, plant_id, name, type, model, status, location, capacity, maintenance_cycle, created_at, updated_at"

func scanEquipment(row interface{ Scan(...any) error }) (*secondary.EquipmentRecord, error) {
	var (
		equipType sql.NullString
		model     sql.NullString
		location  sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.EquipmentRecord{}
	err := row.Scan(&record.ID, &record.PlantID, &record.Name, &equipType, &model, &record.Status, &location,
		&record.Capacity, &record.MaintenanceCycle, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.Type = equipType.String
	record.Model = model.String
	record.Location = location.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists new equipment.
func (r *EquipmentRepository) Create(ctx context.Context, e *secondary.EquipmentRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO equipment (id, plant_id, name, type, model, status, location, capacity, maintenance_cycle)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.PlantID, e.Name, nullString(e.Type), nullString(e.Model), e.Status, nullString(e.Location), e.Capacity, e.MaintenanceCycle,
	)
	if err != nil {
		return fmt.Errorf("failed to create equipment: %w", err)
	}
	return nil
}

// GetByID retrieves equipment by its ID.
func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*secondary.EquipmentRecord, error) {
	record, err := scanEquipment(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+equipmentColumns+" FROM equipment WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("equipment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}
	return record, nil
}

func equipmentWhere(filters secondary.EquipmentFilters) (string, []any) {
	where := " WHERE 1=1"
	args := []any{}
	if filters.PlantID != "" {
		where += " AND plant_id = ?"
		args = append(args, filters.PlantID)
	}
	if filters.Status != "" {
		where += " AND status = ?"
		args = append(args, filters.Status)
	}
	return where, args
}

// List retrieves equipment matching the given filters, ordered by name.
func (r *EquipmentRepository) List(ctx context.Context, filters secondary.EquipmentFilters) ([]*secondary.EquipmentRecord, error) {
	where, args := equipmentWhere(filters)
	query := "SELECT " + equipmentColumns + " FROM equipment" + where + " ORDER BY name, id"
	if filters.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	defer rows.Close()

	var items []*secondary.EquipmentRecord
	for rows.Next() {
		record, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan equipment: %w", err)
		}
		items = append(items, record)
	}
	return items, rows.Err()
}

// Count returns the number of equipment rows matching the filters, ignoring paging.
func (r *EquipmentRepository) Count(ctx context.Context, filters secondary.EquipmentFilters) (int, error) {
	where, args := equipmentWhere(filters)
	n, err := count(ctx, conn(ctx, r.db), "SELECT COUNT(*) FROM equipment"+where, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count equipment: %w", err)
	}
	return n, nil
}

// Update updates existing equipment.
func (r *EquipmentRepository) Update(ctx context.Context, e *secondary.EquipmentRecord) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE equipment SET name = ?, type = ?, model = ?, status = ?, location = ?, capacity = ?, maintenance_cycle = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		e.Name, nullString(e.Type), nullString(e.Model), e.Status, nullString(e.Location), e.Capacity, e.MaintenanceCycle, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update equipment: %w", err)
	}
	return expectRow(result, "equipment", e.ID)
}

// Delete removes equipment from persistence.
func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM equipment WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete equipment: %w", err)
	}
	return expectRow(result, "equipment", id)
}

// GetNextID returns the next available equipment ID.
func (r *EquipmentRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, conn(ctx, r.db), "equipment", "EQUIP")
}

var _ secondary.EquipmentRepository = (*EquipmentRepository)(nil)
