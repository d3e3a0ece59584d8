package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/secondary"
)

// PlantRepository implements secondary.PlantRepository with SQLite.
type PlantRepository struct {
	db *sql.DB
}

// NewPlantRepository creates a new SQLite plant repository.
func NewPlantRepository(db *sql.DB) *PlantRepository {
	return &PlantRepository{db: db}
}

const plantColumns = "id, mgmt_id, ao_id, name, location, status, type, capacity, equipment_count, created_at, updated_at"

func scanPlant(row interface{ Scan(...any) error }) (*secondary.PlantRecord, error) {
	var (
		location  sql.NullString
		plantType sql.NullString
		createdAt time.Time
		updatedAt time.Time
	)
	record := &secondary.PlantRecord{}
	err := row.Scan(&record.ID, &record.ManagementID, &record.AreaOwnerID, &record.Name, &location, &record.Status,
		&plantType, &record.Capacity, &record.EquipmentCount, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	record.Location = location.String
	record.Type = plantType.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists a new plant.
func (r *PlantRepository) Create(ctx context.Context, plant *secondary.PlantRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO plants (id, mgmt_id, ao_id, name, location, status, type, capacity) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		plant.ID, plant.ManagementID, plant.AreaOwnerID, plant.Name, nullString(plant.Location), plant.Status, nullString(plant.Type), plant.Capacity,
	)
	if err != nil {
		return fmt.Errorf("failed to create plant: %w", err)
	}
	return nil
}

// GetByID retrieves a plant by its ID.
func (r *PlantRepository) GetByID(ctx context.Context, id string) (*secondary.PlantRecord, error) {
	record, err := scanPlant(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+plantColumns+" FROM plants WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("plant %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plant: %w", err)
	}
	return record, nil
}

func plantWhere(filters secondary.PlantFilters) (string, []any) {
	where := " WHERE 1=1"
	args := []any{}
	if filters.Status != "" {
		where += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.AreaOwnerID != "" {
		where += " AND ao_id = ?"
		args = append(args, filters.AreaOwnerID)
	}
	return where, args
}

// List retrieves plants matching the given filters, ordered by name.
func (r *PlantRepository) List(ctx context.Context, filters secondary.PlantFilters) ([]*secondary.PlantRecord, error) {
	where, args := plantWhere(filters)
	query := "SELECT " + plantColumns + " FROM plants" + where + " ORDER BY name, id"
	if filters.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	defer rows.Close()

	var plants []*secondary.PlantRecord
	for rows.Next() {
		record, err := scanPlant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan plant: %w", err)
		}
		plants = append(plants, record)
	}
	return plants, rows.Err()
}

// Count returns the number of plants matching the filters, ignoring paging.
func (r *PlantRepository) Count(ctx context.Context, filters secondary.PlantFilters) (int, error) {
	where, args := plantWhere(filters)
	n, err := count(ctx, conn(ctx, r.db), "SELECT COUNT(*) FROM plants"+where, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count plants: %w", err)
	}
	return n, nil
}

// Update updates an existing plant's editable fields.
func (r *PlantRepository) Update(ctx context.Context, plant *secondary.PlantRecord) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE plants SET mgmt_id = ?, ao_id = ?, name = ?, location = ?, status = ?, type = ?, capacity = ?,
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		plant.ManagementID, plant.AreaOwnerID, plant.Name, nullString(plant.Location), plant.Status, nullString(plant.Type), plant.Capacity, plant.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update plant: %w", err)
	}
	return expectRow(result, "plant", plant.ID)
}

// Delete removes a plant from persistence.
func (r *PlantRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM plants WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}
	return expectRow(result, "plant", id)
}

// GetNextID returns the next available plant ID.
func (r *PlantRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, conn(ctx, r.db), "plants", "PLANT")
}

// RefreshEquipmentCount recomputes the cached equipment count from the equipment table.
func (r *PlantRepository) RefreshEquipmentCount(ctx context.Context, plantID string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE plants SET equipment_count = (SELECT COUNT(*) FROM equipment WHERE plant_id = plants.id),
		updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		plantID,
	)
	if err != nil {
		return fmt.Errorf("failed to refresh equipment count: %w", err)
	}
	return expectRow(result, "plant", plantID)
}

// CountEquipment returns the number of equipment rows referencing the plant.
func (r *PlantRepository) CountEquipment(ctx context.Context, plantID string) (int, error) {
	n, err := count(ctx, conn(ctx, r.db), "SELECT COUNT(*) FROM equipment WHERE plant_id = ?", plantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count equipment: %w", err)
	}
	return n, nil
}

// CountSchedules returns the number of audit schedules referencing the plant.
func (r *PlantRepository) CountSchedules(ctx context.Context, plantID string) (int, error) {
	n, err := count(ctx, conn(ctx, r.db), "SELECT COUNT(*) FROM audit_schedules WHERE plant_id = ?", plantID)
	if err != nil {
		return 0, fmt.Errorf("failed to count schedules: %w", err)
	}
	return n, nil
}

// expectRow turns a zero-row write into a not-found error.
func expectRow(result sql.Result, entity, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperr.NotFound("%s %s not found", entity, id)
	}
	return nil
}

var _ secondary.PlantRepository = (*PlantRepository)(nil)
