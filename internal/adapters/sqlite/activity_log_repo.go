package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/ports/secondary"
)

// ActivityLogRepository implements secondary.ActivityLogRepository with SQLite.
type ActivityLogRepository struct {
	db *sql.DB
}

// NewActivityLogRepository creates a new SQLite activity log repository.
func NewActivityLogRepository(db *sql.DB) *ActivityLogRepository {
	return &ActivityLogRepository{db: db}
}

// Create persists a new log entry.
func (r *ActivityLogRepository) Create(ctx context.Context, entry *secondary.ActivityLogRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO activity_log (id, actor_id, entity_type, entity_id, action, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		nullString(entry.ActorID),
		entry.EntityType,
		entry.EntityID,
		entry.Action,
		nullString(entry.FieldName),
		nullString(entry.OldValue),
		nullString(entry.NewValue),
	)
	if err != nil {
		return fmt.Errorf("failed to create activity log entry: %w", err)
	}
	return nil
}

// List retrieves entries matching the given filters, newest first.
func (r *ActivityLogRepository) List(ctx context.Context, filters secondary.ActivityLogFilters) ([]*secondary.ActivityLogRecord, error) {
	query := `SELECT id, timestamp, actor_id, entity_type, entity_id, action, field_name, old_value, new_value FROM activity_log WHERE 1=1`
	args := []any{}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}
	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}
	if filters.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filters.ActorID)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity log: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.ActivityLogRecord
	for rows.Next() {
		var (
			actorID   sql.NullString
			fieldName sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			timestamp time.Time
		)
		record := &secondary.ActivityLogRecord{}
		if err := rows.Scan(&record.ID, &timestamp, &actorID, &record.EntityType, &record.EntityID, &record.Action,
			&fieldName, &oldValue, &newValue); err != nil {
			return nil, fmt.Errorf("failed to scan activity log entry: %w", err)
		}
		record.Timestamp = formatTime(timestamp)
		record.ActorID = actorID.String
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		entries = append(entries, record)
	}
	return entries, rows.Err()
}

// GetNextID returns the next available log ID.
func (r *ActivityLogRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, conn(ctx, r.db), "activity_log", "LOG")
}

var _ secondary.ActivityLogRepository = (*ActivityLogRepository)(nil)
