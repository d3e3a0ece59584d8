package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_review_comments_to_audit_histories",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "create_activity_log_table",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_report_indexes",
		Up:      migrationV3,
	},
}

func ensureVersionTable(database *sql.DB) error {
	_, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations applies every migration newer than the recorded schema version.
func RunMigrations(database *sql.DB) error {
	if err := ensureVersionTable(database); err != nil {
		return err
	}

	var currentVersion int
	err := database.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

func columnExists(tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid       int
			name      string
			ctype     string
			notnull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

func migrationV1(tx *sql.Tx) error {
	exists, err := columnExists(tx, "audit_histories", "review_comments")
	if err != nil || exists {
		return err
	}
	_, err = tx.Exec("ALTER TABLE audit_histories ADD COLUMN review_comments TEXT")
	return err
}

func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS activity_log (
			id TEXT PRIMARY KEY,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
			actor_id TEXT,
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
			field_name TEXT,
			old_value TEXT,
			new_value TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_activity_log_entity ON activity_log(entity_type, entity_id);
	`)
	return err
}

func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX IF NOT EXISTS idx_schedules_date ON audit_schedules(schedule_date);
		CREATE INDEX IF NOT EXISTS idx_actions_deadline ON corrective_actions(deadline);
		CREATE INDEX IF NOT EXISTS idx_histories_created ON audit_histories(created_at);
	`)
	return err
}
