package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the authoritative schema. Tests load it through GetSchemaSQL.
const SchemaSQL = `
-- Login accounts
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	user_type TEXT NOT NULL CHECK(user_type IN ('Management', 'Auditor', 'AreaOwner', 'ResponsiblePerson')),
	status TEXT NOT NULL CHECK(status IN ('active', 'inactive')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Role profiles
CREATE TABLE IF NOT EXISTS managements (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	extension TEXT,
	role TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS area_owners (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	extension TEXT,
	role TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS auditors (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL UNIQUE,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	extension TEXT,
	role TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS responsible_persons (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL UNIQUE,
	area_owner_id TEXT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	email TEXT NOT NULL,
	extension TEXT,
	role TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
	FOREIGN KEY (area_owner_id) REFERENCES area_owners(id)
);

-- Plants (equipment_count is a cache refreshed on every equipment add/remove)
CREATE TABLE IF NOT EXISTS plants (
	id TEXT PRIMARY KEY,
	mgmt_id TEXT NOT NULL,
	ao_id TEXT NOT NULL,
	name TEXT NOT NULL,
	location TEXT,
	status TEXT NOT NULL CHECK(status IN ('Active', 'Inactive', 'Under_Maintenance', 'Decommissioned')) DEFAULT 'Active',
	type TEXT,
	capacity INTEGER NOT NULL DEFAULT 0,
	equipment_count INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (mgmt_id) REFERENCES managements(id),
	FOREIGN KEY (ao_id) REFERENCES area_owners(id)
);

CREATE TABLE IF NOT EXISTS equipment (
	id TEXT PRIMARY KEY,
	plant_id TEXT NOT NULL,
	name TEXT NOT NULL,
	type TEXT,
	model TEXT,
	status TEXT NOT NULL CHECK(status IN ('Operational', 'Under_Maintenance', 'Out_Of_Service', 'Decommissioned')) DEFAULT 'Operational',
	location TEXT,
	capacity INTEGER NOT NULL DEFAULT 0,
	maintenance_cycle INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (plant_id) REFERENCES plants(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_equipment_plant ON equipment(plant_id);

-- Audit schedules and allocations
CREATE TABLE IF NOT EXISTS audit_schedules (
	id TEXT PRIMARY KEY,
	plant_id TEXT NOT NULL,
	schedule_date TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('Scheduled', 'Postponed', 'Completed', 'Cancelled')) DEFAULT 'Scheduled',
	duration_hours INTEGER NOT NULL DEFAULT 8 CHECK(duration_hours BETWEEN 1 AND 480),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (plant_id) REFERENCES plants(id)
);

CREATE INDEX IF NOT EXISTS idx_schedules_plant ON audit_schedules(plant_id);
CREATE INDEX IF NOT EXISTS idx_schedules_date ON audit_schedules(schedule_date);

CREATE TABLE IF NOT EXISTS auditor_allocations (
	auditor_id TEXT NOT NULL,
	schedule_id TEXT NOT NULL,
	assigned_date TEXT NOT NULL,
	role_type TEXT NOT NULL CHECK(role_type IN ('Lead_Auditor', 'Auditor', 'Observer')) DEFAULT 'Auditor',
	PRIMARY KEY (auditor_id, schedule_id),
	FOREIGN KEY (auditor_id) REFERENCES auditors(id),
	FOREIGN KEY (schedule_id) REFERENCES audit_schedules(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_allocations_schedule ON auditor_allocations(schedule_id);

-- Audits
CREATE TABLE IF NOT EXISTS audits (
	id TEXT PRIMARY KEY,
	schedule_id TEXT NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	checklist_steps TEXT,
	status TEXT NOT NULL CHECK(status IN ('Draft', 'In_Progress', 'Under_Review', 'Closed', 'Cancelled')) DEFAULT 'Draft',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (schedule_id) REFERENCES audit_schedules(id)
);

CREATE INDEX IF NOT EXISTS idx_audits_schedule ON audits(schedule_id);
CREATE INDEX IF NOT EXISTS idx_audits_status ON audits(status);

CREATE TABLE IF NOT EXISTS audit_attendance (
	id TEXT PRIMARY KEY,
	audit_id TEXT NOT NULL,
	auditor_id TEXT NOT NULL,
	responsible_person_id TEXT,
	attend_date TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('Present', 'Absent', 'Late', 'Excused')),
	arrival_time TEXT,
	departure_time TEXT,
	UNIQUE (audit_id, auditor_id),
	CHECK (departure_time IS NULL OR (arrival_time IS NOT NULL AND departure_time > arrival_time)),
	FOREIGN KEY (audit_id) REFERENCES audits(id) ON DELETE CASCADE,
	FOREIGN KEY (auditor_id) REFERENCES auditors(id),
	FOREIGN KEY (responsible_person_id) REFERENCES responsible_persons(id)
);

-- Corrective actions
CREATE TABLE IF NOT EXISTS corrective_actions (
	id TEXT PRIMARY KEY,
	audit_id TEXT NOT NULL,
	responsible_person_id TEXT NOT NULL,
	mgmt_id TEXT,
	description TEXT NOT NULL,
	deadline TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('Pending', 'InProgress', 'Completed', 'Overdue', 'Extended', 'Rejected', 'Escalated', 'Cancelled')) DEFAULT 'Pending',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (audit_id) REFERENCES audits(id),
	FOREIGN KEY (responsible_person_id) REFERENCES responsible_persons(id),
	FOREIGN KEY (mgmt_id) REFERENCES managements(id)
);

CREATE INDEX IF NOT EXISTS idx_actions_audit ON corrective_actions(audit_id);
CREATE INDEX IF NOT EXISTS idx_actions_deadline ON corrective_actions(deadline);

-- Evidence (action link cleared when the action is deleted)
CREATE TABLE IF NOT EXISTS evidence (
	id TEXT PRIMARY KEY,
	audit_id TEXT NOT NULL,
	action_id TEXT,
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (audit_id) REFERENCES audits(id) ON DELETE CASCADE,
	FOREIGN KEY (action_id) REFERENCES corrective_actions(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_evidence_audit ON evidence(audit_id);

-- Audit completion records, one per audit
CREATE TABLE IF NOT EXISTS audit_histories (
	id TEXT PRIMARY KEY,
	audit_id TEXT NOT NULL UNIQUE,
	ao_id TEXT NOT NULL,
	mgmt_id TEXT NOT NULL,
	title TEXT NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('Pending', 'Approved', 'Rejected', 'Under_Review')) DEFAULT 'Pending',
	score REAL CHECK(score IS NULL OR (score >= 0 AND score <= 100)),
	comments TEXT,
	escalation_level TEXT NOT NULL CHECK(escalation_level IN ('Low', 'Medium', 'High', 'Critical')),
	review_comments TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (audit_id) REFERENCES audits(id),
	FOREIGN KEY (ao_id) REFERENCES area_owners(id),
	FOREIGN KEY (mgmt_id) REFERENCES managements(id)
);

CREATE INDEX IF NOT EXISTS idx_histories_created ON audit_histories(created_at);

-- Activity log
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
`

// InitSchema brings the database up to date. A fresh database gets the
// current schema with every migration marked as applied; an existing one
// runs whatever migrations are pending.
func InitSchema(database *sql.DB) error {
	var tableCount int
	err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(database)
	}

	var auditTables int
	err = database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='audits'").Scan(&auditTables)
	if err != nil {
		return err
	}
	if auditTables > 0 {
		// Pre-versioning database: migrations are written to be idempotent
		return RunMigrations(database)
	}

	if _, err := database.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := ensureVersionTable(database); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := database.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
