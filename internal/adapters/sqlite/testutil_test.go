// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files;
// use setupTestDB() and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/madar/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is pinned to one connection so every query sees the same database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open(db.DriverName, db.DSN(":memory:"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

func mustExec(t *testing.T, database *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := database.Exec(query, args...); err != nil {
		t.Fatalf("seed failed (%s): %v", query, err)
	}
}

// seedUser inserts a login account.
func seedUser(t *testing.T, database *sql.DB, id, email, userType string) string {
	t.Helper()
	mustExec(t, database,
		"INSERT INTO users (id, email, name, password_hash, user_type) VALUES (?, ?, ?, 'x', ?)",
		id, email, "User "+id, userType)
	return id
}

// seedManagement inserts a management profile with its user.
func seedManagement(t *testing.T, database *sql.DB, id string) string {
	t.Helper()
	userID := seedUser(t, database, "USER-"+id, id+"@example.com", "Management")
	mustExec(t, database,
		"INSERT INTO managements (id, user_id, first_name, last_name, email) VALUES (?, ?, 'Mona', 'Manager', ?)",
		id, userID, id+"@example.com")
	return id
}

// seedAreaOwner inserts an area owner profile with its user.
func seedAreaOwner(t *testing.T, database *sql.DB, id string) string {
	t.Helper()
	userID := seedUser(t, database, "USER-"+id, id+"@example.com", "AreaOwner")
	mustExec(t, database,
		"INSERT INTO area_owners (id, user_id, first_name, last_name, email) VALUES (?, ?, 'Omar', 'Owner', ?)",
		id, userID, id+"@example.com")
	return id
}

// seedAuditor inserts an auditor profile with its user.
func seedAuditor(t *testing.T, database *sql.DB, id, firstName string) string {
	t.Helper()
	userID := seedUser(t, database, "USER-"+id, id+"@example.com", "Auditor")
	mustExec(t, database,
		"INSERT INTO auditors (id, user_id, first_name, last_name, email) VALUES (?, ?, ?, 'Auditor', ?)",
		id, userID, firstName, id+"@example.com")
	return id
}

// seedResponsible inserts a responsible person reporting to an area owner.
func seedResponsible(t *testing.T, database *sql.DB, id, areaOwnerID string) string {
	t.Helper()
	userID := seedUser(t, database, "USER-"+id, id+"@example.com", "ResponsiblePerson")
	mustExec(t, database,
		"INSERT INTO responsible_persons (id, user_id, area_owner_id, first_name, last_name, email) VALUES (?, ?, ?, 'Rana', 'Responsible', ?)",
		id, userID, areaOwnerID, id+"@example.com")
	return id
}

// seedPlant inserts an Active plant owned by the given profiles.
func seedPlant(t *testing.T, database *sql.DB, id, name, mgmtID, aoID string) string {
	t.Helper()
	mustExec(t, database,
		"INSERT INTO plants (id, mgmt_id, ao_id, name, status) VALUES (?, ?, ?, ?, 'Active')",
		id, mgmtID, aoID, name)
	return id
}

// seedEquipment inserts operational equipment for a plant.
func seedEquipment(t *testing.T, database *sql.DB, id, plantID string) string {
	t.Helper()
	mustExec(t, database,
		"INSERT INTO equipment (id, plant_id, name) VALUES (?, ?, ?)",
		id, plantID, "Equipment "+id)
	return id
}

// seedSchedule inserts a schedule for a plant.
func seedSchedule(t *testing.T, database *sql.DB, id, plantID, date, status string) string {
	t.Helper()
	mustExec(t, database,
		"INSERT INTO audit_schedules (id, plant_id, schedule_date, status) VALUES (?, ?, ?, ?)",
		id, plantID, date, status)
	return id
}

// seedAllocation allocates an auditor to a schedule.
func seedAllocation(t *testing.T, database *sql.DB, auditorID, scheduleID string) {
	t.Helper()
	mustExec(t, database,
		"INSERT INTO auditor_allocations (auditor_id, schedule_id, assigned_date, role_type) VALUES (?, ?, '2026-01-01', 'Auditor')",
		auditorID, scheduleID)
}

// seedAudit inserts an audit for a schedule.
func seedAudit(t *testing.T, database *sql.DB, id, scheduleID, status string) string {
	t.Helper()
	mustExec(t, database,
		"INSERT INTO audits (id, schedule_id, title, status) VALUES (?, ?, ?, ?)",
		id, scheduleID, "Audit "+id, status)
	return id
}

// seedAction inserts a corrective action.
func seedAction(t *testing.T, database *sql.DB, id, auditID, respID, deadline, status string) string {
	t.Helper()
	mustExec(t, database,
		"INSERT INTO corrective_actions (id, audit_id, responsible_person_id, description, deadline, status) VALUES (?, ?, ?, 'Fix it', ?, ?)",
		id, auditID, respID, deadline, status)
	return id
}

// fixture is the common graph most repository tests start from.
type fixture struct {
	mgmt, ao, auditor, resp, plant, schedule string
}

func seedFixture(t *testing.T, database *sql.DB) fixture {
	t.Helper()
	f := fixture{
		mgmt:    seedManagement(t, database, "MGMT-001"),
		ao:      seedAreaOwner(t, database, "AO-001"),
		auditor: seedAuditor(t, database, "AUDR-001", "Adel"),
	}
	f.resp = seedResponsible(t, database, "RESP-001", f.ao)
	f.plant = seedPlant(t, database, "PLANT-001", "North Refinery", f.mgmt, f.ao)
	f.schedule = seedSchedule(t, database, "SCHED-001", f.plant, "2026-03-10", "Scheduled")
	seedAllocation(t, database, f.auditor, f.schedule)
	return f
}
