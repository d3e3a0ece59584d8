package db

import (
	"path/filepath"
	"testing"
)

func TestOpenFreshDatabaseMarksMigrationsApplied(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "madar.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	var version int
	if err := database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != migrations[len(migrations)-1].Version {
		t.Errorf("version = %d, want %d", version, migrations[len(migrations)-1].Version)
	}

	var fk int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil || fk != 1 {
		t.Errorf("foreign keys = %d (%v), want 1", fk, err)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "madar.db")
	first, err := Open(path)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	second.Close()
}

func TestMigrationsUpgradeUnversionedDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")
	database, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	// simulate a database created before versioning and before the activity log
	if _, err := database.Exec("DROP TABLE schema_version; DROP TABLE activity_log;"); err != nil {
		t.Fatalf("prepare legacy db: %v", err)
	}
	database.Close()

	upgraded, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer upgraded.Close()

	var n int
	if err := upgraded.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='activity_log'").Scan(&n); err != nil || n != 1 {
		t.Errorf("activity_log not recreated (n=%d, err=%v)", n, err)
	}
}
