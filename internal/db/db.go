// Package db owns the SQLite connection, the authoritative schema and its migrations.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver used throughout the application.
const DriverName = "sqlite3"

// DSN builds a connection string with foreign keys enforced on every pooled
// connection.
func DSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL", path)
}

// Open opens (creating if needed) the database at path and brings its schema up to date.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	database, err := sql.Open(DriverName, DSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if path == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		database.SetMaxOpenConns(1)
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := InitSchema(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}
