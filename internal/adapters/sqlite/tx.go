// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/ports/secondary"
)

// querier is the subset of *sql.DB and *sql.Tx the repositories use.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

// Transactor implements secondary.Transactor by carrying an *sql.Tx in the context.
type Transactor struct {
	db *sql.DB
}

// NewTransactor creates a new SQLite transactor.
func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTx runs fn in a transaction. Nested calls join the outer transaction.
func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// nullString maps the empty string to NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// formatTime renders a scanned timestamp the way records carry them.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nextID allocates PREFIX-NNN ids by scanning the numeric suffix of existing rows.
func nextID(ctx context.Context, q querier, table, prefix string) (string, error) {
	var maxID int
	query := fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM %s", len(prefix)+2, table)
	if err := q.QueryRowContext(ctx, query).Scan(&maxID); err != nil {
		return "", fmt.Errorf("failed to get next %s ID: %w", prefix, err)
	}
	return fmt.Sprintf("%s-%03d", prefix, maxID+1), nil
}

// count runs a COUNT(*) query.
func count(ctx context.Context, q querier, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

var _ secondary.Transactor = (*Transactor)(nil)
