package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/secondary"
)

// EvidenceRepository implements secondary.EvidenceRepository with SQLite.
type EvidenceRepository struct {
	db *sql.DB
}

// NewEvidenceRepository creates a new SQLite evidence repository.
func NewEvidenceRepository(db *sql.DB) *EvidenceRepository {
	return &EvidenceRepository{db: db}
}

const evidenceColumns = "id, audit_id, action_id, title, url, created_at"

func scanEvidence(row interface{ Scan(...any) error }) (*secondary.EvidenceRecord, error) {
	var (
		actionID  sql.NullString
		createdAt time.Time
	)
	record := &secondary.EvidenceRecord{}
	if err := row.Scan(&record.ID, &record.AuditID, &actionID, &record.Title, &record.URL, &createdAt); err != nil {
		return nil, err
	}
	record.ActionID = actionID.String
	record.CreatedAt = formatTime(createdAt)
	return record, nil
}

// Create persists new evidence.
func (r *EvidenceRepository) Create(ctx context.Context, e *secondary.EvidenceRecord) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO evidence (id, audit_id, action_id, title, url) VALUES (?, ?, ?, ?, ?)",
		e.ID, e.AuditID, nullString(e.ActionID), e.Title, e.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to create evidence: %w", err)
	}
	return nil
}

// GetByID retrieves evidence by its ID.
func (r *EvidenceRepository) GetByID(ctx context.Context, id string) (*secondary.EvidenceRecord, error) {
	record, err := scanEvidence(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+evidenceColumns+" FROM evidence WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("evidence %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get evidence: %w", err)
	}
	return record, nil
}

// ListByAudit retrieves the evidence of an audit, oldest first.
func (r *EvidenceRepository) ListByAudit(ctx context.Context, auditID string) ([]*secondary.EvidenceRecord, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx,
		"SELECT "+evidenceColumns+" FROM evidence WHERE audit_id = ? ORDER BY created_at, id", auditID)
	if err != nil {
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	defer rows.Close()

	var items []*secondary.EvidenceRecord
	for rows.Next() {
		record, err := scanEvidence(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan evidence: %w", err)
		}
		items = append(items, record)
	}
	return items, rows.Err()
}

// Delete removes evidence from persistence.
func (r *EvidenceRepository) Delete(ctx context.Context, id string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, "DELETE FROM evidence WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete evidence: %w", err)
	}
	return expectRow(result, "evidence", id)
}

// GetNextID returns the next available evidence ID.
func (r *EvidenceRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, conn(ctx, r.db), "evidence", "EVID")
}

var _ secondary.EvidenceRepository = (*EvidenceRepository)(nil)
