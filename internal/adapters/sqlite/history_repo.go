package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/secondary"
)

// HistoryRepository implements secondary.HistoryRepository with SQLite.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite audit history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

const historyColumns = "id, audit_id, ao_id, mgmt_id, title, status, score, comments, escalation_level, review_comments, created_at, updated_at"

func scanHistory(row interface{ Scan(...any) error }) (*secondary.HistoryRecord, error) {
	var (
		score          sql.NullFloat64
		comments       sql.NullString
		reviewComments sql.NullString
		createdAt      time.Time
		updatedAt      time.Time
	)
	record := &secondary.HistoryRecord{}
	err := row.Scan(&record.ID, &record.AuditID, &record.AreaOwnerID, &record.ManagementID, &record.Title, &record.Status,
		&score, &comments, &record.EscalationLevel, &reviewComments, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	if score.Valid {
		v := score.Float64
		record.Score = &v
	}
	record.Comments = comments.String
	record.ReviewComments = reviewComments.String
	record.CreatedAt = formatTime(createdAt)
	record.UpdatedAt = formatTime(updatedAt)
	return record, nil
}

// Create persists a new completion record. A non-empty CreatedAt (RFC3339)
// overrides the insert time.
func (r *HistoryRepository) Create(ctx context.Context, h *secondary.HistoryRecord) error {
	var score sql.NullFloat64
	if h.Score != nil {
		score = sql.NullFloat64{Float64: *h.Score, Valid: true}
	}

	createdAt := time.Now().UTC()
	if h.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339, h.CreatedAt)
		if err != nil {
			return apperr.Invalid("invalid created_at %q", h.CreatedAt)
		}
		createdAt = t.UTC()
	}

	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO audit_histories (id, audit_id, ao_id, mgmt_id, title, status, score, comments, escalation_level, review_comments, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.AuditID, h.AreaOwnerID, h.ManagementID, h.Title, h.Status, score,
		nullString(h.Comments), h.EscalationLevel, nullString(h.ReviewComments), createdAt, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create audit history: %w", err)
	}
	return nil
}

// GetByID retrieves a record by its ID.
func (r *HistoryRepository) GetByID(ctx context.Context, id string) (*secondary.HistoryRecord, error) {
	record, err := scanHistory(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+historyColumns+" FROM audit_histories WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("audit history %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit history: %w", err)
	}
	return record, nil
}

// GetByAuditID retrieves the record of an audit.
func (r *HistoryRepository) GetByAuditID(ctx context.Context, auditID string) (*secondary.HistoryRecord, error) {
	record, err := scanHistory(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+historyColumns+" FROM audit_histories WHERE audit_id = ?", auditID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("no completion record for audit %s", auditID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get audit history: %w", err)
	}
	return record, nil
}

// ExistsForAudit checks whether an audit already has a record.
func (r *HistoryRepository) ExistsForAudit(ctx context.Context, auditID string) (bool, error) {
	n, err := count(ctx, conn(ctx, r.db), "SELECT COUNT(*) FROM audit_histories WHERE audit_id = ?", auditID)
	if err != nil {
		return false, fmt.Errorf("failed to check audit history: %w", err)
	}
	return n > 0, nil
}

// List retrieves records matching the given filters, newest first.
func (r *HistoryRepository) List(ctx context.Context, filters secondary.HistoryFilters) ([]*secondary.HistoryRecord, error) {
	query := "SELECT " + historyColumns + " FROM audit_histories WHERE 1=1"
	args := []any{}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}
	if filters.EscalationLevel != "" {
		query += " AND escalation_level = ?"
		args = append(args, filters.EscalationLevel)
	}
	if filters.AreaOwnerID != "" {
		query += " AND ao_id = ?"
		args = append(args, filters.AreaOwnerID)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit histories: %w", err)
	}
	defer rows.Close()

	var histories []*secondary.HistoryRecord
	for rows.Next() {
		record, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit history: %w", err)
		}
		histories = append(histories, record)
	}
	return histories, rows.Err()
}

// UpdateReview sets the review status and reviewer comments.
func (r *HistoryRepository) UpdateReview(ctx context.Context, id, status, reviewComments string) error {
	result, err := conn(ctx, r.db).ExecContext(ctx,
		"UPDATE audit_histories SET status = ?, review_comments = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, nullString(reviewComments), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update audit history review: %w", err)
	}
	return expectRow(result, "audit history", id)
}

// GetNextID returns the next available record ID.
func (r *HistoryRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, conn(ctx, r.db), "audit_histories", "HIST")
}

var _ secondary.HistoryRepository = (*HistoryRepository)(nil)
