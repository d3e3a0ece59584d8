package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/db"
	"github.com/example/madar/internal/ports/secondary"
)

// ReportRepository implements secondary.ReportRepository with sqlx struct scanning.
// Every method is one query; callers aggregate in memory.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository creates a new SQLite report repository over an open database.
func NewReportRepository(database *sql.DB) *ReportRepository {
	return &ReportRepository{db: sqlx.NewDb(database, db.DriverName)}
}

var reportableTables = map[string]bool{
	secondary.TablePlants:    true,
	secondary.TableEquipment: true,
	secondary.TableSchedules: true,
	secondary.TableAudits:    true,
	secondary.TableActions:   true,
	secondary.TableUsers:     true,
}

// auditScope appends the plant/auditor filters for a query aliased a (audits) and s (schedules).
func auditScope(query string, filters secondary.ReportFilters) (string, []any) {
	args := []any{}
	if filters.PlantID != "" {
		query += " AND s.plant_id = ?"
		args = append(args, filters.PlantID)
	}
	if filters.AuditorID != "" {
		query += " AND EXISTS (SELECT 1 FROM auditor_allocations al WHERE al.schedule_id = s.id AND al.auditor_id = ?)"
		args = append(args, filters.AuditorID)
	}
	return query, args
}

// AuditFacts returns every audit with its plant and completion score.
func (r *ReportRepository) AuditFacts(ctx context.Context, filters secondary.ReportFilters) ([]secondary.AuditFact, error) {
	query, args := auditScope(`SELECT a.id AS audit_id, a.schedule_id, s.plant_id, a.status,
		h.score, h.id IS NOT NULL AS has_history, h.created_at AS history_created_at
		FROM audits a
		JOIN audit_schedules s ON s.id = a.schedule_id
		LEFT JOIN audit_histories h ON h.audit_id = a.id
		WHERE 1=1`, filters)
	query += " ORDER BY a.id"

	var facts []secondary.AuditFact
	if err := r.db.SelectContext(ctx, &facts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load audit facts: %w", err)
	}
	return facts, nil
}

// AllocationFacts returns schedule/auditor pairs for the filtered audits' schedules.
func (r *ReportRepository) AllocationFacts(ctx context.Context, filters secondary.ReportFilters) ([]secondary.AllocationFact, error) {
	query, args := auditScope(`SELECT DISTINCT al.schedule_id, al.auditor_id
		FROM auditor_allocations al
		JOIN audit_schedules s ON s.id = al.schedule_id
		WHERE EXISTS (SELECT 1 FROM audits a WHERE a.schedule_id = s.id)`, filters)
	query += " ORDER BY al.schedule_id, al.auditor_id"

	var facts []secondary.AllocationFact
	if err := r.db.SelectContext(ctx, &facts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load allocation facts: %w", err)
	}
	return facts, nil
}

// ActionFacts returns every corrective action of the filtered audits.
func (r *ReportRepository) ActionFacts(ctx context.Context, filters secondary.ReportFilters) ([]secondary.ActionFact, error) {
	query, args := auditScope(`SELECT c.id AS action_id, c.audit_id, s.plant_id, c.status, c.deadline
		FROM corrective_actions c
		JOIN audits a ON a.id = c.audit_id
		JOIN audit_schedules s ON s.id = a.schedule_id
		WHERE 1=1`, filters)
	query += " ORDER BY c.deadline, c.id"

	var facts []secondary.ActionFact
	if err := r.db.SelectContext(ctx, &facts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load action facts: %w", err)
	}
	return facts, nil
}

// PlantFacts returns all plants, or the filtered one.
func (r *ReportRepository) PlantFacts(ctx context.Context, filters secondary.ReportFilters) ([]secondary.PlantFact, error) {
	query := "SELECT id AS plant_id, name, equipment_count FROM plants WHERE 1=1"
	args := []any{}
	if filters.PlantID != "" {
		query += " AND id = ?"
		args = append(args, filters.PlantID)
	}
	query += " ORDER BY id"

	var facts []secondary.PlantFact
	if err := r.db.SelectContext(ctx, &facts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load plant facts: %w", err)
	}
	return facts, nil
}

// AuditorFacts returns all auditors, or the filtered one.
func (r *ReportRepository) AuditorFacts(ctx context.Context, filters secondary.ReportFilters) ([]secondary.AuditorFact, error) {
	query := "SELECT id AS auditor_id, first_name || ' ' || last_name AS name FROM auditors WHERE 1=1"
	args := []any{}
	if filters.AuditorID != "" {
		query += " AND id = ?"
		args = append(args, filters.AuditorID)
	}
	query += " ORDER BY id"

	var facts []secondary.AuditorFact
	if err := r.db.SelectContext(ctx, &facts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to load auditor facts: %w", err)
	}
	return facts, nil
}

// CountRows returns the number of rows in a reportable table.
func (r *ReportRepository) CountRows(ctx context.Context, table string) (int, error) {
	if !reportableTables[table] {
		return 0, apperr.Invalid("table %q is not reportable", table)
	}
	var n int
	if err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM "+table); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// CountByStatus returns row counts per status for a reportable table.
func (r *ReportRepository) CountByStatus(ctx context.Context, table string) (map[string]int, error) {
	if !reportableTables[table] {
		return nil, apperr.Invalid("table %q is not reportable", table)
	}

	var rows []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}
	if err := r.db.SelectContext(ctx, &rows, "SELECT status, COUNT(*) AS n FROM "+table+" GROUP BY status"); err != nil {
		return nil, fmt.Errorf("failed to count %s by status: %w", table, err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.N
	}
	return counts, nil
}

// RecentUsers returns users created at or after since, newest first.
func (r *ReportRepository) RecentUsers(ctx context.Context, since time.Time, limit int) ([]secondary.UserFact, error) {
	var facts []secondary.UserFact
	err := r.db.SelectContext(ctx, &facts,
		`SELECT id AS user_id, name, email, user_type, created_at FROM users
		WHERE created_at >= ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		since.UTC().Format("2006-01-02 15:04:05"), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent users: %w", err)
	}
	return facts, nil
}

var _ secondary.ReportRepository = (*ReportRepository)(nil)
