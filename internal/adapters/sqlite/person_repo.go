package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/core/access"
	"github.com/example/madar/internal/ports/secondary"
)

// PersonRepository implements secondary.PersonRepository over the four
// profile tables.
type PersonRepository struct {
	db *sql.DB
}

// NewPersonRepository creates a new SQLite profile repository.
func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

type profileTable struct {
	table  string
	prefix string
	label  string
}

var profileTables = map[string]profileTable{
	access.Management:        {"managements", "MGMT", "management"},
	access.AreaOwner:         {"area_owners", "AO", "area owner"},
	access.Auditor:           {"auditors", "AUDR", "auditor"},
	access.ResponsiblePerson: {"responsible_persons", "RESP", "responsible person"},
}

func tableFor(role string) (profileTable, error) {
	t, ok := profileTables[role]
	if !ok {
		return profileTable{}, apperr.Invalid("unknown role %q", role)
	}
	return t, nil
}

func (t profileTable) columns() string {
	if t.table == "responsible_persons" {
		return "id, user_id, area_owner_id, first_name, last_name, email, extension, role, created_at"
	}
	return "id, user_id, NULL, first_name, last_name, email, extension, role, created_at"
}

func scanPerson(row interface{ Scan(...any) error }) (*secondary.PersonRecord, error) {
	var (
		areaOwnerID sql.NullString
		extension   sql.NullString
		role        sql.NullString
		createdAt   time.Time
	)
	record := &secondary.PersonRecord{}
	if err := row.Scan(&record.ID, &record.UserID, &areaOwnerID, &record.FirstName, &record.LastName, &record.Email, &extension, &role, &createdAt); err != nil {
		return nil, err
	}
	record.AreaOwnerID = areaOwnerID.String
	record.Extension = extension.String
	record.Role = role.String
	record.CreatedAt = formatTime(createdAt)
	return record, nil
}

// Create persists a new profile for the role.
func (r *PersonRepository) Create(ctx context.Context, role string, person *secondary.PersonRecord) error {
	t, err := tableFor(role)
	if err != nil {
		return err
	}

	q := conn(ctx, r.db)
	if t.table == "responsible_persons" {
		_, err = q.ExecContext(ctx,
			"INSERT INTO responsible_persons (id, user_id, area_owner_id, first_name, last_name, email, extension, role) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			person.ID, person.UserID, nullString(person.AreaOwnerID), person.FirstName, person.LastName, person.Email, nullString(person.Extension), nullString(person.Role),
		)
	} else {
		_, err = q.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s (id, user_id, first_name, last_name, email, extension, role) VALUES (?, ?, ?, ?, ?, ?, ?)", t.table),
			person.ID, person.UserID, person.FirstName, person.LastName, person.Email, nullString(person.Extension), nullString(person.Role),
		)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", t.label, err)
	}
	return nil
}

// GetByID retrieves a profile by its ID.
func (r *PersonRepository) GetByID(ctx context.Context, role, id string) (*secondary.PersonRecord, error) {
	t, err := tableFor(role)
	if err != nil {
		return nil, err
	}
	record, err := scanPerson(conn(ctx, r.db).QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", t.columns(), t.table), id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("%s %s not found", t.label, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", t.label, err)
	}
	return record, nil
}

// GetByUserID retrieves the profile linked to a user.
func (r *PersonRepository) GetByUserID(ctx context.Context, role, userID string) (*secondary.PersonRecord, error) {
	t, err := tableFor(role)
	if err != nil {
		return nil, err
	}
	record, err := scanPerson(conn(ctx, r.db).QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE user_id = ?", t.columns(), t.table), userID))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("%s profile for user %s not found", t.label, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", t.label, err)
	}
	return record, nil
}

// List retrieves profiles of a role ordered by name.
func (r *PersonRepository) List(ctx context.Context, role string, filters secondary.PersonFilters) ([]*secondary.PersonRecord, error) {
	t, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE 1=1", t.columns(), t.table)
	args := []any{}
	if filters.AreaOwnerID != "" && t.table == "responsible_persons" {
		query += " AND area_owner_id = ?"
		args = append(args, filters.AreaOwnerID)
	}
	query += " ORDER BY last_name, first_name"

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", t.table, err)
	}
	defer rows.Close()

	var people []*secondary.PersonRecord
	for rows.Next() {
		record, err := scanPerson(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", t.label, err)
		}
		people = append(people, record)
	}
	return people, rows.Err()
}

// Exists checks whether a profile exists.
func (r *PersonRepository) Exists(ctx context.Context, role, id string) (bool, error) {
	t, err := tableFor(role)
	if err != nil {
		return false, err
	}
	n, err := count(ctx, conn(ctx, r.db), fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE id = ?", t.table), id)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", t.label, err)
	}
	return n > 0, nil
}

// Update changes a profile's name, email and extension.
func (r *PersonRepository) Update(ctx context.Context, role string, person *secondary.PersonRecord) error {
	t, err := tableFor(role)
	if err != nil {
		return err
	}
	result, err := conn(ctx, r.db).ExecContext(ctx,
		fmt.Sprintf("UPDATE %s SET first_name = ?, last_name = ?, email = ?, extension = ? WHERE id = ?", t.table),
		person.FirstName, person.LastName, person.Email, nullString(person.Extension), person.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", t.label, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("%s %s not found", t.label, person.ID)
	}
	return nil
}

// GetNextID returns the next available profile ID for the role.
func (r *PersonRepository) GetNextID(ctx context.Context, role string) (string, error) {
	t, err := tableFor(role)
	if err != nil {
		return "", err
	}
	return nextID(ctx, conn(ctx, r.db), t.table, t.prefix)
}

var _ secondary.PersonRepository = (*PersonRepository)(nil)
