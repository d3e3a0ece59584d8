package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/madar/internal/apperr"
	"github.com/example/madar/internal/ports/secondary"
)

// UserRepository implements secondary.UserRepository with SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, email, name, password_hash, user_type, status, created_at"

func scanUser(row interface{ Scan(...any) error }) (*secondary.UserRecord, error) {
	var createdAt time.Time
	record := &secondary.UserRecord{}
	if err := row.Scan(&record.ID, &record.Email, &record.Name, &record.PasswordHash, &record.UserType, &record.Status, &createdAt); err != nil {
		return nil, err
	}
	record.CreatedAt = formatTime(createdAt)
	return record, nil
}

// Create persists a new user.
func (r *UserRepository) Create(ctx context.Context, user *secondary.UserRecord) error {
	status := user.Status
	if status == "" {
		status = "active"
	}
	_, err := conn(ctx, r.db).ExecContext(ctx,
		"INSERT INTO users (id, email, name, password_hash, user_type, status) VALUES (?, ?, ?, ?, ?, ?)",
		user.ID, user.Email, user.Name, user.PasswordHash, user.UserType, status,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*secondary.UserRecord, error) {
	record, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return record, nil
}

// GetByEmail retrieves a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*secondary.UserRecord, error) {
	record, err := scanUser(conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ? COLLATE NOCASE", email))
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("user %s not found", email)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return record, nil
}

// List retrieves users matching the given filters, newest first.
func (r *UserRepository) List(ctx context.Context, filters secondary.UserFilters) ([]*secondary.UserRecord, error) {
	query := "SELECT " + userColumns + " FROM users WHERE 1=1"
	args := []any{}

	if filters.UserType != "" {
		query += " AND user_type = ?"
		args = append(args, filters.UserType)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*secondary.UserRecord
	for rows.Next() {
		record, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, record)
	}
	return users, rows.Err()
}

// EmailExists checks whether an email address is already registered.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := count(ctx, conn(ctx, r.db), "SELECT COUNT(*) FROM users WHERE email = ? COLLATE NOCASE", email)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return n > 0, nil
}

// UpdateAccount changes a user's display name and email.
func (r *UserRepository) UpdateAccount(ctx context.Context, id, name, email string) error {
	return r.update(ctx, id, "UPDATE users SET name = ?, email = ? WHERE id = ?", name, email, id)
}

// UpdatePassword replaces a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return r.update(ctx, id, "UPDATE users SET password_hash = ? WHERE id = ?", passwordHash, id)
}

func (r *UserRepository) update(ctx context.Context, id, query string, args ...any) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return apperr.NotFound("user %s not found", id)
	}
	return nil
}

// GetNextID returns the next available user ID.
func (r *UserRepository) GetNextID(ctx context.Context) (string, error) {
	return nextID(ctx, conn(ctx, r.db), "users", "USER")
}

var _ secondary.UserRepository = (*UserRepository)(nil)
