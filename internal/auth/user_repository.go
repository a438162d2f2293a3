package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-core/internal/infrastructure/database"
)

// UserRepository defines the interface for user account persistence.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, keyword string) ([]User, error)
}

// SQLiteUserRepository implements UserRepository using SQLite.
type SQLiteUserRepository struct {
	provider *database.Provider
}

// NewUserRepository creates a new SQLite-backed user repository.
func NewUserRepository(provider *database.Provider) *SQLiteUserRepository {
	return &SQLiteUserRepository{provider: provider}
}

const userColumns = "id, name, email, password, created_at"

// Create inserts a new user account and assigns its ID.
func (r *SQLiteUserRepository) Create(ctx context.Context, user *User) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO users (name, email, password)
		VALUES (?, ?, ?)
	`

	result, err := db.ExecContext(ctx, query, user.Name, user.Email, user.Password)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading user id: %w", err)
	}
	user.ID = id

	return nil
}

// List returns all users ordered by name.
func (r *SQLiteUserRepository) List(ctx context.Context) ([]User, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY name
	`

	return queryUsers(ctx, db, query)
}

// GetByID retrieves a user by their ID.
func (r *SQLiteUserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = ?
	`

	return scanUser(db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by their email address. Callers are
// expected to normalise the email to lowercase first.
func (r *SQLiteUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = ?
	`

	return scanUser(db.QueryRowContext(ctx, query, email))
}

// Update rewrites all mutable fields of an existing user.
func (r *SQLiteUserRepository) Update(ctx context.Context, user *User) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `
		UPDATE users
		SET name = ?, email = ?, password = ?
		WHERE id = ?
	`

	result, err := db.ExecContext(ctx, query, user.Name, user.Email, user.Password, user.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrEmailExists
		}
		return fmt.Errorf("updating user: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // RowsAffected always succeeds on SQLite
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete removes a user account by ID.
func (r *SQLiteUserRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `DELETE FROM users WHERE id = ?`

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // RowsAffected always succeeds on SQLite
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Search returns users whose name or email contains the keyword,
// ordered by name.
func (r *SQLiteUserRepository) Search(ctx context.Context, keyword string) ([]User, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + userColumns + `
		FROM users
		WHERE name LIKE ? OR email LIKE ?
		ORDER BY name
	`

	pattern := "%" + keyword + "%"
	return queryUsers(ctx, db, query, pattern, pattern)
}

func queryUsers(ctx context.Context, db *database.DB, query string, args ...any) ([]User, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*User, error) {
	var (
		u         User
		createdAt string
	)

	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.CreatedAt = parseTime(createdAt)

	return &u, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Timestamps come from the engine default, so this only
		// happens on hand-edited data. Zero time is the safe fallback.
		return time.Time{}
	}
	return t
}
