package faculty

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-core/internal/infrastructure/database"
)

// Repository defines the interface for faculty persistence.
type Repository interface {
	// Create stores a new faculty and assigns its ID.
	Create(ctx context.Context, f *Faculty) error

	// List returns all faculties ordered by name.
	List(ctx context.Context) ([]Faculty, error)

	// GetByID retrieves a faculty by its ID.
	GetByID(ctx context.Context, id int64) (*Faculty, error)

	// Update rewrites all mutable fields of an existing faculty.
	Update(ctx context.Context, f *Faculty) error

	// Delete removes a faculty by its ID.
	Delete(ctx context.Context, id int64) error

	// Search returns faculties whose name, code or description
	// contains the keyword, ordered by name.
	Search(ctx context.Context, keyword string) ([]Faculty, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	provider *database.Provider
}

// NewSQLiteRepository creates a new SQLite faculty repository.
func NewSQLiteRepository(provider *database.Provider) *SQLiteRepository {
	return &SQLiteRepository{provider: provider}
}

const facultyColumns = "id, code, name, description, created_at"

// Create stores a new faculty.
func (r *SQLiteRepository) Create(ctx context.Context, f *Faculty) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO faculties (code, name, description)
		VALUES (?, ?, ?)
	`

	result, err := db.ExecContext(ctx, query, f.Code, f.Name, nullStr(f.Description))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrCodeExists
		}
		return fmt.Errorf("creating faculty: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading faculty id: %w", err)
	}
	f.ID = id

	return nil
}

// List returns all faculties ordered by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]Faculty, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + facultyColumns + `
		FROM faculties
		ORDER BY name
	`

	return queryFaculties(ctx, db, query)
}

// GetByID retrieves a faculty by its ID.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Faculty, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + facultyColumns + `
		FROM faculties
		WHERE id = ?
	`

	return scanFaculty(db.QueryRowContext(ctx, query, id))
}

// Update rewrites all mutable fields of an existing faculty.
func (r *SQLiteRepository) Update(ctx context.Context, f *Faculty) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `
		UPDATE faculties
		SET code = ?, name = ?, description = ?
		WHERE id = ?
	`

	result, err := db.ExecContext(ctx, query, f.Code, f.Name, nullStr(f.Description), f.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrCodeExists
		}
		return fmt.Errorf("updating faculty: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // RowsAffected always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a faculty by its ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `DELETE FROM faculties WHERE id = ?`

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting faculty: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // RowsAffected always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Search returns faculties matching the keyword across name, code and
// description.
func (r *SQLiteRepository) Search(ctx context.Context, keyword string) ([]Faculty, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + facultyColumns + `
		FROM faculties
		WHERE name LIKE ? OR code LIKE ? OR description LIKE ?
		ORDER BY name
	`

	pattern := "%" + keyword + "%"
	return queryFaculties(ctx, db, query, pattern, pattern, pattern)
}

func queryFaculties(ctx context.Context, db *database.DB, query string, args ...any) ([]Faculty, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying faculties: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	faculties := []Faculty{}
	for rows.Next() {
		f, err := scanFaculty(rows)
		if err != nil {
			return nil, err
		}
		faculties = append(faculties, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating faculties: %w", err)
	}

	return faculties, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanFaculty(s scanner) (*Faculty, error) {
	var (
		f           Faculty
		description sql.NullString
		createdAt   string
	)

	err := s.Scan(&f.ID, &f.Code, &f.Name, &description, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning faculty: %w", err)
	}

	if description.Valid {
		f.Description = &description.String
	}
	f.CreatedAt = parseTime(createdAt)

	return &f, nil
}

func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
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
