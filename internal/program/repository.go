package program

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-core/internal/infrastructure/database"
)

// Repository defines the interface for programme persistence.
type Repository interface {
	// Create stores a new programme and assigns its ID.
	Create(ctx context.Context, p *Program) error

	// List returns all programmes ordered by name.
	List(ctx context.Context) ([]Program, error)

	// GetByID retrieves a programme by its ID.
	GetByID(ctx context.Context, id int64) (*Program, error)

	// Update rewrites all mutable fields of an existing programme.
	Update(ctx context.Context, p *Program) error

	// Delete removes a programme by its ID.
	Delete(ctx context.Context, id int64) error

	// Search returns programmes whose name, code, faculty name or
	// accreditation contains the keyword, ordered by name.
	Search(ctx context.Context, keyword string) ([]Program, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	provider *database.Provider
}

// NewSQLiteRepository creates a new SQLite programme repository.
func NewSQLiteRepository(provider *database.Provider) *SQLiteRepository {
	return &SQLiteRepository{provider: provider}
}

const programColumns = "id, code, name, faculty_name, accreditation, description, created_at"

// Create stores a new programme.
func (r *SQLiteRepository) Create(ctx context.Context, p *Program) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO programs (code, name, faculty_name, accreditation, description)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := db.ExecContext(ctx, query,
		p.Code, p.Name, p.FacultyName, nullStr(p.Accreditation), nullStr(p.Description))
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrCodeExists
		}
		return fmt.Errorf("creating program: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading program id: %w", err)
	}
	p.ID = id

	return nil
}

// List returns all programmes ordered by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]Program, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + programColumns + `
		FROM programs
		ORDER BY name
	`

	return queryPrograms(ctx, db, query)
}

// GetByID retrieves a programme by its ID.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Program, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + programColumns + `
		FROM programs
		WHERE id = ?
	`

	return scanProgram(db.QueryRowContext(ctx, query, id))
}

// Update rewrites all mutable fields of an existing programme.
func (r *SQLiteRepository) Update(ctx context.Context, p *Program) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `
		UPDATE programs
		SET code = ?, name = ?, faculty_name = ?, accreditation = ?, description = ?
		WHERE id = ?
	`

	result, err := db.ExecContext(ctx, query,
		p.Code, p.Name, p.FacultyName, nullStr(p.Accreditation), nullStr(p.Description), p.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrCodeExists
		}
		return fmt.Errorf("updating program: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // RowsAffected always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a programme by its ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `DELETE FROM programs WHERE id = ?`

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("deleting program: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // RowsAffected always succeeds on SQLite
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// Search returns programmes matching the keyword across name, code,
// faculty name and accreditation.
func (r *SQLiteRepository) Search(ctx context.Context, keyword string) ([]Program, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `
		SELECT ` + programColumns + `
		FROM programs
		WHERE name LIKE ? OR code LIKE ? OR faculty_name LIKE ? OR accreditation LIKE ?
		ORDER BY name
	`

	pattern := "%" + keyword + "%"
	return queryPrograms(ctx, db, query, pattern, pattern, pattern, pattern)
}

func queryPrograms(ctx context.Context, db *database.DB, query string, args ...any) ([]Program, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying programs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only rows

	programs := []Program{}
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating programs: %w", err)
	}

	return programs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgram(s scanner) (*Program, error) {
	var (
		p             Program
		accreditation sql.NullString
		description   sql.NullString
		createdAt     string
	)

	err := s.Scan(&p.ID, &p.Code, &p.Name, &p.FacultyName, &accreditation, &description, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning program: %w", err)
	}

	if accreditation.Valid {
		p.Accreditation = &accreditation.String
	}
	if description.Valid {
		p.Description = &description.String
	}
	p.CreatedAt = parseTime(createdAt)

	return &p, nil
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
