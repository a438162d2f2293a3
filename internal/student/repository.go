package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-core/internal/infrastructure/database"
)

// DefaultRecentLimit is the number of rows ListRecent returns when the
// caller passes a non-positive limit.
const DefaultRecentLimit = 5

// Repository defines the interface for student persistence operations.
type Repository interface {
	Create(ctx context.Context, s *Student) error
	List(ctx context.Context) ([]Student, error)
	GetByID(ctx context.Context, id int64) (*Student, error)
	Update(ctx context.Context, s *Student) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, keyword string) ([]Student, error)
	ListRecent(ctx context.Context, limit int) ([]Student, error)
}

// SQLiteRepository implements Repository using SQLite.
//
// Every operation obtains the handle through the database Provider, so the
// first call on a fresh process initialises the store transparently. The
// handle is never cached here.
type SQLiteRepository struct {
	provider *database.Provider
}

// NewSQLiteRepository creates a new SQLite-backed student repository.
func NewSQLiteRepository(provider *database.Provider) *SQLiteRepository {
	return &SQLiteRepository{provider: provider}
}

// studentColumns is the SELECT column list shared by all read queries.
const studentColumns = "id, number, name, program_name, faculty_name, semester, email, created_at"

// Create inserts a new student and writes the storage-assigned ID back to s.
// created_at is assigned by the storage engine, never by this method.
func (r *SQLiteRepository) Create(ctx context.Context, s *Student) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `INSERT INTO students (number, name, program_name, faculty_name, semester, email)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query,
		s.Number, s.Name, s.ProgramName, nullStr(s.FacultyName), s.Semester, s.Email)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrNumberExists
		}
		return fmt.Errorf("inserting student %s: %w", s.Number, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading student id: %w", err)
	}
	s.ID = id
	return nil
}

// List returns all students ordered by name.
func (r *SQLiteRepository) List(ctx context.Context) ([]Student, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `SELECT ` + studentColumns + ` FROM students ORDER BY name`
	return queryStudents(ctx, db, query)
}

// GetByID returns a single student by ID, or ErrNotFound.
func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Student, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `SELECT ` + studentColumns + ` FROM students WHERE id = ?`
	return scanStudent(db.QueryRowContext(ctx, query, id))
}

// Update rewrites every mutable field of the student identified by s.ID.
// created_at is never touched. Returns ErrNotFound if the ID does not exist.
func (r *SQLiteRepository) Update(ctx context.Context, s *Student) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	const query = `UPDATE students SET number = ?, name = ?, program_name = ?,
		faculty_name = ?, semester = ?, email = ?
		WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		s.Number, s.Name, s.ProgramName, nullStr(s.FacultyName), s.Semester, s.Email, s.ID)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrNumberExists
		}
		return fmt.Errorf("updating student %d: %w", s.ID, err)
	}

	n, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a student by ID. Returns ErrNotFound if the ID does not exist.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return err
	}

	result, err := db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting student %d: %w", id, err)
	}

	n, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Search returns students whose name, number, program, faculty or email
// contains the keyword, ordered by name. Matching is case-insensitive for
// ASCII. A NULL faculty never matches.
//
// Callers route an empty keyword to List instead; an empty keyword here
// matches every row.
func (r *SQLiteRepository) Search(ctx context.Context, keyword string) ([]Student, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `SELECT ` + studentColumns + ` FROM students
		WHERE name LIKE ? OR number LIKE ? OR program_name LIKE ? OR faculty_name LIKE ? OR email LIKE ?
		ORDER BY name`
	pattern := "%" + keyword + "%"
	return queryStudents(ctx, db, query, pattern, pattern, pattern, pattern, pattern)
}

// ListRecent returns the most recently created students, newest first.
// The ID breaks ties between rows created in the same millisecond.
func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]Student, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}

	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	const query = `SELECT ` + studentColumns + ` FROM students
		ORDER BY created_at DESC, id DESC LIMIT ?`
	return queryStudents(ctx, db, query, limit)
}

// queryStudents executes a query and returns a slice of Student.
func queryStudents(ctx context.Context, db *database.DB, query string, args ...any) ([]Student, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying students: %w", err)
	}
	defer rows.Close()

	var students []Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating students: %w", err)
	}

	if students == nil {
		students = []Student{}
	}
	return students, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanStudent scans a student from a Row or Rows cursor.
func scanStudent(s scanner) (*Student, error) {
	var st Student
	var facultyName sql.NullString
	var createdAt string

	err := s.Scan(&st.ID, &st.Number, &st.Name, &st.ProgramName,
		&facultyName, &st.Semester, &st.Email, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning student: %w", err)
	}

	if facultyName.Valid {
		st.FacultyName = &facultyName.String
	}
	st.CreatedAt = parseTime(createdAt)
	return &st, nil
}

// nullStr converts a *string to a sql.NullString for nullable columns.
// Absent values are stored as NULL, never as the empty string.
func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// parseTime parses an ISO 8601 timestamp from SQLite.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Zero time is returned on failure (should not happen with
		// schema-enforced DEFAULT strftime).
		return time.Time{}
	}
	return t
}
