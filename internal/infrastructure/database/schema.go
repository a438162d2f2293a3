package database

import (
	"context"
	"fmt"
)

// Table definitions. Every statement is idempotent: initialisation runs the
// full set on each start, so a fresh store and an existing one take the same
// path. created_at is always assigned by the storage engine; application
// code never writes it. The millisecond timestamp keeps recency ordering
// stable when rows are created in quick succession.
const (
	createStudentsTable = `
		CREATE TABLE IF NOT EXISTS students (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			number TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			program_name TEXT NOT NULL,
			faculty_name TEXT,
			semester INTEGER NOT NULL,
			email TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		) STRICT;

		CREATE INDEX IF NOT EXISTS idx_students_name ON students(name);
		CREATE INDEX IF NOT EXISTS idx_students_created ON students(created_at);
	`

	createProgramsTable = `
		CREATE TABLE IF NOT EXISTS programs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			faculty_name TEXT NOT NULL,
			accreditation TEXT,
			description TEXT,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		) STRICT;

		CREATE INDEX IF NOT EXISTS idx_programs_name ON programs(name);
	`

	createFacultiesTable = `
		CREATE TABLE IF NOT EXISTS faculties (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			description TEXT,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		) STRICT;

		CREATE INDEX IF NOT EXISTS idx_faculties_name ON faculties(name);
	`

	createUsersTable = `
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		) STRICT;
	`
)

// schemaStatements are executed in order on every initialisation.
var schemaStatements = []struct {
	name string
	ddl  string
}{
	{"students", createStudentsTable},
	{"programs", createProgramsTable},
	{"faculties", createFacultiesTable},
	{"users", createUsersTable},
}

// columnAdditions are additive changes for stores created by earlier
// releases, before the column existed. Each is attempted on every
// initialisation; on a current store the statement fails with a
// duplicate-column error, which is the normal case and treated as success.
var columnAdditions = []struct {
	table  string
	column string
	ddl    string
}{
	{
		table:  "students",
		column: "faculty_name",
		ddl:    "ALTER TABLE students ADD COLUMN faculty_name TEXT",
	},
}

// EnsureSchema creates all required tables and indexes.
//
// The statements run inside a single transaction so a failure partway
// through leaves no half-created schema behind. Safe to call on every
// start; an up-to-date store is a no-op.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: If any statement fails (the transaction is rolled back)
func (db *DB) EnsureSchema(ctx context.Context) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	for _, s := range schemaStatements {
		if _, err := tx.ExecContext(ctx, s.ddl); err != nil {
			return fmt.Errorf("creating %s schema: %w", s.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema: %w", err)
	}
	return nil
}

// EvolveSchema applies additive column changes for stores created by
// earlier releases.
//
// Failures never abort startup: a duplicate-column error means the column
// is already present and counts as success, and anything else is returned
// for the caller to log. The statements run outside a transaction so one
// failed addition cannot undo another.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - []error: One entry per failed addition, nil when all succeeded
func (db *DB) EvolveSchema(ctx context.Context) []error {
	var failures []error
	for _, add := range columnAdditions {
		if _, err := db.ExecContext(ctx, add.ddl); err != nil {
			if IsDuplicateColumn(err) {
				continue
			}
			failures = append(failures, fmt.Errorf("adding column %s.%s: %w", add.table, add.column, err))
		}
	}
	return failures
}
