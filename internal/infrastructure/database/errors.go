package database

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// ErrInitFailed indicates the datastore could not be opened and prepared.
// Errors returned by Provider.Initialize wrap this sentinel; check with
// errors.Is. The guard holds no state after a failure, so the next call
// retries from scratch.
var ErrInitFailed = errors.New("database: initialisation failed")

// IsUniqueViolation reports whether err is a unique-constraint violation.
//
// Classification is centralised here so repositories can map conflicts to
// their own sentinel errors without inspecting driver internals. The typed
// driver error is checked first; the message match is a fallback for errors
// that crossed a boundary which stripped the type.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsDuplicateColumn reports whether err is SQLite's duplicate-column error,
// raised when an additive ALTER TABLE targets a column that already exists.
// SQLite reports this as a generic error with no extended code, so the
// message is the only signal available.
func IsDuplicateColumn(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate column name")
}
