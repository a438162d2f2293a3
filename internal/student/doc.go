// Package student provides student records and their persistence.
//
// Students reference their study program and faculty by display name
// rather than by key, so those references can dangle after renames or
// deletions; callers treat them as labels, not joins.
//
// The package provides a Repository interface with a SQLite implementation
// covering create, list, get, update, delete, keyword search and a
// newest-first recency feed.
//
// # Thread Safety
//
// SQLiteRepository is safe for concurrent use from multiple goroutines
// (SQLite WAL mode + guarded initialisation via database.Provider).
package student
