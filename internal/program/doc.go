// Package program manages study programme records.
//
// Programmes reference their owning faculty by display name only.
// There is no foreign key, so faculty renames and deletions do not
// cascade here; stale names stay readable and searchable.
//
// The Repository interface is implemented by SQLiteRepository, which
// acquires its connection through the shared database provider on
// every call. Methods are safe for concurrent use.
package program
