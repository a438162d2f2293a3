// Package faculty manages faculty records.
//
// Faculties sit at the top of the campus hierarchy: programmes and
// students name their faculty by its display name. Because the link is
// by name only, edits here never cascade.
//
// The Repository interface is implemented by SQLiteRepository, which
// acquires its connection through the shared database provider on
// every call. Methods are safe for concurrent use.
package faculty
