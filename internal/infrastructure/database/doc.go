// Package database provides SQLite database connectivity for Campus Core.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Exactly-once initialisation through the Provider guard
//   - Idempotent schema creation and additive column evolution
//   - Connection pooling and lifecycle management
//   - STRICT mode enforcement for type safety
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Performance Characteristics:
//   - WAL mode allows concurrent reads during writes
//   - Busy timeout prevents lock contention errors
//   - Initialisation cost is paid once; later calls return the live handle
//
// Usage:
//
//	provider := database.NewProvider(database.Config{
//		Path:        "data/campus.db",
//		WALMode:     true,
//		BusyTimeout: 5,
//	}, logger)
//	defer provider.Close()
//
//	db, err := provider.DB(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Schema Strategy:
//
// The full schema is created with CREATE TABLE IF NOT EXISTS on every
// initialisation, so a fresh store and a restarted one take the same path.
// Columns added after first release are applied as additive ALTER TABLE
// statements; the duplicate-column error they raise on already-current
// stores is expected and treated as success. There is no migration
// framework, no version table and no rollback path.
package database
