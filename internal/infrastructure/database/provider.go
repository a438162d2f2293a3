package database

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"campus-core/internal/infrastructure/logging"
)

// initKey is the singleflight key shared by all initialisation attempts.
const initKey = "init"

// Provider hands out the shared datastore handle, opening and preparing the
// store on first use.
//
// Concurrent callers arriving before the store is ready join a single
// in-flight attempt and all receive its outcome: the store is opened once,
// the schema is ensured once. A failed attempt publishes nothing, so the
// next call starts over from scratch rather than replaying a cached error.
//
// The guard applies no timeout of its own. If the driver hangs while
// opening, every joined caller waits; cancellation of a joined caller's
// context does not detach it from the shared attempt.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Provider struct {
	cfg Config
	log *logging.Logger

	group singleflight.Group

	mu sync.Mutex
	db *DB
}

// NewProvider creates a Provider for the given database configuration.
// The store is not touched until Initialize or DB is called.
//
// Parameters:
//   - cfg: Database configuration
//   - log: Logger for schema evolution warnings (nil uses logging.Default)
//
// Returns:
//   - *Provider: Guarded access to the datastore
func NewProvider(cfg Config, log *logging.Logger) *Provider {
	if log == nil {
		log = logging.Default()
	}
	return &Provider{
		cfg: cfg,
		log: log,
	}
}

// Initialize opens and prepares the datastore, or returns the handle from a
// previous successful call.
//
// Preparation means: open the file (creating directory and file as needed),
// ensure the schema, apply additive column evolution. On failure the
// partially opened handle is closed, nothing is retained, and the returned
// error wraps ErrInitFailed.
//
// Parameters:
//   - ctx: Context for schema statement execution
//
// Returns:
//   - *DB: Ready datastore handle
//   - error: Wrapping ErrInitFailed if the store could not be prepared
func (p *Provider) Initialize(ctx context.Context) (*DB, error) {
	if db := p.current(); db != nil {
		return db, nil
	}

	v, err, _ := p.group.Do(initKey, func() (interface{}, error) {
		// A caller that missed the fast path can enter a fresh flight
		// just after a successful one completed; reuse its handle.
		if db := p.current(); db != nil {
			return db, nil
		}

		db, err := p.open(ctx)
		if err != nil {
			return nil, err
		}
		p.publish(db)
		return db, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}
	return v.(*DB), nil
}

// DB returns the ready datastore handle, initialising the store on first
// use. Repositories call this at the start of every operation; the handle
// must not be cached across calls, as Close invalidates it.
//
// Parameters:
//   - ctx: Context for schema statement execution on first use
//
// Returns:
//   - *DB: Ready datastore handle
//   - error: Wrapping ErrInitFailed if initialisation was needed and failed
func (p *Provider) DB(ctx context.Context) (*DB, error) {
	return p.Initialize(ctx)
}

// Ready reports whether the store is initialised and not yet closed.
func (p *Provider) Ready() bool {
	return p.current() != nil
}

// Path returns the configured datastore path. Informational only; the file
// may not exist before the first Initialize.
func (p *Provider) Path() string {
	return p.cfg.Path
}

// Close shuts the datastore down and clears the published handle. Safe to
// call before initialisation and more than once. A later Initialize reopens
// the store from scratch.
//
// Close does not interrupt an in-flight initialisation; call it after
// request traffic has stopped.
//
// Returns:
//   - error: If closing the underlying connection fails
func (p *Provider) Close() error {
	p.mu.Lock()
	db := p.db
	p.db = nil
	p.mu.Unlock()

	if db == nil {
		return nil
	}
	return db.Close()
}

// open performs one full initialisation attempt.
func (p *Provider) open(ctx context.Context) (*DB, error) {
	db, err := Open(p.cfg)
	if err != nil {
		return nil, err
	}

	if err := db.EnsureSchema(ctx); err != nil {
		db.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, err
	}

	// Evolution failures are logged, never fatal. An install that cannot
	// take a new column still serves everything that does not need it.
	for _, evolveErr := range db.EvolveSchema(ctx) {
		p.log.Warn("schema evolution skipped", "error", evolveErr)
	}

	return db, nil
}

// current returns the published handle, or nil before initialisation.
func (p *Provider) current() *DB {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db
}

// publish records a successfully initialised handle.
func (p *Provider) publish(db *DB) {
	p.mu.Lock()
	p.db = db
	p.mu.Unlock()
}
