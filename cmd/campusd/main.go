// Campus Core - Student Records Service
//
// This is the main entry point for the Campus Core application.
// Campus Core keeps a campus's student, program and faculty records in a
// local SQLite datastore and serves them over a small REST API:
//   - Single-file datastore, no external database server
//   - Records survive restarts; the schema is created on first use
//   - Email/password accounts with JWT-protected routes
//   - Sign-in session persisted across restarts
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"campus-core/internal/api"
	"campus-core/internal/auth"
	"campus-core/internal/faculty"
	"campus-core/internal/infrastructure/config"
	"campus-core/internal/infrastructure/database"
	"campus-core/internal/infrastructure/logging"
	"campus-core/internal/program"
	"campus-core/internal/student"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Run the application
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting Campus Core",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Create the database provider. Initialisation is attempted eagerly
	// here, but a failure is not fatal: repositories retry through the
	// provider on first use, and the health endpoint reports the state.
	provider := database.NewProvider(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	}, log)
	defer func() {
		log.Info("closing database")
		if closeErr := provider.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	db, err := provider.Initialize(ctx)
	if err != nil {
		log.Warn("database initialisation deferred to first use", "error", err)
	} else {
		log.Info("database connected", "path", cfg.Database.Path)
	}

	// Build repositories over the shared provider
	studentRepo := student.NewSQLiteRepository(provider)
	programRepo := program.NewSQLiteRepository(provider)
	facultyRepo := faculty.NewSQLiteRepository(provider)
	userRepo := auth.NewUserRepository(provider)

	// Auth service and persisted sign-in session
	authService := auth.NewService(userRepo)
	sessions := auth.NewSessions(auth.NewFileStore(cfg.Session.Path))
	log.Info("session store ready", "path", cfg.Session.Path)

	// Start API server
	server, err := api.New(api.Deps{
		Config:    cfg.API,
		Security:  cfg.Security,
		Logger:    log,
		DB:        provider,
		Students:  studentRepo,
		Programs:  programRepo,
		Faculties: facultyRepo,
		Auth:      authService,
		Sessions:  sessions,
		Version:   version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		log.Info("stopping API server")
		if closeErr := server.Close(); closeErr != nil {
			log.Error("error stopping API server", "error", closeErr)
		}
	}()
	log.Info("API server started", "address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port))

	// Verify connections are healthy
	if err := healthCheck(ctx, db, server); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, waiting for shutdown signal")

	// Wait for shutdown signal
	<-ctx.Done()

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. API server
	// 2. Database

	log.Info("Campus Core stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses CAMPUS_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("CAMPUS_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database handle to check (nil if initialisation was deferred)
//   - server: API server to check
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, server *api.Server) error {
	// Check database (skipped while initialisation is deferred; the
	// health endpoint reports it as pending until the first use)
	if db != nil {
		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}

	// Check API server
	if err := server.HealthCheck(ctx); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	return nil
}
