package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	originalEnv := os.Getenv("CAMPUS_CONFIG")
	defer os.Setenv("CAMPUS_CONFIG", originalEnv)

	os.Setenv("CAMPUS_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingDatabasePath verifies run fails when database path is empty.
func TestRun_MissingDatabasePath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
database:
  path: ""
  wal_mode: true
  busy_timeout: 5

session:
  path: "` + filepath.Join(tmpDir, "session.json") + `"

logging:
  level: info
  format: text
  output: stdout

api:
  host: "127.0.0.1"
  port: 18641
  timeouts:
    read: 30
    write: 60
    idle: 120

security:
  jwt:
    secret: "test-secret-key-at-least-32-characters-long"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("CAMPUS_CONFIG")
	defer os.Setenv("CAMPUS_CONFIG", originalEnv)
	os.Setenv("CAMPUS_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := run(ctx)
	if err == nil {
		t.Fatal("run() should fail with empty database path")
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	originalEnv := os.Getenv("CAMPUS_CONFIG")
	defer os.Setenv("CAMPUS_CONFIG", originalEnv)

	os.Unsetenv("CAMPUS_CONFIG")

	path := getConfigPath()
	if path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	originalEnv := os.Getenv("CAMPUS_CONFIG")
	defer os.Setenv("CAMPUS_CONFIG", originalEnv)

	expected := "/custom/path/config.yaml"
	os.Setenv("CAMPUS_CONFIG", expected)

	path := getConfigPath()
	if path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}

// TestRun_SuccessfulStartupAndShutdown tests full startup followed by a
// context-driven shutdown.
func TestRun_SuccessfulStartupAndShutdown(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")
	dbPath := filepath.Join(tmpDir, "test.db")

	configContent := `
database:
  path: "` + dbPath + `"
  wal_mode: true
  busy_timeout: 5

session:
  path: "` + filepath.Join(tmpDir, "session.json") + `"

logging:
  level: error
  format: text
  output: stdout

api:
  host: "127.0.0.1"
  port: 18642
  timeouts:
    read: 30
    write: 60
    idle: 120

security:
  jwt:
    secret: "test-secret-key-at-least-32-characters-long"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("CAMPUS_CONFIG")
	defer os.Setenv("CAMPUS_CONFIG", originalEnv)
	os.Setenv("CAMPUS_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}

	// The eager boot initialisation should have created the datastore
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file was not created: %v", err)
	}
}

// TestRun_DeferredDatabase verifies startup completes even when the database
// cannot be opened: initialisation is deferred and retried on first use
// rather than aborting the boot.
func TestRun_DeferredDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	// A file where the database directory should be makes directory
	// creation fail deterministically.
	blocker := filepath.Join(tmpDir, "blocker")
	if err := os.WriteFile(blocker, []byte("not a directory"), 0600); err != nil {
		t.Fatalf("failed to write blocker file: %v", err)
	}
	dbPath := filepath.Join(blocker, "test.db")

	configContent := `
database:
  path: "` + dbPath + `"
  wal_mode: true
  busy_timeout: 5

session:
  path: "` + filepath.Join(tmpDir, "session.json") + `"

logging:
  level: error
  format: text
  output: stdout

api:
  host: "127.0.0.1"
  port: 18643
  timeouts:
    read: 30
    write: 60
    idle: 120

security:
  jwt:
    secret: "test-secret-key-at-least-32-characters-long"
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	originalEnv := os.Getenv("CAMPUS_CONFIG")
	defer os.Setenv("CAMPUS_CONFIG", originalEnv)
	os.Setenv("CAMPUS_CONFIG", configPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() should tolerate a deferred database, got: %v", err)
	}
}
