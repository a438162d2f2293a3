// Package config handles loading and validating Campus Core configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Loading a local .env file when present (development convenience)
//   - Overriding with environment variables (CAMPUS_ prefix)
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (JWT secret) should be set via environment variables
//   - The config file should have restricted permissions (0600)
//
// Performance Characteristics:
//   - Configuration is loaded once at startup
//   - No runtime overhead after initial load
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Database.Path)
package config
