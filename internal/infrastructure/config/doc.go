// Package config provides 12-factor configuration management for the DeskShell backend.
//
// Values are layered: Default(), then an optional TOML or YAML file, then
// environment variables. Unset variables leave lower layers untouched.
//
// Configuration Sections:
//   - App: application identifier and data-directory override
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Security: CORS origins and security headers
//
// Example Usage:
//
//	cfg, err := config.LoadFile("deskshell.toml")
//	fmt.Printf("Server running on %s\n", cfg.Server.Address())
//
// Environment Variables:
//   - APP_IDENTIFIER, APP_DATA_DIR
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - CORS_ALLOW_ORIGINS, SECURITY_HEADERS_ENABLED
package config
