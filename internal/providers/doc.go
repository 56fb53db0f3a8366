// Package providers wires the service providers into a command registry.
//
// Available Providers:
//   - Filesystem: write_file and read_file inside the application data directory
//   - System: get_os, runtime info and ping
//
// Provider Interface:
//   - Definition(): Returns service metadata and tool definitions
//   - Execute(): Executes a tool with parameters and context
//
// Example Usage:
//
//	registry := service.NewRegistry()
//	err := providers.RegisterAll(registry, resolver, logger)
package providers
