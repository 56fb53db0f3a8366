// Package server assembles the DeskShell backend: sandbox, providers,
// registry, middleware and routes, served behind gzip compression.
package server
