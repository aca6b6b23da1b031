// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure: listening port, API key and the request budget that
// bounds a sync invocation (fetch, plan and persist for every bucket involved).
//
// # Usage
//
// This package is embedded by core/config and read by cmd/start.go.
package server
