// Package server holds the status HTTP server configuration.
//
// The main application entry point handles the server startup; this package only defines
// the configuration consumed by core/config and cmd/start.
package server
