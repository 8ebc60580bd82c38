// Package server holds configuration for the HTTP surface of the checker.
//
// The serve command builds the Fiber application itself; this package only
// carries the settings (port, API key) shared between the command and the
// middleware that enforces them.
package server
