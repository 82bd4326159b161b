// Package server wires and runs the application's HTTP server.
//
// It owns the server lifecycle: startup, POSIX signal handling, and graceful
// shutdown of in-flight requests.
package server
