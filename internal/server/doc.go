// Package server runs the sync server's HTTP transport.
//
// It owns startup, signal handling and graceful shutdown of the HTTP server
// together with the background workers that live as long as it does.
package server
