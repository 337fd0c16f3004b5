package server

import "context"

// Server defines the lifecycle contract of the sync server.
type Server interface {
	// RunServer serves requests until ctx is cancelled or a termination
	// signal arrives, then shuts down gracefully. It returns an error only
	// when the server could not be started or did not stop cleanly.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown(ctx context.Context) error
}
