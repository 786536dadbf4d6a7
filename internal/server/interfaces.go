package server

import "context"

// Server defines the common lifecycle contract for transport servers managed
// by this package.
type Server interface {
	// RunServer starts serving requests and blocks until ctx is done, a stop
	// signal arrives or a transport fails. It shuts everything down before
	// returning.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server. When ctx expires first, open
	// connections are closed forcibly.
	Shutdown(ctx context.Context) error
}
