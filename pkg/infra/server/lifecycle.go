// Package server runs long-lived servers under one start/stop lifecycle.
package server

import "context"

// Lifecycle defines the lifecycle interface for servers.
type Lifecycle interface {
	// Start begins serving and returns once the server accepts work.
	Start(ctx context.Context) error
	// Stop stops the server gracefully within ctx.
	Stop(ctx context.Context) error
}

// Runnable represents a named component that can be started and stopped.
type Runnable interface {
	Lifecycle
	// Name returns the server name for identification.
	Name() string
}

// Failer is implemented by servers that can fail after Start returned.
// The channel receives at most one error.
type Failer interface {
	Failed() <-chan error
}
