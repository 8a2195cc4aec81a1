// Package component defines the contract shared by infrastructure clients
// (MongoDB, Redis) so the health endpoint can probe them uniformly.
package component

import "context"

// HealthChecker reports the health of a dependency; nil means healthy.
type HealthChecker func() error

// Client is implemented by every infrastructure client wrapper.
type Client interface {
	// Name returns the component type identifier, e.g. "mongodb".
	Name() string

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error

	// Health returns a checker bounded by its own timeout.
	Health() HealthChecker
}
