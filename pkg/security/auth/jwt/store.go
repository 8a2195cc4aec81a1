package jwt

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store defines the interface for token revocation.
type Store interface {
	// Revoke marks a token as revoked for the given duration.
	Revoke(ctx context.Context, token string, expiration time.Duration) error

	// IsRevoked checks if a token has been revoked.
	IsRevoked(ctx context.Context, token string) (bool, error)

	// Close releases any resources used by the store.
	Close() error
}

// MemoryStore keeps revoked tokens in process memory.
// Suitable for single-instance deployments or testing.
type MemoryStore struct {
	tokens *cache.Cache
}

// NewMemoryStore creates a new in-memory token store whose expired
// entries are purged every cleanupInterval.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	return &MemoryStore{tokens: cache.New(cache.NoExpiration, cleanupInterval)}
}

// Revoke marks a token as revoked.
func (s *MemoryStore) Revoke(_ context.Context, token string, expiration time.Duration) error {
	s.tokens.Set(token, struct{}{}, expiration)
	return nil
}

// IsRevoked checks if a token has been revoked.
func (s *MemoryStore) IsRevoked(_ context.Context, token string) (bool, error) {
	_, found := s.tokens.Get(token)
	return found, nil
}

// Size returns the number of revoked tokens in the store.
func (s *MemoryStore) Size() int {
	return s.tokens.ItemCount()
}

// Close drops every entry.
func (s *MemoryStore) Close() error {
	s.tokens.Flush()
	return nil
}

// NoopStore never revokes anything.
type NoopStore struct{}

// NewNoopStore creates a new no-op store.
func NewNoopStore() *NoopStore {
	return &NoopStore{}
}

func (s *NoopStore) Revoke(context.Context, string, time.Duration) error { return nil }

func (s *NoopStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }

func (s *NoopStore) Close() error { return nil }
