package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/kart-io/datanikah/pkg/component/redis"
)

// RedisStore implements Store on Redis for multi-instance deployments.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis-backed token store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: client.Key("jwt", "blacklisted") + ":",
	}
}

// Revoke marks a token as revoked in Redis.
func (s *RedisStore) Revoke(ctx context.Context, token string, expiration time.Duration) error {
	return s.client.Client().Set(ctx, s.prefix+token, "revoked", expiration).Err()
}

// IsRevoked checks if a token exists in the Redis blacklist.
func (s *RedisStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	count, err := s.client.Client().Exists(ctx, s.prefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("redis error: %w", err)
	}
	return count > 0, nil
}

// Close is a no-op; the client is managed by its owner.
func (s *RedisStore) Close() error {
	return nil
}
