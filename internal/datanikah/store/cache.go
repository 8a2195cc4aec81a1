package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kart-io/datanikah/internal/model"
	"github.com/kart-io/datanikah/pkg/component/redis"
	"github.com/kart-io/datanikah/pkg/utils/json"
)

// StatsCache caches dashboard aggregates per year.
type StatsCache interface {
	Get(ctx context.Context, year int) (*model.DashboardStats, bool, error)
	Set(ctx context.Context, stats *model.DashboardStats, ttl time.Duration) error
	// Invalidate drops every cached year; called after an import.
	Invalidate(ctx context.Context) error
}

// localStatsCache keeps aggregates in process memory.
type localStatsCache struct {
	c *cache.Cache
}

// NewLocalStatsCache returns an in-process StatsCache.
func NewLocalStatsCache() StatsCache {
	return &localStatsCache{c: cache.New(cache.NoExpiration, 10*time.Minute)}
}

func (l *localStatsCache) Get(_ context.Context, year int) (*model.DashboardStats, bool, error) {
	v, ok := l.c.Get(strconv.Itoa(year))
	if !ok {
		return nil, false, nil
	}
	return v.(*model.DashboardStats), true, nil
}

func (l *localStatsCache) Set(_ context.Context, stats *model.DashboardStats, ttl time.Duration) error {
	l.c.Set(strconv.Itoa(stats.Year), stats, ttl)
	return nil
}

func (l *localStatsCache) Invalidate(context.Context) error {
	l.c.Flush()
	return nil
}

// redisStatsCache shares aggregates across replicas.
type redisStatsCache struct {
	client *redis.Client
}

// NewRedisStatsCache returns a Redis-backed StatsCache.
func NewRedisStatsCache(client *redis.Client) StatsCache {
	return &redisStatsCache{client: client}
}

func (r *redisStatsCache) key(year int) string {
	return r.client.Key("stats", strconv.Itoa(year))
}

func (r *redisStatsCache) Get(ctx context.Context, year int) (*model.DashboardStats, bool, error) {
	raw, err := r.client.Client().Get(ctx, r.key(year)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get stats cache: %w", err)
	}

	var stats model.DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, false, fmt.Errorf("decode stats cache: %w", err)
	}
	return &stats, true, nil
}

func (r *redisStatsCache) Set(ctx context.Context, stats *model.DashboardStats, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encode stats cache: %w", err)
	}
	return r.client.Client().Set(ctx, r.key(stats.Year), raw, ttl).Err()
}

func (r *redisStatsCache) Invalidate(ctx context.Context) error {
	iter := r.client.Client().Scan(ctx, 0, r.client.Key("stats", "*"), 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan stats cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Client().Del(ctx, keys...).Err()
}
