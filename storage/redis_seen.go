package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisSeenStore remembers listing URLs across runs, with a TTL so stale
// listings eventually come back. Satisfies scraper.SeenStore.
type RedisSeenStore struct {
	client *redis.Client
}

// NewRedisSeenStore connects to Redis and verifies the connection.
func NewRedisSeenStore(addr, password string, db int) (*RedisSeenStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("redis: connect %s: %w", addr, err)
	}

	return &RedisSeenStore{client: rdb}, nil
}

// Seen reports whether the key was marked in a previous run.
func (s *RedisSeenStore) Seen(ctx context.Context, key string) (bool, error) {
	result := s.client.Exists(ctx, "seen:"+key)
	return result.Val() > 0, result.Err()
}

// Mark records the key with the given TTL. A zero TTL keeps it forever.
func (s *RedisSeenStore) Mark(ctx context.Context, key string, ttl time.Duration) error {
	return s.client.Set(ctx, "seen:"+key, "1", ttl).Err()
}

// Close closes the Redis connection.
func (s *RedisSeenStore) Close() error {
	return s.client.Close()
}
