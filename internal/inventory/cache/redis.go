package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
	"github.com/tair/inventory-ledger/pkg/logger"
)

// DefaultTTL bounds how stale a cached status view may be.
const DefaultTTL = 10 * time.Minute

const scanCount = 100

// RedisCache stores status views as JSON and drops them on mutation.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a redis-backed cache. A nil client yields a cache
// that always misses and never fails.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// Get decodes the value at key into dest.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// A value we cannot decode is treated as a miss and overwritten.
		return false, nil
	}
	return true, nil
}

// Set stores value under key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	logger.Debug(ctx).Str("cache_key", key).Dur("ttl", c.ttl).Int("size", len(raw)).Msg("Status view cached")
	return nil
}

// Invalidate deletes the given keys.
func (c *RedisCache) Invalidate(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

// InvalidatePattern deletes every key matching pattern.
func (c *RedisCache) InvalidatePattern(ctx context.Context, pattern string) error {
	if c.client == nil {
		return nil
	}

	iter := c.client.Scan(ctx, 0, pattern, scanCount).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache scan %s: %w", pattern, err)
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("cache invalidate %s: %w", pattern, err)
		}
	}

	logger.Debug(ctx).Str("pattern", pattern).Int("keys_deleted", len(keys)).Msg("Cache invalidated")
	return nil
}

var _ domain.CacheInvalidator = (*RedisCache)(nil)
