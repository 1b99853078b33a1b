package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/inventory-ledger/internal/inventory/domain"
)

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available at %s: %v", addr, err)
	}
	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})
	return NewRedisCache(client, time.Minute)
}

type view struct {
	Quantity decimal.Decimal    `json:"quantity"`
	Status   domain.StockStatus `json:"status"`
}

func TestRedisCache_RoundTripAndInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	item := domain.ItemRef{Kind: domain.ItemKindMaterial, ID: "42"}
	keyA := domain.StatusCacheKey(domain.NewRecordKey(item.Kind, item.ID, "A"))
	keyB := domain.StatusCacheKey(domain.NewRecordKey(item.Kind, item.ID, "B"))

	require.NoError(t, c.Set(ctx, keyA, view{Quantity: decimal.NewFromInt(3), Status: domain.StatusLowStock}))
	require.NoError(t, c.Set(ctx, keyB, view{Quantity: decimal.NewFromInt(9), Status: domain.StatusInStock}))

	var got view
	ok, err := c.Get(ctx, keyA, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Quantity.Equal(decimal.NewFromInt(3)))

	require.NoError(t, c.Invalidate(ctx, keyA))
	ok, err = c.Get(ctx, keyA, &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.InvalidatePattern(ctx, domain.ItemStatusPattern(item)))
	ok, err = c.Get(ctx, keyB, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_NilClient(t *testing.T) {
	c := NewRedisCache(nil, 0)
	ctx := context.Background()

	assert.Equal(t, DefaultTTL, c.ttl)
	ok, err := c.Get(ctx, "k", &view{})
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(ctx, "k", view{}))
	assert.NoError(t, c.Invalidate(ctx, "k"))
	assert.NoError(t, c.InvalidatePattern(ctx, "k*"))
}
