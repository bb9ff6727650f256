package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/tradeops/backend/internal/domain/shared/valueobject"
	"github.com/tradeops/backend/internal/infrastructure/config"
)

// RedisRateCache caches reference rates in Redis. Each target currency gets
// one hash keyed by period, so invalidating a target is a single DEL and a
// stale quarterly entry can never outlive its currency's book.
type RedisRateCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisRateCache connects to Redis and returns a rate cache
func NewRedisRateCache(cfg config.RedisConfig, ttl time.Duration) (*RedisRateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisRateCache{
		client:    client,
		keyPrefix: "fx:rate:",
		ttl:       ttl,
	}, nil
}

// NewRedisRateCacheWithClient wraps an existing Redis client
func NewRedisRateCacheWithClient(client *redis.Client, ttl time.Duration) *RedisRateCache {
	return &RedisRateCache{
		client:    client,
		keyPrefix: "fx:rate:",
		ttl:       ttl,
	}
}

func (c *RedisRateCache) key(target valueobject.Currency) string {
	return c.keyPrefix + string(target)
}

// Get returns the cached rate for a period, if present
func (c *RedisRateCache) Get(ctx context.Context, period valueobject.Period, target valueobject.Currency) (decimal.Decimal, bool) {
	raw, err := c.client.HGet(ctx, c.key(target), period.String()).Result()
	if err != nil {
		return decimal.Zero, false
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return rate, true
}

// Set caches a rate. Failures are silent; the repository remains the source
// of truth.
func (c *RedisRateCache) Set(ctx context.Context, period valueobject.Period, target valueobject.Currency, rate decimal.Decimal) {
	key := c.key(target)
	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, period.String(), rate.String())
	if c.ttl > 0 {
		pipe.Expire(ctx, key, c.ttl)
	}
	_, _ = pipe.Exec(ctx)
}

// InvalidateTarget drops every cached period for a target currency
func (c *RedisRateCache) InvalidateTarget(ctx context.Context, target valueobject.Currency) error {
	return c.client.Del(ctx, c.key(target)).Err()
}

// Close closes the underlying Redis client
func (c *RedisRateCache) Close() error {
	return c.client.Close()
}
