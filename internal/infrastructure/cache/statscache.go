package cache

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"chroma/internal/shared/logger"
)

const (
	summaryKeyPrefix = "stats:summary:"
	baseSummaryTTL   = 60 * time.Second
	summaryTTLJitter = 30 * time.Second // TTL range: 60-90s (anti-stampede)
)

// RedisStatsCache caches rendered analytics payloads between refreshes so
// the summary endpoint does not rerun its aggregate queries on every hit.
// Payloads are opaque bytes; the application layer owns the encoding.
type RedisStatsCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisStatsCache creates a new Redis-based analytics cache.
func NewRedisStatsCache(client *redis.Client, logger logger.Interface) *RedisStatsCache {
	return &RedisStatsCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisStatsCache) key(key string) string {
	return summaryKeyPrefix + key
}

// GetSummary retrieves a cached payload. The second return reports a hit.
func (c *RedisStatsCache) GetSummary(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get summary from cache: %w", err)
	}

	return payload, true, nil
}

// SetSummary stores a payload with a jittered TTL.
func (c *RedisStatsCache) SetSummary(ctx context.Context, key string, payload []byte) error {
	if err := c.client.Set(ctx, c.key(key), payload, summaryTTLWithJitter()).Err(); err != nil {
		return fmt.Errorf("failed to set summary in cache: %w", err)
	}

	c.logger.Debugw("stats summary cached",
		"key", key,
		"bytes", len(payload),
	)

	return nil
}

// summaryTTLWithJitter returns a randomized TTL to prevent cache stampede.
func summaryTTLWithJitter() time.Duration {
	jitter := time.Duration(rand.Int64N(int64(summaryTTLJitter)))
	return baseSummaryTTL + jitter
}
