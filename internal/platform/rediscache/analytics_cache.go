// Package rediscache provides a Redis-backed cache for per-user analytics
// summaries.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taskboard/taskboard-api/internal/service"
)

const keyPrefix = "analytics:"

// AnalyticsCache caches computed analytics results in Redis, keyed per user.
type AnalyticsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// Ensure AnalyticsCache implements service.AnalyticsCache
var _ service.AnalyticsCache = (*AnalyticsCache)(nil)

// New returns a new AnalyticsCache with the given TTL.
func New(rdb *redis.Client, ttl time.Duration) *AnalyticsCache {
	return &AnalyticsCache{rdb: rdb, ttl: ttl}
}

func key(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

// Get returns the cached result for the user, or (nil, nil) on a miss.
func (c *AnalyticsCache) Get(ctx context.Context, userID uuid.UUID) (*service.AnalyticsResult, error) {
	b, err := c.rdb.Get(ctx, key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result service.AnalyticsResult
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set stores the result for the user with the configured TTL.
func (c *AnalyticsCache) Set(ctx context.Context, userID uuid.UUID, result *service.AnalyticsResult) error {
	b, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(userID), b, c.ttl).Err()
}

// Invalidate removes the user's cached result (cache invalidation on write).
func (c *AnalyticsCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.rdb.Del(ctx, key(userID)).Err()
}
