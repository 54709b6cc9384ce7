package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const tagCacheKey = "reviews:tags"

// TagCache keeps the unique-tag set in Redis so the tag listing does not have
// to scan every review on each request. A nil client turns the cache into a
// no-op, tests and cache-less deployments go straight to the database.
type TagCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTagCache connects to Redis and verifies the connection.
func NewTagCache(redisAddr, password string, ttl time.Duration) (*TagCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &TagCache{client: rdb, ttl: ttl}, nil
}

// NewNoopTagCache returns a cache that never hits and never stores.
func NewNoopTagCache() *TagCache {
	return &TagCache{}
}

// Get returns the cached tag list, or ok=false on miss.
func (c *TagCache) Get(ctx context.Context) ([]string, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, nil
	}

	raw, err := c.client.Get(ctx, tagCacheKey).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, false, err
	}
	return tags, true, nil
}

// Set stores the tag list with the configured TTL.
func (c *TagCache) Set(ctx context.Context, tags []string) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, tagCacheKey, raw, c.ttl).Err()
}

// Invalidate drops the cached list, the next read recomputes it.
func (c *TagCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, tagCacheKey).Err()
}
