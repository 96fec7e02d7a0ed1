package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"edtctl/pkg/timetable"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "edtctl:week:"

// redisStore is the part of *redis.Client the cache needs
type redisStore interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisCache shares scraped weeks between processes, e.g. several serve instances.
// Expiry is left to Redis.
type RedisCache struct {
	client redisStore
	ttl    time.Duration
}

// NewRedisCache wraps a connected Redis client.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Get returns the cached week, treating any Redis error as a miss.
func (r *RedisCache) Get(ctx context.Context, key string) ([]timetable.DaySchedule, bool) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if err != nil {
		return nil, false
	}

	var days []timetable.DaySchedule
	if err := json.Unmarshal([]byte(val), &days); err != nil {
		return nil, false
	}
	return days, true
}

// Set stores the week with the cache TTL.
func (r *RedisCache) Set(ctx context.Context, key string, days []timetable.DaySchedule) error {
	data, err := json.Marshal(days)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := r.client.Set(ctx, redisKeyPrefix+key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store week in redis: %w", err)
	}
	return nil
}
