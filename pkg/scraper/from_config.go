package scraper

import (
	"context"
	"fmt"
	"time"

	"edtctl/pkg/config"

	"github.com/go-redis/redis/v8"
)

// NewClientFromConfig builds a client with the credentials, server and cache backend of cfg.
func NewClientFromConfig(ctx context.Context, cfg *config.AppConfig) (*Client, error) {
	opts := []Option{
		WithCredentials(cfg.Username, cfg.Password),
		WithBaseURL(cfg.BaseURL),
	}

	cache, err := newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cache != nil {
		opts = append(opts, WithCache(cache))
	}

	return NewClient(opts...), nil
}

func newCache(ctx context.Context, cfg *config.AppConfig) (Cache, error) {
	ttl := cfg.CacheDuration()

	switch cfg.CacheBackend {
	case "none":
		return nil, nil
	case "redis":
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("cache backend is redis but no redis_addr is configured")
		}
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("could not connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return NewRedisCache(client, ttl), nil
	case "", "file":
		return NewFileCache(ttl)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}
