// Package redis connects to the optional Redis deployment that backs the
// Centrifuge broker when several server instances share surfaces.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sahanarao-sps/sps-team30-project/internal/adapter/metrics"
)

// Client wraps a go-redis client.
type Client struct {
	rdb *redis.Client
}

// NewClient parses redisURL (e.g. "redis://localhost:6379/0"), connects and
// pings. m may be nil.
func NewClient(ctx context.Context, redisURL string, m *metrics.RedisMetrics) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if m != nil {
		rdb.AddHook(&MetricsHook{metrics: m})
	}

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Options exposes the parsed connection settings so the Centrifuge broker can
// dial the same instance.
func (c *Client) Options() *redis.Options {
	return c.rdb.Options()
}

// Ping verifies the Redis connection. Used as the readiness check.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *Client) Close() error {
	return c.rdb.Close()
}
