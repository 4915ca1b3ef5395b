// Package cache holds rendered preview HTML in Redis for a short TTL.
// Messaging fetchers hammer fresh links from several crawler IPs at
// once; a 60s render cache absorbs that burst without touching sqlite.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/duitai/purview/internal/config"
	"github.com/redis/go-redis/v9"
)

type RenderCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// Connect dials Redis and verifies the connection.
func Connect(cfg config.CacheConfig, ttl time.Duration) (*RenderCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RenderCache{rdb: rdb, ttl: ttl}, nil
}

func key(token, shape string) string {
	return "purview:render:" + token + ":" + shape
}

// Get returns a cached render, or nil on miss. Cache failures are
// logged and treated as misses.
func (c *RenderCache) Get(ctx context.Context, token, shape string) []byte {
	doc, err := c.rdb.Get(ctx, key(token, shape)).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Debug("render cache get failed", "token", token, "error", err)
		}
		return nil
	}
	return doc
}

// Set stores a rendered document. Failures are logged, never propagated.
func (c *RenderCache) Set(ctx context.Context, token, shape string, doc []byte) {
	if err := c.rdb.Set(ctx, key(token, shape), doc, c.ttl).Err(); err != nil {
		slog.Debug("render cache set failed", "token", token, "error", err)
	}
}

func (c *RenderCache) Close() error {
	return c.rdb.Close()
}
