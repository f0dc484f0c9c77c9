// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the managed client for volatile data.

Folio keeps only derived data here (paginated book text), so losing the
cache costs a re-pagination and never correctness.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Settings sizes the client pool.
type Settings struct {
	PoolSize     int
	MinIdleConns int
}

const (
	dialTimeout = 3 * time.Second
	ioTimeout   = 2 * time.Second
	pingTimeout = 2 * time.Second
)

// clientOptions parses redisURL and applies settings. Values already set in
// the URL query (pool_size, ...) are overridden.
func clientOptions(redisURL string, settings Settings) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if settings.PoolSize > 0 {
		options.PoolSize = settings.PoolSize
		options.MaxIdleConns = max(settings.PoolSize/2, settings.MinIdleConns)
	}
	options.MinIdleConns = settings.MinIdleConns
	options.DialTimeout = dialTimeout
	options.ReadTimeout = ioTimeout
	options.WriteTimeout = ioTimeout

	// A saturated pool should surface as a cache miss, not a stalled request.
	options.PoolTimeout = ioTimeout

	return options, nil
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(context stdctx.Context, redisURL string, settings Settings, logger *slog.Logger) (*redis.Client, error) {
	options, err := clientOptions(redisURL, settings)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Int("pool_size", options.PoolSize),
	)
	return client, nil
}

// Ping reports whether Redis answers within a short deadline.
func Ping(context stdctx.Context, client redis.Cmdable) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
