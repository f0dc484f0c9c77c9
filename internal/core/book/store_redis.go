// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/folio/internal/platform/constants"
)

// RedisPageCache implements [PageCache] on Redis.
//
// Keys embed [PaginationVersion] so a new algorithm never reads stale pages.
type RedisPageCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisPageCache creates a page cache with the given entry lifetime.
func NewRedisPageCache(client redis.Cmdable, ttl time.Duration) *RedisPageCache {
	return &RedisPageCache{client: client, ttl: ttl}
}

func pageKey(bookID string, pageSize int) string {
	return fmt.Sprintf("%s%s:v%d:%d", constants.RedisPrefixBookPages, bookID, PaginationVersion, pageSize)
}

/*
Load fetches cached pages.

Returns:
  - []Page: the pages when present
  - bool: false on a cache miss
  - error: connectivity or decoding failures
*/
func (cache *RedisPageCache) Load(context context.Context, bookID string, pageSize int) ([]Page, bool, error) {
	raw, err := cache.client.Get(context, pageKey(bookID, pageSize)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis_page_cache_get_failed: %w", err)
	}

	var pages []Page
	if err := json.Unmarshal(raw, &pages); err != nil {
		return nil, false, fmt.Errorf("redis_page_cache_decode_failed: %w", err)
	}
	return pages, true, nil
}

// Store writes pages with the configured TTL.
func (cache *RedisPageCache) Store(context context.Context, bookID string, pageSize int, pages []Page) error {
	payload, err := json.Marshal(pages)
	if err != nil {
		return fmt.Errorf("redis_page_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, pageKey(bookID, pageSize), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_page_cache_set_failed: %w", err)
	}
	return nil
}
