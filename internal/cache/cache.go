package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/redis/go-redis/v9"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	return NewCacheWithClient(NewClient(addr, password))
}

func NewCacheWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func NewClient(addr, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
}

func (c *Cache) GetVideoDetails(ctx context.Context, videoID string) ([]byte, error) {
	logger.Debugf(ctx, "getting entry in cache for video %q...", videoID)

	val, err := c.client.Get(ctx, getCacheKey(videoID, false)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

func (c *Cache) GetEtagVideoDetails(ctx context.Context, videoID string) (string, error) {
	val, err := c.client.Get(ctx, getCacheKey(videoID, true)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}
	return val, nil
}

// SetVideoDetails is best effort; failures are only logged.
func (c *Cache) SetVideoDetails(ctx context.Context, videoID string, data []byte, validUntil time.Time) {
	logger.Debugf(ctx, "creating entry in cache for video %q, valid until %s...", videoID, validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, getCacheKey(videoID, false), data, time.Until(validUntil)).Err(); err != nil {
		logger.Warnf(ctx, "failed to cache details of video %q: %v", videoID, err)
	}
}

func (c *Cache) SetEtagVideoDetails(ctx context.Context, videoID string, etag string, validUntil time.Time) {
	if err := c.client.Set(ctx, getCacheKey(videoID, true), etag, time.Until(validUntil)).Err(); err != nil {
		logger.Warnf(ctx, "failed to cache etag of video %q: %v", videoID, err)
	}
}

func (c *Cache) DeleteVideoDetails(ctx context.Context, videoID string) error {
	logger.Debugf(ctx, "deleting entry in cache for video %q...", videoID)

	if err := c.client.Del(ctx, getCacheKey(videoID, false)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func (c *Cache) DeleteEtagVideoDetails(ctx context.Context, videoID string) error {
	if err := c.client.Del(ctx, getCacheKey(videoID, true)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(videoID string, etag bool) string {
	if etag {
		return "etag:video:" + videoID
	}
	return "video:" + videoID
}
