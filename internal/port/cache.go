package port

import (
	"context"
	"time"
)

// Cache provides caching capabilities for video retrieval.
type Cache interface {
	GetVideoDetails(ctx context.Context, videoID string) ([]byte, error)
	GetEtagVideoDetails(ctx context.Context, videoID string) (string, error)
	SetVideoDetails(ctx context.Context, videoID string, data []byte, validUntil time.Time)
	SetEtagVideoDetails(ctx context.Context, videoID string, etag string, validUntil time.Time)
	DeleteVideoDetails(ctx context.Context, videoID string) error
	DeleteEtagVideoDetails(ctx context.Context, videoID string) error
}

// Locker hands out exclusive, expiring locks keyed by video ID.
type Locker interface {
	// TryLock returns ok=false without blocking when the key is already held.
	TryLock(ctx context.Context, videoID string) (release func(), ok bool, err error)
}
