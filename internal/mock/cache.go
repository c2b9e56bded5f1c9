package mock

import (
	"context"
	"sync"
	"time"
)

// Cache implements cache behaviour for tests.
type Cache struct {
	// stored values
	VideoOut []byte

	// etag values
	EtagVideo string

	// errors
	GetVideoErr     error
	GetEtagVideoErr error
	DelVideoErr     error
	DelEtagVideoErr error

	// call flags
	GetVideoCalled     bool
	GetEtagVideoCalled bool
	SetVideoCalled     bool
	SetEtagVideoCalled bool
	DelVideoCalled     bool
	DelEtagVideoCalled bool

	// captured inputs
	DeletedIDs []string
	ValidUntil time.Time
}

func (c *Cache) GetVideoDetails(ctx context.Context, videoID string) ([]byte, error) {
	c.GetVideoCalled = true
	if c.GetVideoErr != nil {
		return nil, c.GetVideoErr
	}
	return c.VideoOut, nil
}

func (c *Cache) GetEtagVideoDetails(ctx context.Context, videoID string) (string, error) {
	c.GetEtagVideoCalled = true
	if c.GetEtagVideoErr != nil {
		return "", c.GetEtagVideoErr
	}
	return c.EtagVideo, nil
}

func (c *Cache) SetVideoDetails(ctx context.Context, videoID string, data []byte, validUntil time.Time) {
	c.SetVideoCalled = true
	c.VideoOut = data
	c.ValidUntil = validUntil
}

func (c *Cache) SetEtagVideoDetails(ctx context.Context, videoID string, etag string, validUntil time.Time) {
	c.SetEtagVideoCalled = true
	c.EtagVideo = etag
}

func (c *Cache) DeleteVideoDetails(ctx context.Context, videoID string) error {
	c.DelVideoCalled = true
	c.DeletedIDs = append(c.DeletedIDs, videoID)
	c.VideoOut = nil
	return c.DelVideoErr
}

func (c *Cache) DeleteEtagVideoDetails(ctx context.Context, videoID string) error {
	c.DelEtagVideoCalled = true
	c.EtagVideo = ""
	return c.DelEtagVideoErr
}

// Locker implements port.Locker for tests.
type Locker struct {
	mu   sync.Mutex
	held map[string]bool

	Err error

	Acquired []string
	Released []string
}

// Hold marks videoID as locked by someone else.
func (l *Locker) Hold(videoID string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held == nil {
		l.held = map[string]bool{}
	}
	l.held[videoID] = true
}

func (l *Locker) TryLock(ctx context.Context, videoID string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return nil, false, l.Err
	}
	if l.held == nil {
		l.held = map[string]bool{}
	}
	if l.held[videoID] {
		return nil, false, nil
	}
	l.held[videoID] = true
	l.Acquired = append(l.Acquired, videoID)
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, videoID)
		l.Released = append(l.Released, videoID)
	}, true, nil
}
