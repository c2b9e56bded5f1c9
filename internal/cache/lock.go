package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ankitpatne/clipTag/internal/logger"
	"github.com/ankitpatne/clipTag/internal/port"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still carries our token, so an
// expired lock taken over by another run is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// extendScript pushes the expiry forward while the lock still carries our token.
var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker holds a per-video lock in Redis. A held lock is renewed every
// ttl/3 until released, so a run longer than ttl keeps it.
type RedisLocker struct {
	client     *redis.Client
	ttl        time.Duration
	renewEvery time.Duration
}

// compile-time check: *RedisLocker must satisfy port.Locker
var _ port.Locker = (*RedisLocker)(nil)

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, renewEvery: ttl / 3}
}

func (l *RedisLocker) TryLock(ctx context.Context, videoID string) (func(), bool, error) {
	key := getLockKey(videoID)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis setnx failed: %w", err)
	}
	if !ok {
		return nil, false, nil
	}

	// the caller's context may already be cancelled when the lock is renewed or released
	bg := context.WithoutCancel(ctx)
	stop := make(chan struct{})
	done := make(chan struct{})
	go l.renew(bg, key, token, stop, done)

	var once sync.Once
	release := func() {
		once.Do(func() {
			close(stop)
			<-done
			if err := releaseScript.Run(bg, l.client, []string{key}, token).Err(); err != nil {
				logger.Warnf(bg, "failed to release analysis lock of video %q: %v", videoID, err)
			}
		})
	}
	return release, true, nil
}

func (l *RedisLocker) renew(ctx context.Context, key, token string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	if l.renewEvery <= 0 {
		<-stop
		return
	}

	ticker := time.NewTicker(l.renewEvery)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			kept, err := extendScript.Run(ctx, l.client, []string{key}, token, l.ttl.Milliseconds()).Int()
			if err != nil {
				logger.Warnf(ctx, "failed to renew lock %q: %v", key, err)
				continue
			}
			if kept == 0 {
				logger.Warnf(ctx, "lock %q was lost before release", key)
				<-stop
				return
			}
		}
	}
}

func getLockKey(videoID string) string {
	return "lock:analyse:" + videoID
}

// LocalLocker serialises analyses inside a single process when no Redis is configured.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// compile-time check: *LocalLocker must satisfy port.Locker
var _ port.Locker = (*LocalLocker)(nil)

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: map[string]struct{}{}}
}

func (l *LocalLocker) TryLock(ctx context.Context, videoID string) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[videoID]; ok {
		return nil, false, nil
	}
	l.held[videoID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, videoID)
			l.mu.Unlock()
		})
	}, true, nil
}
