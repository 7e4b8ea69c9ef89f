package infra

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrLockNoObtenido is returned when a key stays held past the wait budget.
var ErrLockNoObtenido = errors.New("lock no obtenido")

const (
	lockTTL       = 30 * time.Second
	lockRetryStep = 50 * time.Millisecond
	lockMaxRetry  = 100 // ~5s waiting behind another holder
)

// RedisLocker serializes work per key across processes through bsm/redislock.
type RedisLocker struct {
	client *redislock.Client
	prefix string
}

func NewRedisLocker(rdb *redis.Client) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb), prefix: "lock:"}
}

// Lock blocks until key is obtained (or the retry budget runs out) and returns the release func.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockRetryStep), lockMaxRetry),
	}
	lock, err := l.client.Obtain(ctx, l.prefix+key, lockTTL, opts)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrLockNoObtenido, key)
	}
	if err != nil {
		return nil, err
	}
	return func() {
		// The caller's ctx may already be cancelled; release on a fresh one.
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			log.Warn().Err(err).Str("key", key).Msg("locker: failed to release redis lock")
		}
	}, nil
}

// LocalLocker is the in-process fallback used when Redis is not configured.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{})}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %v", ErrLockNoObtenido, key, ctx.Err())
	}
}
