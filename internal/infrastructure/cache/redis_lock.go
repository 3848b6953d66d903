package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leadlane/backend/internal/domain/crm"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrLockTimeout is returned when a distributed lock could not be acquired in time
var ErrLockTimeout = errors.New("cache: lock acquisition timed out")

// releaseScript deletes the key only if it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker is a crm.RefreshLocker shared by all service instances.
// Locks expire after ttl so a crashed holder cannot block refreshes forever.
type RedisLocker struct {
	client redis.Cmdable
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
	logger *zap.Logger
}

// NewRedisLocker creates a RedisLocker; wait bounds how long Lock polls for the key
func NewRedisLocker(client redis.Cmdable, ttl, wait time.Duration, logger *zap.Logger) *RedisLocker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		retry:  50 * time.Millisecond,
		logger: logger,
	}
}

// Lock sets key with SET NX PX, polling until it is free, ctx ends or wait elapses
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			return func() { l.unlock(key, token) }, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}

		timer := time.NewTimer(l.retry)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) unlock(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
		l.logger.Warn("failed to release redis lock", zap.String("key", key), zap.Error(err))
	}
}

// LayeredLocker takes the in-process lock first so concurrent callers in one
// instance queue locally instead of polling Redis.
type LayeredLocker struct {
	local  crm.RefreshLocker
	remote crm.RefreshLocker
}

// NewLayeredLocker combines a local and a distributed locker
func NewLayeredLocker(local, remote crm.RefreshLocker) *LayeredLocker {
	return &LayeredLocker{local: local, remote: remote}
}

// Lock acquires the local lock, then the remote one
func (l *LayeredLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlockLocal, err := l.local.Lock(ctx, key)
	if err != nil {
		return nil, err
	}
	unlockRemote, err := l.remote.Lock(ctx, key)
	if err != nil {
		unlockLocal()
		return nil, err
	}
	return func() {
		unlockRemote()
		unlockLocal()
	}, nil
}

var (
	_ crm.RefreshLocker = (*RedisLocker)(nil)
	_ crm.RefreshLocker = (*LayeredLocker)(nil)
)
