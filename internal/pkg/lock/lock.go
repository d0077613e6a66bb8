// Package lock provides best-effort mutual exclusion for background jobs running on several
// API instances.
package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReleaseFunc gives up a held lock.
type ReleaseFunc func(ctx context.Context) error

type Locker interface {
	// TryLock acquires key for ttl without blocking. ok is false when another holder owns it.
	TryLock(ctx context.Context, key string, ttl time.Duration) (release ReleaseFunc, ok bool, err error)
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client redis.UniversalClient
	token  string
	prefix string
}

// NewRedisLocker returns a Locker backed by SET NX. token identifies this process as the holder.
func NewRedisLocker(client redis.UniversalClient, token string) *RedisLocker {
	return &RedisLocker{client: client, token: token, prefix: "payrollpro:lock:"}
}

func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (ReleaseFunc, bool, error) {
	fullKey := l.prefix + key

	ok, err := l.client.SetNX(ctx, fullKey, l.token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{fullKey}, l.token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("release lock %s: %w", key, err)
		}
		return nil
	}
	return release, true, nil
}

// NoopLocker always grants the lock. Used when Redis is not configured and a single instance runs.
type NoopLocker struct{}

func (NoopLocker) TryLock(context.Context, string, time.Duration) (ReleaseFunc, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}
