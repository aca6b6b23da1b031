package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "lock:ge-sync:"

// Locker serializes sync runs per key across processes.
type Locker interface {
	// Acquire tries to take the lock once. ok is false when another holder owns it.
	Acquire(ctx context.Context, key string) (release func(), ok bool, err error)
}

// releaseScript deletes the key only when it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX and a token-checked release.
type RedisLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisLocker wraps an existing redis client.
func NewRedisLocker(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, logger: logger}
}

// Acquire takes the lock for key with a fresh token.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	token := uuid.New().String()
	redisKey := keyPrefix + key

	ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		// Detached from the caller context so a cancelled request still frees the lock
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		deleted, err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Int64()
		l.released(key, deleted, err)
	}
	return release, true, nil
}

// released reports a release that did not delete our key. The TTL elapsed while the
// run was still going, so another holder may have overlapped it.
func (l *RedisLocker) released(key string, deleted int64, err error) {
	switch {
	case err != nil && !errors.Is(err, redis.Nil):
		l.logger.Warn("Failed to release lock", zap.String("key", key), zap.Error(err))
	case deleted == 0:
		l.logger.Warn("Lock expired before release, run outlived its TTL",
			zap.String("key", key),
			zap.Duration("ttl", l.ttl),
		)
	}
}

// NopLocker always grants the lock. It is used when redis is not configured.
type NopLocker struct{}

// Acquire always succeeds.
func (NopLocker) Acquire(context.Context, string) (func(), bool, error) {
	return func() {}, true, nil
}

// New returns a RedisLocker when cfg.Addr is set, otherwise a NopLocker.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (Locker, error) {
	if cfg.Addr == "" {
		return NopLocker{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisLocker(client, cfg.TTL(), logger), nil
}
