package aiquiz

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/saulo-duarte/lessonquiz-lambda/internal/config"
)

// GenerationLock serializes generation for one lesson across instances.
// It only saves duplicate upstream calls: correctness rests on the upsert.
type GenerationLock interface {
	Acquire(ctx context.Context, lessonID string) (release func(), err error)
}

type noopLock struct{}

func NoopLock() GenerationLock { return noopLock{} }

func (noopLock) Acquire(ctx context.Context, lessonID string) (func(), error) {
	return func() {}, nil
}

const lockKeyPrefix = "aiquiz:generate:"

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLock struct {
	rdb  *redis.Client
	ttl  time.Duration
	poll time.Duration
}

func NewRedisLock(rdb *redis.Client, ttl time.Duration) GenerationLock {
	if ttl <= 0 {
		ttl = 90 * time.Second
	}
	return &redisLock{rdb: rdb, ttl: ttl, poll: 200 * time.Millisecond}
}

// Acquire blocks until the lesson lock is free or ctx ends. A held lock
// expires after the TTL, so a crashed holder never blocks for longer.
func (l *redisLock) Acquire(ctx context.Context, lessonID string) (func(), error) {
	key := lockKeyPrefix + lessonID
	token := uuid.NewString()

	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

func (l *redisLock) release(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, l.rdb, []string{key}, token).Err(); err != nil {
		config.Logger.WithError(err).WithField("lock_key", key).Warn("Failed to release generation lock")
	}
}
