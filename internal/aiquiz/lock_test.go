package aiquiz

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisLock(t *testing.T) {
	ctx := context.Background()

	t.Run("SerializesSameLesson", func(t *testing.T) {
		mr, rdb := newTestRedis(t)
		lock := NewRedisLock(rdb, time.Minute)

		release, err := lock.Acquire(ctx, "lesson-1")
		require.NoError(t, err)
		assert.True(t, mr.Exists(lockKeyPrefix+"lesson-1"))

		waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		_, err = lock.Acquire(waitCtx, "lesson-1")
		assert.ErrorIs(t, err, context.DeadlineExceeded)

		release()
		assert.False(t, mr.Exists(lockKeyPrefix+"lesson-1"))

		release2, err := lock.Acquire(ctx, "lesson-1")
		require.NoError(t, err)
		release2()
	})

	t.Run("OtherLessonsAreIndependent", func(t *testing.T) {
		_, rdb := newTestRedis(t)
		lock := NewRedisLock(rdb, time.Minute)

		r1, err := lock.Acquire(ctx, "lesson-a")
		require.NoError(t, err)
		defer r1()

		r2, err := lock.Acquire(ctx, "lesson-b")
		require.NoError(t, err)
		r2()
	})

	t.Run("ReleaseKeepsForeignToken", func(t *testing.T) {
		mr, rdb := newTestRedis(t)
		lock := NewRedisLock(rdb, time.Minute)

		release, err := lock.Acquire(ctx, "lesson-x")
		require.NoError(t, err)

		mr.FastForward(2 * time.Minute)
		require.NoError(t, mr.Set(lockKeyPrefix+"lesson-x", "someone-else"))

		release()
		got, err := mr.Get(lockKeyPrefix + "lesson-x")
		require.NoError(t, err)
		assert.Equal(t, "someone-else", got)
	})

	t.Run("UnreachableRedis", func(t *testing.T) {
		mr, rdb := newTestRedis(t)
		mr.Close()

		_, err := NewRedisLock(rdb, time.Minute).Acquire(ctx, "lesson-down")
		assert.Error(t, err)
	})
}

func TestServiceDegradesWithoutLock(t *testing.T) {
	mr, rdb := newTestRedis(t)
	mr.Close()

	client := &fakeClient{replies: []scriptedReply{{text: validQuizJSON("Degraded")}}}
	cfg := DefaultConfig()
	cfg.CallTimeout = 0
	svc := NewService(NewRepository(newTestDB(t)), client, NewRedisLock(rdb, time.Minute), cfg)

	result, err := svc.GenerateQuiz(context.Background(), "lesson-degraded", "text")
	require.NoError(t, err)
	assert.True(t, result.Created)
}
