package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return mr, client
}

func TestRedisLimiter_PerMinute(t *testing.T) {
	_, client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()
	limits := Limits{PerMinute: 3}

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "login:10.0.0.1", limits)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "login:10.0.0.1", limits)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "login:10.0.0.2", limits)
	require.NoError(t, err)
	assert.True(t, allowed, "other clients keep their own window")
}

func TestRedisLimiter_WindowSlides(t *testing.T) {
	_, client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()

	start := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return start }
	limits := Limits{PerMinute: 1, PerHour: 2}

	allowed, err := limiter.Allow(ctx, "support:10.0.0.1", limits)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "support:10.0.0.1", limits)
	require.NoError(t, err)
	assert.False(t, allowed)

	limiter.now = func() time.Time { return start.Add(61 * time.Second) }
	allowed, err = limiter.Allow(ctx, "support:10.0.0.1", limits)
	require.NoError(t, err)
	assert.True(t, allowed, "the minute window has moved on")

	limiter.now = func() time.Time { return start.Add(122 * time.Second) }
	allowed, err = limiter.Allow(ctx, "support:10.0.0.1", limits)
	require.NoError(t, err)
	assert.False(t, allowed, "hourly cap reached")
}

func TestRedisLimiter_Reset(t *testing.T) {
	mr, client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	ctx := context.Background()
	limits := Limits{PerMinute: 1}

	_, err := limiter.Allow(ctx, "register:10.0.0.1", limits)
	require.NoError(t, err)
	assert.True(t, mr.Exists("inkwell:ratelimit:register:10.0.0.1:1m0s"))

	require.NoError(t, limiter.Reset(ctx, "register:10.0.0.1"))
	allowed, err := limiter.Allow(ctx, "register:10.0.0.1", limits)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRedisLimiter_RedisDown(t *testing.T) {
	mr, client := setupTestRedis(t)
	limiter := NewRedisLimiter(client)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "login:10.0.0.1", Limits{PerMinute: 1})
	assert.Error(t, err)
}
