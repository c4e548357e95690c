package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "inkwell:ratelimit:"

// RedisLimiter keeps a sliding window per key in a sorted set scored by
// request time, so every instance sharing the redis sees the same counts.
type RedisLimiter struct {
	client *redis.Client
	now    func() time.Time
	seq    atomic.Uint64
}

// NewRedisLimiter creates a new redis limiter.
func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client, now: time.Now}
}

// Allow records one request for key and reports whether every enforced
// window is still under its limit.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limits Limits) (bool, error) {
	now := l.now()
	windows := []struct {
		duration time.Duration
		limit    int
	}{
		{time.Minute, limits.PerMinute},
		{time.Hour, limits.PerHour},
	}

	for _, w := range windows {
		if w.limit <= 0 {
			continue
		}
		allowed, err := l.checkWindow(ctx, key, w.duration, w.limit, now)
		if err != nil {
			return false, err
		}
		if !allowed {
			return false, nil
		}
	}
	return true, nil
}

func (l *RedisLimiter) checkWindow(ctx context.Context, key string, window time.Duration, limit int, now time.Time) (bool, error) {
	redisKey := windowKey(key, window)
	windowStart := now.Add(-window).UnixNano()
	member := fmt.Sprintf("%d-%d", now.UnixNano(), l.seq.Add(1))

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart, 10))
	count := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, redisKey, window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to check rate limit window: %w", err)
	}
	return count.Val() < int64(limit), nil
}

// Reset clears both windows for key.
func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	keys := []string{windowKey(key, time.Minute), windowKey(key, time.Hour)}
	if err := l.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit for %s: %w", key, err)
	}
	return nil
}

func windowKey(key string, window time.Duration) string {
	return keyPrefix + key + ":" + window.String()
}
