package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-print/inkwell/internal/shared/config"
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

func TestRunGuard_ClaimOncePerDay(t *testing.T) {
	mr, client := setupTestRedis(t)
	guard := NewRunGuard(client)
	ctx := context.Background()

	ok, err := guard.Claim(ctx, "audit_prune", "2026-06-15")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, mr.Exists("inkwell:guard:audit_prune:2026-06-15"))
	assert.Equal(t, 48*time.Hour, mr.TTL("inkwell:guard:audit_prune:2026-06-15"))

	ok, err = guard.Claim(ctx, "audit_prune", "2026-06-15")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = guard.Claim(ctx, "audit_prune", "2026-06-16")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, guard.Release(ctx, "audit_prune", "2026-06-15"))
	ok, err = guard.Claim(ctx, "audit_prune", "2026-06-15")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunGuard_UnavailableRedis(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.Close()

	_, err := NewRunGuard(client).Claim(context.Background(), "audit_prune", "2026-06-15")
	assert.Error(t, err)
}

func TestReminderDeduplicator(t *testing.T) {
	mr, client := setupTestRedis(t)
	dedup := NewReminderDeduplicator(client, 24*time.Hour)
	ctx := context.Background()

	ok, err := dedup.Reserve(ctx, "verification_reminder:42")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = dedup.Reserve(ctx, "verification_reminder:42")
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(25 * time.Hour)
	ok, err = dedup.Reserve(ctx, "verification_reminder:42")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, dedup.Release(ctx, "verification_reminder:42"))
	assert.False(t, mr.Exists("inkwell:verification_reminder:42"))
}

func TestNewRedisClient(t *testing.T) {
	mr, _ := setupTestRedis(t)

	client, err := NewRedisClient(context.Background(), config.RedisConfig{Host: mr.Host(), Port: portOf(t, mr)})
	require.NoError(t, err)
	client.Close()

	_, err = NewRedisClient(context.Background(), config.RedisConfig{Host: "127.0.0.1", Port: 1})
	assert.Error(t, err)
}

func portOf(t *testing.T, mr *miniredis.Miniredis) int {
	t.Helper()
	var port int
	_, err := fmt.Sscanf(mr.Port(), "%d", &port)
	require.NoError(t, err)
	return port
}
