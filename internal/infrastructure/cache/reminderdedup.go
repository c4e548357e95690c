package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReminderDeduplicator makes sure a key is acted on once per TTL.
// Keys are caller supplied, e.g. verification_reminder:{account_id}.
type ReminderDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReminderDeduplicator keeps reservations for ttl, normally the
// verification window, after which the account is gone anyway.
func NewReminderDeduplicator(client *redis.Client, ttl time.Duration) *ReminderDeduplicator {
	return &ReminderDeduplicator{client: client, ttl: ttl}
}

// Reserve uses SetNX so concurrent workers cannot both send.
func (d *ReminderDeduplicator) Reserve(ctx context.Context, key string) (bool, error) {
	acquired, err := d.client.SetNX(ctx, keyPrefix+key, "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve %s: %w", key, err)
	}
	return acquired, nil
}

// Release deletes the key.
func (d *ReminderDeduplicator) Release(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release %s: %w", key, err)
	}
	return nil
}
