package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// guardTTL outlives the business day the key names, so a claim survives
// timezone edges and is then reclaimed by expiry.
const guardTTL = 48 * time.Hour

// RunGuard records that a job already ran on a business date.
// Format: inkwell:guard:{job}:{YYYY-MM-DD}
type RunGuard struct {
	client *redis.Client
}

// NewRunGuard creates a new redis backed run guard.
func NewRunGuard(client *redis.Client) *RunGuard {
	return &RunGuard{client: client}
}

func (g *RunGuard) buildKey(job, day string) string {
	return fmt.Sprintf("%sguard:%s:%s", keyPrefix, job, day)
}

// Claim atomically marks job as run for day. It returns false when another
// run already holds the claim.
func (g *RunGuard) Claim(ctx context.Context, job, day string) (bool, error) {
	acquired, err := g.client.SetNX(ctx, g.buildKey(job, day), time.Now().UTC().Format(time.RFC3339), guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim %s guard: %w", job, err)
	}
	return acquired, nil
}

// Release deletes the guard for job on day.
func (g *RunGuard) Release(ctx context.Context, job, day string) error {
	if err := g.client.Del(ctx, g.buildKey(job, day)).Err(); err != nil {
		return fmt.Errorf("failed to release %s guard: %w", job, err)
	}
	return nil
}
