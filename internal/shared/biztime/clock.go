package biztime

import (
	"sync"
	"time"
)

// Clock supplies the current time. Lifecycle use cases take a Clock so that
// cutoff arithmetic can be tested against fixed instants.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// SystemClock returns a Clock reading the wall clock in UTC.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return NowUTC()
}

// FixedClock is a manually advanced clock.
type FixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewFixedClock(now time.Time) *FixedClock {
	return &FixedClock{now: now.UTC()}
}

func (c *FixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FixedClock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now.UTC()
	c.mu.Unlock()
}

func (c *FixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
