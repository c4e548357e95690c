package account

import (
	"math"
	"time"
)

// Status is the derived lifecycle state of an unverified account.
type Status string

const (
	StatusPending Status = "pending"
	StatusExpired Status = "expired"
)

// Window holds the verification TTL. All arithmetic is done in UTC.
type Window struct {
	TTL time.Duration
}

func NewWindow(ttl time.Duration) Window {
	return Window{TTL: ttl}
}

// Cutoff is the creation time before which an unverified account is expired.
func (w Window) Cutoff(now time.Time) time.Time {
	return now.UTC().Add(-w.TTL)
}

// IsExpired reports created_at < now-TTL, the same predicate cleanup deletes by.
func (w Window) IsExpired(createdAt, now time.Time) bool {
	return createdAt.Before(w.Cutoff(now))
}

// ReminderRange returns the creation-time bounds of accounts whose age lies
// in [TTL-lead, TTL): created_at > after and created_at <= atOrBefore.
// A lead longer than the TTL is clamped to the TTL.
func (w Window) ReminderRange(now time.Time, lead time.Duration) (after, atOrBefore time.Time) {
	if lead > w.TTL {
		lead = w.TTL
	}
	if lead < 0 {
		lead = 0
	}
	now = now.UTC()
	return now.Add(-w.TTL), now.Add(-(w.TTL - lead))
}

// Lifecycle is the derived view of one unverified account at a point in time.
type Lifecycle struct {
	Status             Status
	HoursSinceCreation int
	ExpiresInHours     int
}

func (w Window) Describe(createdAt, now time.Time) Lifecycle {
	age := now.Sub(createdAt)
	l := Lifecycle{
		Status:             StatusPending,
		HoursSinceCreation: int(math.Floor(age.Hours())),
		ExpiresInHours:     RemainingHours(createdAt.Add(w.TTL), now),
	}
	if w.IsExpired(createdAt, now) {
		l.Status = StatusExpired
	}
	return l
}

// RemainingHours rounds the time left until expiresAt up to whole hours,
// never below zero.
func RemainingHours(expiresAt, now time.Time) int {
	left := expiresAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours()))
}
