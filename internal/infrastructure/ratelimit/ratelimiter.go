// Package ratelimit throttles the public endpoints that anonymous visitors
// can reach: registration, login and opening support conversations.
package ratelimit

import "context"

// Limits caps requests per window. A zero field disables that window.
type Limits struct {
	PerMinute int
	PerHour   int
}

// IsZero reports whether no window is enforced.
func (l Limits) IsZero() bool {
	return l.PerMinute <= 0 && l.PerHour <= 0
}

type Limiter interface {
	Allow(ctx context.Context, key string, limits Limits) (bool, error)
	Reset(ctx context.Context, key string) error
}
