// Package biztime provides clock and business timezone helpers.
// All storage and comparisons use UTC. The business timezone is only used
// for calendar-day boundaries, such as the once-per-day audit prune guard.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the shop's local timezone.
	DefaultTimezone = "Asia/Manila"

	dateLayout = "2006-01-02"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// StartOfDayUTC returns midnight of t's business day, converted to UTC.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// BusinessDate formats t as the YYYY-MM-DD calendar date in the business timezone.
func BusinessDate(t time.Time) string {
	return t.In(Location()).Format(dateLayout)
}

// DaysAgo returns now minus the given number of whole days.
func DaysAgo(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}

// FormatRFC3339 formats a time for API payloads and audit metadata.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
