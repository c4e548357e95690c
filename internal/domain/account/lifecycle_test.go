package account

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindow_IsExpired(t *testing.T) {
	w := NewWindow(24 * time.Hour)

	assert.True(t, w.IsExpired(testNow.Add(-24*time.Hour-time.Second), testNow))
	assert.False(t, w.IsExpired(testNow.Add(-24*time.Hour), testNow))
	assert.False(t, w.IsExpired(testNow.Add(-time.Hour), testNow))
}

func TestWindow_ReminderRange(t *testing.T) {
	w := NewWindow(24 * time.Hour)
	lead := 2 * time.Hour

	after, atOrBefore := w.ReminderRange(testNow, lead)
	inRange := func(createdAt time.Time) bool {
		return createdAt.After(after) && !createdAt.After(atOrBefore)
	}

	assert.True(t, inRange(testNow.Add(-22*time.Hour)), "aged exactly TTL-lead")
	assert.False(t, inRange(testNow.Add(-22*time.Hour+time.Second)), "aged TTL-lead-1s")
	assert.True(t, inRange(testNow.Add(-24*time.Hour+time.Second)))
	assert.False(t, inRange(testNow.Add(-24*time.Hour)), "aged exactly TTL")
}

func TestWindow_ReminderRange_ClampsLead(t *testing.T) {
	w := NewWindow(24 * time.Hour)

	after, atOrBefore := w.ReminderRange(testNow, 48*time.Hour)
	assert.Equal(t, testNow.Add(-24*time.Hour), after)
	assert.Equal(t, testNow, atOrBefore)
}

func TestWindow_Describe(t *testing.T) {
	w := NewWindow(24 * time.Hour)

	pending := w.Describe(testNow.Add(-90*time.Minute), testNow)
	assert.Equal(t, StatusPending, pending.Status)
	assert.Equal(t, 1, pending.HoursSinceCreation)
	assert.Equal(t, 23, pending.ExpiresInHours)

	expired := w.Describe(testNow.Add(-25*time.Hour), testNow)
	assert.Equal(t, StatusExpired, expired.Status)
	assert.Equal(t, 25, expired.HoursSinceCreation)
	assert.Equal(t, 0, expired.ExpiresInHours)
}
