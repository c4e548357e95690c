package conversation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func openConversation(t *testing.T, anonymous bool) *Conversation {
	t.Helper()
	c, first, err := NewConversation("c-1", "Ana", "Ana@Example.com", "Flyer order", "Hi, where is my order?", anonymous, "[ANON]", testNow)
	require.NoError(t, err)
	require.NotNil(t, first)
	return c
}

func TestNewConversation(t *testing.T) {
	c := openConversation(t, false)

	assert.Equal(t, StatusOpen, c.Status())
	assert.False(t, c.IsAnonymous())
	assert.False(t, c.LastMessageIsAdmin())
	assert.Equal(t, testNow, c.LastMessageAt())
	assert.Equal(t, "ana@example.com", c.CustomerEmail())
}

func TestNewConversation_Anonymous(t *testing.T) {
	c := openConversation(t, true)
	assert.True(t, c.IsAnonymous())
	assert.Equal(t, "[ANON] Flyer order", c.Subject())

	marked, _, err := NewConversation("c-2", "", "", "[ANON] Stickers", "hello", false, "[ANON]", testNow)
	require.NoError(t, err)
	assert.True(t, marked.IsAnonymous())
	assert.Equal(t, "Guest", marked.CustomerName())
}

func TestConversation_AppendMessage(t *testing.T) {
	c := openConversation(t, false)

	msg, err := c.AppendMessage("Staff", true, "It ships tomorrow.", testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, msg.ConversationStatus)
	assert.True(t, c.LastMessageIsAdmin())
	assert.Equal(t, testNow.Add(time.Hour), c.LastMessageAt())

	_, err = c.AppendMessage("Ana", false, "   ", testNow.Add(2*time.Hour))
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestConversation_AppendMessage_LengthCountsCharacters(t *testing.T) {
	c := openConversation(t, false)

	_, err := c.AppendMessage("Ana", false, strings.Repeat("é", maxBodyLength), testNow.Add(time.Hour))
	require.NoError(t, err)

	_, err = c.AppendMessage("Ana", false, strings.Repeat("a", maxBodyLength+1), testNow.Add(2*time.Hour))
	assert.Error(t, err)
}

func TestConversation_AppendMessage_OlderTimestampKeepsLastSpeaker(t *testing.T) {
	c := openConversation(t, false)
	_, err := c.AppendMessage("Staff", true, "reply", testNow.Add(time.Hour))
	require.NoError(t, err)

	_, err = c.AppendMessage("Ana", false, "late sync", testNow.Add(30*time.Minute))
	require.NoError(t, err)

	assert.True(t, c.LastMessageIsAdmin())
	assert.Equal(t, testNow.Add(time.Hour), c.LastMessageAt())
}

func TestConversation_IsAutoCloseEligible(t *testing.T) {
	c := openConversation(t, false)
	assert.False(t, c.IsAutoCloseEligible(testNow.Add(8*24*time.Hour)), "customer spoke last")

	_, err := c.AppendMessage("Staff", true, "reply", testNow)
	require.NoError(t, err)

	assert.True(t, c.IsAutoCloseEligible(testNow.Add(time.Second)))
	assert.False(t, c.IsAutoCloseEligible(testNow))
}

func TestConversation_Close(t *testing.T) {
	c := openConversation(t, false)
	closedAt := testNow.Add(8 * 24 * time.Hour)

	notice, closed := c.Close(ReasonAutoClose, AutoCloseNotice, closedAt)
	require.True(t, closed)
	assert.Equal(t, StatusSolved, c.Status())
	assert.Equal(t, "System", notice.SenderName)
	assert.True(t, notice.IsAdmin)
	assert.Equal(t, StatusSolved, notice.ConversationStatus)
	assert.Equal(t, c.Subject(), notice.Subject)
	assert.Equal(t, closedAt, c.LastMessageAt())

	evts := c.GetEvents()
	require.Len(t, evts, 1)
	evt, ok := evts[0].(StatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "open", evt.OldStatus)
	assert.Equal(t, "solved", evt.NewStatus)
	assert.Empty(t, c.GetEvents())

	again, closed := c.Close(ReasonAutoClose, AutoCloseNotice, closedAt)
	assert.False(t, closed)
	assert.Nil(t, again)

	_, err := c.AppendMessage("Ana", false, "hello?", closedAt)
	assert.ErrorIs(t, err, ErrConversationSolved)
}
