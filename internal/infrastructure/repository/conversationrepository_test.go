package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-print/inkwell/internal/domain/conversation"
	"github.com/inkwell-print/inkwell/internal/infrastructure/persistence/models"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

func createConversation(t *testing.T, repo *ConversationRepository, id string, anonymous bool, openedAt time.Time) *conversation.Conversation {
	t.Helper()
	c, first, err := conversation.NewConversation(id, "Ana", "ana@example.com", "Banner reprint", "Colours are off", anonymous, "[ANON]", openedAt)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), c, first))
	return c
}

func adminReply(t *testing.T, repo *ConversationRepository, c *conversation.Conversation, at time.Time) {
	t.Helper()
	msg, err := c.AppendMessage("Staff", true, "We will reprint it.", at)
	require.NoError(t, err)
	require.NoError(t, repo.AppendMessage(context.Background(), c, msg))
}

func TestConversationRepository_CreateAndAppend(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewConversationRepository(gdb)
	ctx := context.Background()

	c := createConversation(t, repo, "conv-1", false, testNow.Add(-time.Hour))
	adminReply(t, repo, c, testNow)

	loaded, err := repo.GetByConversationID(ctx, "conv-1")
	require.NoError(t, err)
	assert.True(t, loaded.LastMessageIsAdmin())
	assert.True(t, testNow.Equal(loaded.LastMessageAt()))
	assert.Equal(t, conversation.StatusOpen, loaded.Status())

	msgs, err := repo.ListMessages(ctx, "conv-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.False(t, msgs[0].IsAdmin)
	assert.True(t, msgs[1].IsAdmin)

	_, err = repo.GetByConversationID(ctx, "missing")
	assert.True(t, errors.IsNotFoundError(err))
}

func TestConversationRepository_FindAutoCloseCandidates(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewConversationRepository(gdb)
	ctx := context.Background()
	inactiveBefore := testNow.Add(-7 * 24 * time.Hour)

	stale := createConversation(t, repo, "stale", false, testNow.Add(-9*24*time.Hour))
	adminReply(t, repo, stale, testNow.Add(-8*24*time.Hour))

	recent := createConversation(t, repo, "recent", false, testNow.Add(-9*24*time.Hour))
	adminReply(t, repo, recent, testNow.Add(-6*24*time.Hour))

	createConversation(t, repo, "customer-last", false, testNow.Add(-10*24*time.Hour))

	anon := createConversation(t, repo, "anon", true, testNow.Add(-9*24*time.Hour))
	adminReply(t, repo, anon, testNow.Add(-8*24*time.Hour))

	all, err := repo.FindAutoCloseCandidates(ctx, conversation.CandidateFilter{InactiveBefore: inactiveBefore})
	require.NoError(t, err)
	ids := []string{}
	for _, c := range all {
		ids = append(ids, c.ConversationID)
	}
	assert.ElementsMatch(t, []string{"stale", "anon"}, ids)

	anonOnly, err := repo.FindAutoCloseCandidates(ctx, conversation.CandidateFilter{InactiveBefore: inactiveBefore, AnonymousOnly: true})
	require.NoError(t, err)
	require.Len(t, anonOnly, 1)
	assert.Equal(t, "anon", anonOnly[0].ConversationID)
	assert.True(t, anonOnly[0].Anonymous)
}

func TestConversationRepository_Close(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewConversationRepository(gdb)
	ctx := context.Background()

	c := createConversation(t, repo, "conv-close", false, testNow.Add(-9*24*time.Hour))
	adminReply(t, repo, c, testNow.Add(-8*24*time.Hour))

	notice, ok := c.Close(conversation.ReasonAutoClose, conversation.AutoCloseNotice, testNow)
	require.True(t, ok)
	closed, err := repo.Close(ctx, c, notice)
	require.NoError(t, err)
	assert.True(t, closed)

	var statuses []string
	require.NoError(t, gdb.Model(&models.SupportMessageModel{}).
		Where("conversation_id = ?", "conv-close").
		Pluck("conversation_status", &statuses).Error)
	assert.Equal(t, []string{"solved", "solved", "solved"}, statuses)

	stale, err := repo.GetByConversationID(ctx, "conv-close")
	require.NoError(t, err)
	assert.Equal(t, conversation.StatusSolved, stale.Status())

	// A second writer holding an open copy must not add another notice.
	copyOpen, err := conversation.ReconstructConversation(c.ID(), "conv-close", "Ana", "ana@example.com", "Banner reprint", false,
		conversation.StatusOpen, testNow.Add(-8*24*time.Hour), true, testNow, testNow)
	require.NoError(t, err)
	dup, _ := copyOpen.Close(conversation.ReasonAutoClose, conversation.AutoCloseNotice, testNow)
	closed, err = repo.Close(ctx, copyOpen, dup)
	require.NoError(t, err)
	assert.False(t, closed)

	var count int64
	require.NoError(t, gdb.Model(&models.SupportMessageModel{}).Where("conversation_id = ?", "conv-close").Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestConversationRepository_AppendToSolved(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewConversationRepository(gdb)
	ctx := context.Background()

	c := createConversation(t, repo, "conv-race", false, testNow.Add(-time.Hour))
	require.NoError(t, gdb.Model(&models.SupportConversationModel{}).
		Where("conversation_id = ?", "conv-race").
		Update("status", "solved").Error)

	msg, err := c.AppendMessage("Ana", false, "still there?", testNow)
	require.NoError(t, err)
	err = repo.AppendMessage(ctx, c, msg)
	assert.True(t, errors.IsInvalidStateError(err))
}
