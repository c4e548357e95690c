package conversation

import (
	"context"
	"time"
)

// Candidate is a conversation eligible for auto-close.
type Candidate struct {
	ConversationID string
	LastMessageAt  time.Time
	Subject        string
	Anonymous      bool
}

type CandidateFilter struct {
	InactiveBefore time.Time
	AnonymousOnly  bool
}

type Repository interface {
	// Create stores a new conversation together with its first message.
	Create(ctx context.Context, c *Conversation, first *Message) error

	GetByConversationID(ctx context.Context, conversationID string) (*Conversation, error)

	ListMessages(ctx context.Context, conversationID string) ([]*Message, error)

	// AppendMessage stores msg and the conversation's new derived fields
	// in one transaction.
	AppendMessage(ctx context.Context, c *Conversation, msg *Message) error

	// FindAutoCloseCandidates lists open conversations whose last message is
	// from staff and older than filter.InactiveBefore, oldest first.
	FindAutoCloseCandidates(ctx context.Context, filter CandidateFilter) ([]Candidate, error)

	// Close persists a solved conversation: its status, the status stamped
	// on every message row and the notice, in one transaction. It reports
	// false when the conversation was no longer open.
	Close(ctx context.Context, c *Conversation, notice *Message) (bool, error)
}
