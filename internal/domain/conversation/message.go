package conversation

import (
	"time"
)

// Message is one entry of a conversation. Each row carries the conversation
// status at the time of the last status change and the customer fields of the
// conversation it belongs to.
type Message struct {
	ID                 uint
	ConversationID     string
	SenderName         string
	IsAdmin            bool
	Body               string
	ConversationStatus Status
	CustomerName       string
	CustomerEmail      string
	Subject            string
	CreatedAt          time.Time
}
