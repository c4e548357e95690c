package conversation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/inkwell-print/inkwell/internal/shared/constants"
)

const (
	// Lengths count characters, as the request validation does.
	maxSubjectLength = 200
	maxBodyLength    = 5000

	// AutoCloseNotice is the body of the message appended when a conversation
	// is closed for inactivity.
	AutoCloseNotice = "This conversation was closed automatically because there was no reply for 7 days after our last response. Send a new message to open a fresh ticket."

	ReasonAutoClose = "inactivity"
)

// Conversation is a support ticket. Status and last-message fields are kept
// in step with the newest message on every append and close.
type Conversation struct {
	id                 uint
	conversationID     string
	customerName       string
	customerEmail      string
	subject            string
	anonymous          bool
	status             Status
	lastMessageAt      time.Time
	lastMessageIsAdmin bool
	createdAt          time.Time
	updatedAt          time.Time
	events             []interface{}
}

// NewConversation opens a conversation with the customer's first message.
// A conversation is anonymous when its subject carries marker; requesting
// anonymous adds the marker if it is missing.
func NewConversation(conversationID, customerName, customerEmail, subject, body string, anonymous bool, marker string, now time.Time) (*Conversation, *Message, error) {
	subject = strings.TrimSpace(subject)
	body = strings.TrimSpace(body)
	if conversationID == "" {
		return nil, nil, fmt.Errorf("conversation ID is required")
	}
	if subject == "" {
		return nil, nil, fmt.Errorf("subject is required")
	}
	if anonymous && marker != "" && !strings.Contains(subject, marker) {
		subject = marker + " " + subject
	}
	if utf8.RuneCountInString(subject) > maxSubjectLength {
		return nil, nil, fmt.Errorf("subject exceeds maximum length of %d characters", maxSubjectLength)
	}
	if customerName == "" {
		customerName = "Guest"
	}

	now = now.UTC()
	c := &Conversation{
		conversationID: conversationID,
		customerName:   customerName,
		customerEmail:  strings.ToLower(strings.TrimSpace(customerEmail)),
		subject:        subject,
		anonymous:      marker != "" && strings.Contains(subject, marker),
		status:         StatusOpen,
		lastMessageAt:  now,
		createdAt:      now,
		updatedAt:      now,
		events:         []interface{}{},
	}

	first, err := c.AppendMessage(customerName, false, body, now)
	if err != nil {
		return nil, nil, err
	}
	return c, first, nil
}

func ReconstructConversation(
	id uint,
	conversationID, customerName, customerEmail, subject string,
	anonymous bool,
	status Status,
	lastMessageAt time.Time,
	lastMessageIsAdmin bool,
	createdAt, updatedAt time.Time,
) (*Conversation, error) {
	if id == 0 {
		return nil, fmt.Errorf("conversation ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid conversation status %q", status)
	}

	return &Conversation{
		id:                 id,
		conversationID:     conversationID,
		customerName:       customerName,
		customerEmail:      customerEmail,
		subject:            subject,
		anonymous:          anonymous,
		status:             status,
		lastMessageAt:      lastMessageAt,
		lastMessageIsAdmin: lastMessageIsAdmin,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		events:             []interface{}{},
	}, nil
}

func (c *Conversation) ID() uint                 { return c.id }
func (c *Conversation) ConversationID() string   { return c.conversationID }
func (c *Conversation) CustomerName() string     { return c.customerName }
func (c *Conversation) CustomerEmail() string    { return c.customerEmail }
func (c *Conversation) Subject() string          { return c.subject }
func (c *Conversation) IsAnonymous() bool        { return c.anonymous }
func (c *Conversation) Status() Status           { return c.status }
func (c *Conversation) LastMessageAt() time.Time { return c.lastMessageAt }
func (c *Conversation) LastMessageIsAdmin() bool { return c.lastMessageIsAdmin }
func (c *Conversation) CreatedAt() time.Time     { return c.createdAt }
func (c *Conversation) UpdatedAt() time.Time     { return c.updatedAt }

func (c *Conversation) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("conversation ID already set")
	}
	c.id = id
	return nil
}

// AppendMessage adds a message to an open conversation. The newest message
// by time decides the last speaker.
func (c *Conversation) AppendMessage(senderName string, isAdmin bool, body string, now time.Time) (*Message, error) {
	if c.status.IsTerminal() {
		return nil, ErrConversationSolved
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(body) > maxBodyLength {
		return nil, fmt.Errorf("message exceeds maximum length of %d characters", maxBodyLength)
	}

	now = now.UTC()
	msg := c.newMessage(senderName, isAdmin, body, now)
	c.touch(isAdmin, now)
	return msg, nil
}

// IsAutoCloseEligible reports an open conversation whose last message came
// from staff before inactiveBefore.
func (c *Conversation) IsAutoCloseEligible(inactiveBefore time.Time) bool {
	return c.status == StatusOpen && c.lastMessageIsAdmin && c.lastMessageAt.Before(inactiveBefore)
}

// Close marks the conversation solved and returns the System notice to store
// with it. Closing a solved conversation returns (nil, false).
func (c *Conversation) Close(reason, notice string, now time.Time) (*Message, bool) {
	if c.status.IsTerminal() {
		return nil, false
	}

	now = now.UTC()
	old := c.status
	c.status = StatusSolved
	msg := c.newMessage(constants.SystemSenderName, true, notice, now)
	c.touch(true, now)

	c.recordEvent(NewStatusChangedEvent(c.conversationID, old, c.status, reason, c.customerEmail, c.anonymous, now))
	return msg, true
}

func (c *Conversation) newMessage(senderName string, isAdmin bool, body string, now time.Time) *Message {
	return &Message{
		ConversationID:     c.conversationID,
		SenderName:         senderName,
		IsAdmin:            isAdmin,
		Body:               body,
		ConversationStatus: c.status,
		CustomerName:       c.customerName,
		CustomerEmail:      c.customerEmail,
		Subject:            c.subject,
		CreatedAt:          now,
	}
}

func (c *Conversation) touch(isAdmin bool, at time.Time) {
	if !at.Before(c.lastMessageAt) {
		c.lastMessageAt = at
		c.lastMessageIsAdmin = isAdmin
	}
	c.updatedAt = at
}

func (c *Conversation) recordEvent(event interface{}) {
	c.events = append(c.events, event)
}

// GetEvents returns and clears pending domain events.
func (c *Conversation) GetEvents() []interface{} {
	evts := c.events
	c.events = []interface{}{}
	return evts
}
