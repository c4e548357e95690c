package usecases

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/inkwell-print/inkwell/internal/domain/conversation"
	"github.com/inkwell-print/inkwell/internal/domain/notification"
	"github.com/inkwell-print/inkwell/internal/domain/shared/events"
	"github.com/inkwell-print/inkwell/internal/shared/authorization"
	"github.com/inkwell-print/inkwell/internal/shared/errors"
)

var testNow = time.Date(2026, 5, 20, 2, 0, 0, 0, time.UTC)

type storedConversation struct {
	id                 uint
	conversationID     string
	customerName       string
	customerEmail      string
	subject            string
	anonymous          bool
	status             conversation.Status
	lastMessageAt      time.Time
	lastMessageIsAdmin bool
	createdAt          time.Time
}

// memoryConversationRepository keeps rows apart from the aggregates handed
// out, the way a database would.
type memoryConversationRepository struct {
	mu       sync.Mutex
	rows     map[string]*storedConversation
	messages map[string][]conversation.Message
	nextID   uint
	CloseErr map[string]error
}

func newMemoryConversationRepository() *memoryConversationRepository {
	return &memoryConversationRepository{
		rows:     map[string]*storedConversation{},
		messages: map[string][]conversation.Message{},
		CloseErr: map[string]error{},
	}
}

func (m *memoryConversationRepository) save(c *conversation.Conversation, id uint) {
	m.rows[c.ConversationID()] = &storedConversation{
		id:                 id,
		conversationID:     c.ConversationID(),
		customerName:       c.CustomerName(),
		customerEmail:      c.CustomerEmail(),
		subject:            c.Subject(),
		anonymous:          c.IsAnonymous(),
		status:             c.Status(),
		lastMessageAt:      c.LastMessageAt(),
		lastMessageIsAdmin: c.LastMessageIsAdmin(),
		createdAt:          c.CreatedAt(),
	}
}

// seed opens a conversation at openedAt and, when staffReplyAt is set,
// appends a staff reply at that time.
func (m *memoryConversationRepository) seed(subject, email string, anonymous bool, openedAt time.Time, staffReplyAt *time.Time) string {
	m.nextID++
	c, first, err := conversation.NewConversation(fmt.Sprintf("conv-%d", m.nextID), "Ana", email, subject, "My order is late", anonymous, "[ANON]", openedAt)
	if err != nil {
		panic(err)
	}
	msgs := []conversation.Message{*first}
	if staffReplyAt != nil {
		reply, err := c.AppendMessage("maria", true, "It shipped today", *staffReplyAt)
		if err != nil {
			panic(err)
		}
		msgs = append(msgs, *reply)
	}
	m.save(c, m.nextID)
	m.messages[c.ConversationID()] = msgs
	return c.ConversationID()
}

func (m *memoryConversationRepository) Create(ctx context.Context, c *conversation.Conversation, first *conversation.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	if err := c.SetID(m.nextID); err != nil {
		return err
	}
	m.save(c, m.nextID)
	m.messages[c.ConversationID()] = []conversation.Message{*first}
	return nil
}

func (m *memoryConversationRepository) GetByConversationID(ctx context.Context, conversationID string) (*conversation.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[conversationID]
	if !ok {
		return nil, errors.NewNotFoundError("conversation not found", conversationID)
	}
	return conversation.ReconstructConversation(row.id, row.conversationID, row.customerName, row.customerEmail,
		row.subject, row.anonymous, row.status, row.lastMessageAt, row.lastMessageIsAdmin, row.createdAt, row.createdAt)
}

func (m *memoryConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]*conversation.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*conversation.Message{}
	for i := range m.messages[conversationID] {
		msg := m.messages[conversationID][i]
		out = append(out, &msg)
	}
	return out, nil
}

func (m *memoryConversationRepository) AppendMessage(ctx context.Context, c *conversation.Conversation, msg *conversation.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row := m.rows[c.ConversationID()]
	if row == nil || row.status != conversation.StatusOpen {
		return errors.NewInvalidStateError("conversation is no longer open", c.ConversationID())
	}
	m.save(c, row.id)
	m.messages[c.ConversationID()] = append(m.messages[c.ConversationID()], *msg)
	return nil
}

func (m *memoryConversationRepository) FindAutoCloseCandidates(ctx context.Context, filter conversation.CandidateFilter) ([]conversation.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []conversation.Candidate{}
	for _, row := range m.rows {
		if row.status != conversation.StatusOpen || !row.lastMessageIsAdmin || !row.lastMessageAt.Before(filter.InactiveBefore) {
			continue
		}
		if filter.AnonymousOnly && !row.anonymous {
			continue
		}
		out = append(out, conversation.Candidate{
			ConversationID: row.conversationID,
			LastMessageAt:  row.lastMessageAt,
			Subject:        row.subject,
			Anonymous:      row.anonymous,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastMessageAt.Before(out[j].LastMessageAt) })
	return out, nil
}

func (m *memoryConversationRepository) Close(ctx context.Context, c *conversation.Conversation, notice *conversation.Message) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.CloseErr[c.ConversationID()]; err != nil {
		return false, err
	}
	row := m.rows[c.ConversationID()]
	if row == nil || row.status != conversation.StatusOpen {
		return false, nil
	}
	m.save(c, row.id)
	msgs := m.messages[c.ConversationID()]
	for i := range msgs {
		msgs[i].ConversationStatus = c.Status()
	}
	m.messages[c.ConversationID()] = append(msgs, *notice)
	return true, nil
}

func (m *memoryConversationRepository) status(conversationID string) conversation.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[conversationID].status
}

type mockPublisher struct {
	PublishFunc func(ctx context.Context, event events.DomainEvent) error
	published   []events.DomainEvent
}

func (p *mockPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.published = append(p.published, event)
	if p.PublishFunc != nil {
		return p.PublishFunc(ctx, event)
	}
	return nil
}

type mockSender struct {
	SendFunc func(ctx context.Context, to, subject, body string) error
	sentTo   []string
}

func (s *mockSender) Send(ctx context.Context, to, subject, body string) error {
	if s.SendFunc != nil {
		if err := s.SendFunc(ctx, to, subject, body); err != nil {
			return err
		}
	}
	s.sentTo = append(s.sentTo, to)
	return nil
}

type stubTemplates struct{}

func (stubTemplates) VerificationReminder(username, verifyURL string, hoursLeft int) (notification.Mail, error) {
	return notification.Mail{}, nil
}

func (stubTemplates) Verification(username, verifyURL string, ttlHours int) (notification.Mail, error) {
	return notification.Mail{}, nil
}

func (stubTemplates) TicketAutoClosed(customerName, subject string) (notification.Mail, error) {
	return notification.Mail{Subject: "Your ticket was closed", HTMLBody: subject}, nil
}

type mockRecorder struct {
	actions []string
}

func (r *mockRecorder) Record(ctx context.Context, actor authorization.Actor, action, description string, metadata map[string]any) error {
	r.actions = append(r.actions, action)
	return nil
}
