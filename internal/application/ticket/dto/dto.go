package dto

import (
	"math"
	"time"

	"github.com/inkwell-print/inkwell/internal/domain/conversation"
	"github.com/inkwell-print/inkwell/internal/shared/biztime"
)

type ConversationDTO struct {
	ConversationID     string `json:"conversation_id"`
	CustomerName       string `json:"customer_name"`
	CustomerEmail      string `json:"customer_email,omitempty"`
	Subject            string `json:"subject"`
	Anonymous          bool   `json:"anonymous"`
	Status             string `json:"status"`
	LastMessageAt      string `json:"last_message_at"`
	LastMessageIsAdmin bool   `json:"last_message_is_admin"`
	CreatedAt          string `json:"created_at"`
}

type MessageDTO struct {
	ID                 uint   `json:"id"`
	SenderName         string `json:"sender_name"`
	IsAdmin            bool   `json:"is_admin"`
	Body               string `json:"message"`
	ConversationStatus string `json:"conversation_status"`
	CreatedAt          string `json:"created_at"`
}

// CandidateDTO describes a conversation waiting to be auto-closed.
type CandidateDTO struct {
	ConversationID  string `json:"conversation_id"`
	Subject         string `json:"subject"`
	Anonymous       bool   `json:"anonymous"`
	LastMessageTime string `json:"last_message_time"`
	InactiveDays    int    `json:"inactive_days"`
}

// ToConversationDTO converts a conversation for API responses.
func ToConversationDTO(c *conversation.Conversation) ConversationDTO {
	return ConversationDTO{
		ConversationID:     c.ConversationID(),
		CustomerName:       c.CustomerName(),
		CustomerEmail:      c.CustomerEmail(),
		Subject:            c.Subject(),
		Anonymous:          c.IsAnonymous(),
		Status:             c.Status().String(),
		LastMessageAt:      biztime.FormatRFC3339(c.LastMessageAt()),
		LastMessageIsAdmin: c.LastMessageIsAdmin(),
		CreatedAt:          biztime.FormatRFC3339(c.CreatedAt()),
	}
}

// ToMessageDTO converts a message for API responses.
func ToMessageDTO(m *conversation.Message) MessageDTO {
	return MessageDTO{
		ID:                 m.ID,
		SenderName:         m.SenderName,
		IsAdmin:            m.IsAdmin,
		Body:               m.Body,
		ConversationStatus: m.ConversationStatus.String(),
		CreatedAt:          biztime.FormatRFC3339(m.CreatedAt),
	}
}

// ToCandidateDTO converts an auto-close candidate, computing its idle days
// relative to now.
func ToCandidateDTO(c conversation.Candidate, now time.Time) CandidateDTO {
	return CandidateDTO{
		ConversationID:  c.ConversationID,
		Subject:         c.Subject,
		Anonymous:       c.Anonymous,
		LastMessageTime: biztime.FormatRFC3339(c.LastMessageAt),
		InactiveDays:    int(math.Floor(now.Sub(c.LastMessageAt).Hours() / 24)),
	}
}
