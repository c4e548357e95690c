package conversation

import (
	"time"

	"github.com/inkwell-print/inkwell/internal/domain/shared/events"
)

const EventStatusChanged = "conversation.status_changed"

// StatusChangedEvent is published when a conversation moves between states.
type StatusChangedEvent struct {
	events.BaseEvent
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	Reason        string `json:"reason"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Anonymous     bool   `json:"anonymous"`
}

func NewStatusChangedEvent(conversationID string, oldStatus, newStatus Status, reason, customerEmail string, anonymous bool, occurredAt time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		BaseEvent:     events.NewBaseEvent(conversationID, EventStatusChanged, occurredAt),
		OldStatus:     oldStatus.String(),
		NewStatus:     newStatus.String(),
		Reason:        reason,
		CustomerEmail: customerEmail,
		Anonymous:     anonymous,
	}
}
