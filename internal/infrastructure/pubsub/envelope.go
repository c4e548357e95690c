// Package pubsub delivers domain events to other processes over Redis
// Pub/Sub or an AMQP topic exchange.
package pubsub

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/inkwell-print/inkwell/internal/domain/shared/events"
)

// Envelope is the wire format shared by every transport.
type Envelope struct {
	EventType   string          `json:"event_type"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Version     int             `json:"version"`
	Payload     json.RawMessage `json:"payload"`
}

func encode(event events.DomainEvent) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event.GetEventType(), err)
	}
	data, err := json.Marshal(Envelope{
		EventType:   event.GetEventType(),
		AggregateID: event.GetAggregateID(),
		OccurredAt:  event.GetOccurredAt().UTC(),
		Version:     event.GetVersion(),
		Payload:     payload,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return data, nil
}
