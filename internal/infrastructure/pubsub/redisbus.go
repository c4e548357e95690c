package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-print/inkwell/internal/domain/shared/events"
	"github.com/inkwell-print/inkwell/internal/shared/goroutine"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

const channelPrefix = "inkwell:events:"

// EnvelopeHandler handles one received event.
type EnvelopeHandler func(ctx context.Context, env Envelope)

// RedisEventBus publishes each event on inkwell:events:{event_type}.
type RedisEventBus struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisEventBus creates a new redis event bus.
func NewRedisEventBus(client *redis.Client, logger logger.Interface) *RedisEventBus {
	return &RedisEventBus{
		client: client,
		logger: logger,
	}
}

// Channel returns the pub/sub channel for an event type.
func Channel(eventType string) string {
	return channelPrefix + eventType
}

// Publish sends the event envelope on its channel.
func (b *RedisEventBus) Publish(ctx context.Context, event events.DomainEvent) error {
	data, err := encode(event)
	if err != nil {
		return err
	}

	if err := b.client.Publish(ctx, Channel(event.GetEventType()), data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.GetEventType(), err)
	}

	b.logger.Debugw("event published",
		"event_type", event.GetEventType(),
		"aggregate_id", event.GetAggregateID(),
	)
	return nil
}

// Subscribe blocks until ctx is done, calling handler for every event of
// the given types. Handlers run on their own goroutine.
func (b *RedisEventBus) Subscribe(ctx context.Context, handler EnvelopeHandler, eventTypes ...string) error {
	channels := make([]string, 0, len(eventTypes))
	for _, t := range eventTypes {
		channels = append(channels, Channel(t))
	}

	sub := b.client.Subscribe(ctx, channels...)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	b.logger.Infow("subscribed to events", "channels", channels)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("event channel closed")
				return nil
			}

			var env Envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				b.logger.Warnw("failed to unmarshal event", "channel", msg.Channel, "error", err)
				continue
			}
			goroutine.SafeGo(b.logger, "event-handler:"+env.EventType, func() {
				handler(context.Background(), env)
			})
		}
	}
}
