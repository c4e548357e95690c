package pubsub

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/inkwell-print/inkwell/internal/domain/shared/events"
	"github.com/inkwell-print/inkwell/internal/shared/config"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

// NopPublisher drops events. It is used when no transport is configured.
type NopPublisher struct {
	logger logger.Interface
}

// NewNopPublisher creates a publisher that drops every event.
func NewNopPublisher(logger logger.Interface) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	p.logger.Debugw("event dropped, no transport configured", "event_type", event.GetEventType())
	return nil
}

// NewPublisher builds the transport named by cfg.Driver. The returned close
// function is never nil.
func NewPublisher(cfg config.EventsConfig, redisClient *redis.Client, log logger.Interface) (events.Publisher, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", "none":
		return NewNopPublisher(log), noop, nil
	case "redis":
		if redisClient == nil {
			return nil, noop, fmt.Errorf("events driver redis requires redis to be enabled")
		}
		return NewRedisEventBus(redisClient, log), noop, nil
	case "amqp":
		p, err := NewAMQPPublisher(cfg.AMQPURL, cfg.Exchange, log)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown events driver %q", cfg.Driver)
	}
}
