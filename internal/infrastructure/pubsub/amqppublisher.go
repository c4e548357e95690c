package pubsub

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/inkwell-print/inkwell/internal/domain/shared/events"
	"github.com/inkwell-print/inkwell/internal/shared/logger"
)

const DefaultExchange = "inkwell.support"

// AMQPPublisher publishes persistent messages to a durable topic exchange
// with the event type as routing key.
type AMQPPublisher struct {
	url      string
	exchange string
	logger   logger.Interface

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchange string, logger logger.Interface) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	p := &AMQPPublisher{url: url, exchange: exchange, logger: logger}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.connectLocked(); err != nil {
		return nil, err
	}
	return p, nil
}

// connectLocked dials and declares the exchange. Callers hold p.mu.
func (p *AMQPPublisher) connectLocked() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("amqp dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("amqp channel open failed: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("amqp exchange declare failed: %w", err)
	}
	p.conn, p.ch = conn, ch
	return nil
}

// Publish reconnects once when the channel has been closed by the broker.
func (p *AMQPPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	body, err := encode(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		p.closeLocked()
		if err := p.connectLocked(); err != nil {
			return err
		}
	}

	err = p.ch.PublishWithContext(ctx, p.exchange, event.GetEventType(), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		MessageId:    fmt.Sprintf("%s:%s:%d", event.GetEventType(), event.GetAggregateID(), event.GetOccurredAt().UnixNano()),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp publish %s failed: %w", event.GetEventType(), err)
	}

	p.logger.Debugw("event published", "exchange", p.exchange, "routing_key", event.GetEventType())
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
	return nil
}

func (p *AMQPPublisher) closeLocked() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
