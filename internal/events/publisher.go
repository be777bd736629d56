// Package events publishes storefront events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"shoe-storefront/internal/domain"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 3 * time.Second

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Publisher struct {
	mu     sync.Mutex
	conn   *amqp.Connection
	ch     channel
	logger *zap.Logger
	now    func() time.Time
}

// Dial connects to url and declares the queues the storefront publishes to
func Dial(url string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(OrderPlacedQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", OrderPlacedQueue, err)
	}

	p := newPublisher(ch, logger)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, logger *zap.Logger) *Publisher {
	return &Publisher{ch: ch, logger: logger, now: time.Now}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, o *domain.Order) error {
	body, err := json.Marshal(NewOrderPlaced(o, p.now()))
	if err != nil {
		return fmt.Errorf("failed to marshal OrderPlaced: %w", err)
	}

	if err := p.publishJSON(ctx, OrderPlacedQueue, body); err != nil {
		return fmt.Errorf("failed to publish OrderPlaced: %w", err)
	}

	p.logger.Debug("Published event", zap.String("queue", OrderPlacedQueue), zap.String("order_id", o.ID.String()))
	return nil
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.ch.PublishWithContext(
		pubCtx,
		"",
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishOrderPlaced(ctx context.Context, o *domain.Order) error {
	return nil
}

func (NoopPublisher) Close() error {
	return nil
}
