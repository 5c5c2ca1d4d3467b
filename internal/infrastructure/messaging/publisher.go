// Package messaging delivers notifications to the outside world.
package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/kalakar/casting-api/internal/core/domain"
)

const exchangeKind = "topic"

// AMQPPublisher publishes notifications to a durable topic exchange with the
// notification kind as routing key. The connection is opened lazily and
// re-dialled after it drops.
type AMQPPublisher struct {
	url      string
	exchange string
	log      zerolog.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url, exchange string, log zerolog.Logger) *AMQPPublisher {
	return &AMQPPublisher{url: url, exchange: exchange, log: log}
}

// Publish sends n as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, n domain.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("amqp: marshal notification: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    n.SubjectID,
		Type:         string(n.Kind),
		Timestamp:    n.OccurredAt,
		Body:         body,
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	if err := ch.PublishWithContext(ctx, p.exchange, string(n.Kind), false, false, msg); err != nil {
		p.reset()
		return fmt.Errorf("amqp: publish %s: %w", n.Kind, err)
	}
	return nil
}

// Close shuts the channel and connection down.
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.ch != nil {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil {
		errs = append(errs, p.conn.Close())
	}
	p.ch, p.conn = nil, nil
	return errors.Join(errs...)
}

// channel returns an open channel, dialling and declaring the exchange when
// needed. Callers hold p.mu.
func (p *AMQPPublisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("amqp: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(p.exchange, exchangeKind, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp: declare exchange %s: %w", p.exchange, err)
	}

	p.log.Info().Str("exchange", p.exchange).Msg("connected to message broker")
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn = nil, nil
}

// LogPublisher writes notifications to the log. It is used when no broker is
// configured.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, n domain.Notification) error {
	ev := p.log.Info().
		Str("kind", string(n.Kind)).
		Str("subject_id", n.SubjectID).
		Time("occurred_at", n.OccurredAt)
	for k, v := range n.Attributes {
		ev = ev.Str(k, v)
	}
	ev.Msg("notification")
	return nil
}
