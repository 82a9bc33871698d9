package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/domain"
)

const (
	publishAttempts = 3
	dialTimeout     = 5 * time.Second
)

// Publisher sends reservation events to a durable queue on the default
// exchange. The connection is opened lazily and re-dialled after failures.
type Publisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewPublisher(url, queue string) *Publisher {
	return &Publisher{url: url, queue: queue}
}

func (p *Publisher) Publish(ctx context.Context, ev domain.ReservationEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Type:         string(ev.Type),
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	var lastErr error
	for i := 0; i < publishAttempts; i++ {
		ch, err := p.channel(ctx)
		if err == nil {
			err = ch.PublishWithContext(ctx, "", p.queue, false, false, msg)
			if err == nil {
				return nil
			}
			p.reset()
		}
		lastErr = err
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if i < publishAttempts-1 && !sleepCtx(ctx, backoff(i)) {
			return ctx.Err()
		}
	}
	return fmt.Errorf("publish %s: %w", ev.Type, lastErr)
}

func (p *Publisher) channel(ctx context.Context) (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.conn == nil || p.conn.IsClosed() {
		conn, err := dial(ctx, p.url)
		if err != nil {
			return nil, err
		}
		p.conn = conn
	}
	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("channel open: %w", err)
	}
	if err := declare(ch, p.queue); err != nil {
		_ = ch.Close()
		return nil, err
	}
	p.ch = ch
	return ch, nil
}

func (p *Publisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() error {
	p.reset()
	return nil
}

// dial connects within dialTimeout or ctx's deadline, whichever comes
// first. The deadline also covers the AMQP handshake.
func dial(ctx context.Context, url string) (*amqp.Connection, error) {
	cfg := amqp.Config{Dial: func(network, addr string) (net.Conn, error) {
		d := net.Dialer{Timeout: dialTimeout}
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		deadline := time.Now().Add(dialTimeout)
		if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
			deadline = dl
		}
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}}
	conn, err := amqp.DialConfig(url, cfg)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	return conn, nil
}

// declare is idempotent; the queue survives broker restarts.
func declare(ch *amqp.Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare %s: %w", queue, err)
	}
	return nil
}

// Discard is used when no broker is configured.
type Discard struct{}

func (Discard) Publish(ctx context.Context, ev domain.ReservationEvent) error {
	log.Debug().Str("type", string(ev.Type)).Int64("reservation_id", ev.ReservationID).Msg("event discarded (no broker)")
	return nil
}
