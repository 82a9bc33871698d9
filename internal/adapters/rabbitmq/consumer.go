package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_booking/internal/domain"
)

var ErrNoBroker = errors.New("rabbitmq: no broker url")

// Handler processes one event. Returning an error requeues the delivery once.
type Handler func(ctx context.Context, ev domain.ReservationEvent) error

type Consumer struct {
	url     string
	queue   string
	workers int
}

func NewConsumer(url, queue string, workers int) *Consumer {
	if workers < 1 {
		workers = 1
	}
	return &Consumer{url: url, queue: queue, workers: workers}
}

// Run consumes until ctx is done, re-dialling with backoff whenever the
// broker goes away. At most c.workers deliveries are handled at a time.
func (c *Consumer) Run(ctx context.Context, h Handler) error {
	if c.url == "" {
		return ErrNoBroker
	}
	attempt := 0
	for {
		err := c.consume(ctx, h, func() { attempt = 0 })
		if ctx.Err() != nil {
			return nil
		}
		wait := backoff(attempt)
		log.Warn().Err(err).Dur("retry_in", wait).Msg("consumer disconnected")
		attempt++
		if !sleepCtx(ctx, wait) {
			return nil
		}
	}
}

func (c *Consumer) consume(ctx context.Context, h Handler, connected func()) error {
	conn, err := dial(ctx, c.url)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(c.workers*2, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}
	if err := declare(ch, c.queue); err != nil {
		return err
	}
	msgs, err := ch.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	connected()
	log.Info().Str("queue", c.queue).Int("workers", c.workers).Msg("consumer ready")

	sem := semaphore.NewWeighted(int64(c.workers))
	var wg sync.WaitGroup
	defer wg.Wait()

	for d := range msgs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			_ = d.Nack(false, true)
			return err
		}
		wg.Add(1)
		go func(d amqp.Delivery) {
			defer wg.Done()
			defer sem.Release(1)
			handleDelivery(ctx, d, h)
		}(d)
	}
	return errors.New("deliveries channel closed")
}

// handleDelivery acks on success. Undecodable bodies are dropped; handler
// failures are requeued once and dropped on the second failure.
func handleDelivery(ctx context.Context, d amqp.Delivery, h Handler) {
	var ev domain.ReservationEvent
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		log.Error().Err(err).Str("message_id", d.MessageId).Msg("undecodable event dropped")
		_ = d.Nack(false, false)
		return
	}
	if err := h(ctx, ev); err != nil {
		requeue := !d.Redelivered
		log.Warn().Err(err).Str("event_id", ev.EventID).Bool("requeue", requeue).Msg("event handling failed")
		_ = d.Nack(false, requeue)
		return
	}
	_ = d.Ack(false)
}
