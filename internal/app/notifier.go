package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

// Notification is what a guest would be told about a reservation change.
type Notification struct {
	To            string
	Username      string
	Subject       string
	ReservationID int64
	CheckIn       time.Time
	CheckOut      time.Time
}

// Sender delivers a notification. The default sender only logs.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// NotificationService turns reservation events into guest notifications.
// Redeliveries of an already handled event are skipped via the cache.
type NotificationService struct {
	users  domain.UserRepository
	sender Sender
	seen   domain.Cache
	ttl    time.Duration
}

func NewNotificationService(users domain.UserRepository, s Sender, seen domain.Cache, ttl time.Duration) *NotificationService {
	if s == nil {
		s = LogSender{}
	}
	return &NotificationService{users: users, sender: s, seen: seen, ttl: ttl}
}

func (s *NotificationService) Handle(ctx context.Context, ev domain.ReservationEvent) error {
	start := time.Now()
	defer func() { observability.ObserveEventHandled(string(ev.Type), time.Since(start)) }()

	key := "event:" + ev.EventID
	if s.seen != nil && ev.EventID != "" {
		var done bool
		if ok, _ := s.seen.Get(ctx, key, &done); ok && done {
			log.Debug().Str("event_id", ev.EventID).Msg("duplicate event skipped")
			return nil
		}
	}

	var subject string
	switch ev.Type {
	case domain.EventReservationConfirmed:
		subject = "Your reservation is confirmed"
	case domain.EventReservationCancelled:
		subject = "Your reservation was cancelled"
	default:
		log.Warn().Str("type", string(ev.Type)).Msg("unknown event type ignored")
		return nil
	}

	u, err := s.users.GetUser(ctx, ev.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		// nobody to tell; retrying will not help
		log.Warn().Int64("user_id", ev.UserID).Int64("reservation_id", ev.ReservationID).Msg("event for unknown user")
		return nil
	}
	if err != nil {
		return err
	}

	if err := s.sender.Send(ctx, Notification{
		To:            u.Email,
		Username:      u.Username,
		Subject:       subject,
		ReservationID: ev.ReservationID,
		CheckIn:       ev.CheckIn,
		CheckOut:      ev.CheckOut,
	}); err != nil {
		return err
	}

	if s.seen != nil && ev.EventID != "" {
		_ = s.seen.Set(ctx, key, true, int(s.ttl.Seconds()))
	}
	return nil
}

type LogSender struct{}

func (LogSender) Send(ctx context.Context, n Notification) error {
	log.Info().
		Str("to", n.To).
		Str("subject", n.Subject).
		Int64("reservation_id", n.ReservationID).
		Time("check_in", n.CheckIn).
		Time("check_out", n.CheckOut).
		Msg("notification sent")
	return nil
}
