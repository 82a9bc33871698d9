package domain

import "time"

type EventType string

const (
	EventReservationConfirmed EventType = "reservation.confirmed"
	EventReservationCancelled EventType = "reservation.cancelled"
)

// ReservationEvent is published after a lifecycle transition is persisted.
type ReservationEvent struct {
	EventID       string    `json:"event_id"`
	Type          EventType `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	UserID        int64     `json:"user_id"`
	HotelID       int64     `json:"hotel_id"`
	RoomID        int64     `json:"room_id"`
	CheckIn       time.Time `json:"check_in"`
	CheckOut      time.Time `json:"check_out"`
	Status        string    `json:"status"`
	OccurredAt    time.Time `json:"occurred_at"`
}
