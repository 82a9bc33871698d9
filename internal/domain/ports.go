package domain

import (
	"context"
	"time"
)

type HotelRepository interface {
	ListHotels(ctx context.Context, f HotelFilter) ([]Hotel, error)
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	SaveHotel(ctx context.Context, h Hotel) (Hotel, error)
	DeleteHotel(ctx context.Context, id int64) error
}

type RoomRepository interface {
	ListRooms(ctx context.Context, f RoomFilter) ([]Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	SaveRoom(ctx context.Context, r Room) (Room, error)
	DeleteRoom(ctx context.Context, id int64) error
}

// ReservationRepository never deletes: reservations are only status-mutated.
type ReservationRepository interface {
	ListReservations(ctx context.Context, f ReservationFilter) ([]Reservation, error)
	GetReservation(ctx context.Context, id int64) (Reservation, error)
	// SaveReservation inserts when ID is zero and updates otherwise.
	SaveReservation(ctx context.Context, r Reservation) (Reservation, error)
}

type UserRepository interface {
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	SaveUser(ctx context.Context, u User) (User, error)
}

type ReviewRepository interface {
	ListReviews(ctx context.Context, f ReviewFilter) ([]Review, error)
	GetReview(ctx context.Context, id int64) (Review, error)
	SaveReview(ctx context.Context, r Review) (Review, error)
	DeleteReview(ctx context.Context, id int64) error
}

type PaymentRepository interface {
	ListPayments(ctx context.Context, userID int64) ([]Payment, error)
	GetPayment(ctx context.Context, id int64) (Payment, error)
	SavePayment(ctx context.Context, p Payment) (Payment, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, ev ReservationEvent) error
}

type TokenIssuer interface {
	Issue(u User) (token string, expires time.Time, err error)
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// Filters; nil / zero fields are not applied.

type HotelFilter struct {
	Location *string
}

type RoomFilter struct {
	HotelID       *int64
	AvailableOnly bool
}

type ReservationFilter struct {
	RoomIDs []int64
	HotelID *int64
	UserID  *int64
	Status  *ReservationStatus
}

type ReviewFilter struct {
	HotelID *int64
	UserID  *int64
}
