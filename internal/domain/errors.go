package domain

import (
	"errors"
	"fmt"
)

// Sentinels. Client-facing wording for them lives in the HTTP adapter.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidStatus      = errors.New("invalid reservation status")
	ErrNoRoomsAvailable   = errors.New("no rooms available for the selected dates")
	ErrNoHotelsFound      = errors.New("no hotels found matching the criteria")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPaymentDeclined    = errors.New("invalid card details")
	ErrConflict           = errors.New("conflict")
)

type EntityKind string

const (
	KindHotel       EntityKind = "Hotel"
	KindRoom        EntityKind = "Room"
	KindUser        EntityKind = "User"
	KindReservation EntityKind = "Reservation"
	KindReview      EntityKind = "Review"
	KindPayment     EntityKind = "Payment"
)

// NotFoundError is the single "entity absent" condition for every kind.
type NotFoundError struct {
	Kind EntityKind
	ID   int64
}

func NotFound(kind EntityKind, id int64) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found.", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type InvalidInputError struct {
	Field  string
	Reason string
}

func InvalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

func (e *InvalidInputError) Error() string { return e.Reason }

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }
