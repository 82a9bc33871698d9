package domain

import (
	"fmt"
	"time"
)

// ReservationStatus is the two-valued lifecycle tag of a booking.
// The literals are stored verbatim, including their inconsistent casing.
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "Cancelled"
)

// ParseReservationStatus accepts exactly the two recognized literals.
func ParseReservationStatus(s string) (ReservationStatus, error) {
	switch ReservationStatus(s) {
	case StatusConfirmed, StatusCancelled:
		return ReservationStatus(s), nil
	}
	return "", ErrInvalidStatus
}

type Reservation struct {
	ID       int64
	UserID   int64
	HotelID  int64
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
	Status   ReservationStatus
}

func (r *Reservation) Confirm() { r.Status = StatusConfirmed }
func (r *Reservation) Cancel()  { r.Status = StatusCancelled }

// Blocks reports whether r keeps its room unavailable for [checkIn, checkOut).
// Only confirmed reservations block.
func (r Reservation) Blocks(checkIn, checkOut time.Time) bool {
	return r.Status == StatusConfirmed && Overlaps(r.CheckIn, r.CheckOut, checkIn, checkOut)
}

// Overlaps is the three-clause test gating room availability for an existing
// window [resIn, resOut) and a requested window [checkIn, checkOut).
// Each clause has its own boundary rule; keep them as written.
func Overlaps(resIn, resOut, checkIn, checkOut time.Time) bool {
	startsInside := !checkIn.Before(resIn) && checkIn.Before(resOut) // resIn <= checkIn < resOut
	endsInside := checkOut.After(resIn) && !checkOut.After(resOut)   // resIn < checkOut <= resOut
	covers := !checkIn.After(resIn) && !checkOut.Before(resOut)      // checkIn <= resIn && checkOut >= resOut
	return startsInside || endsInside || covers
}

// ValidateStay rejects empty or inverted stays.
func ValidateStay(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return InvalidInput("checkIn/checkOut", "dates are required")
	}
	if !checkOut.After(checkIn) {
		return InvalidInput("checkOut", "Check-out date must be after check-in date.")
	}
	return nil
}

// CheckPlacement rejects a reservation whose hotel is not the hotel owning
// the booked room.
func CheckPlacement(r Reservation, roomHotelID int64) error {
	if r.HotelID != roomHotelID {
		return InvalidInput("hotelId", fmt.Sprintf("Room %d does not belong to hotel %d.", r.RoomID, r.HotelID))
	}
	return nil
}
