package app

import (
	"context"
	"time"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

type AvailabilityService struct {
	rooms        domain.RoomRepository
	reservations domain.ReservationRepository
}

func NewAvailabilityService(rooms domain.RoomRepository, res domain.ReservationRepository) *AvailabilityService {
	return &AvailabilityService{rooms: rooms, reservations: res}
}

// FindAvailableRooms returns rooms flagged available that have no confirmed
// reservation overlapping [checkIn, checkOut). A hotelID of 0 searches every
// hotel; anything else restricts the search to that hotel.
// An empty result is reported as domain.ErrNoRoomsAvailable.
func (s *AvailabilityService) FindAvailableRooms(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]domain.Room, error) {
	if err := domain.ValidateStay(checkIn, checkOut); err != nil {
		observability.ObserveAvailability("invalid")
		return nil, err
	}

	f := domain.RoomFilter{AvailableOnly: true}
	if hotelID > 0 {
		f.HotelID = &hotelID
	}
	candidates, err := s.rooms.ListRooms(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		observability.ObserveAvailability("none")
		return nil, domain.ErrNoRoomsAvailable
	}

	ids := make([]int64, 0, len(candidates))
	for _, r := range candidates {
		ids = append(ids, r.ID)
	}
	confirmed := domain.StatusConfirmed
	existing, err := s.reservations.ListReservations(ctx, domain.ReservationFilter{RoomIDs: ids, Status: &confirmed})
	if err != nil {
		return nil, err
	}

	blocked := make(map[int64]struct{})
	for _, res := range existing {
		if res.Blocks(checkIn, checkOut) {
			blocked[res.RoomID] = struct{}{}
		}
	}

	out := make([]domain.Room, 0, len(candidates))
	for _, r := range candidates {
		// the repository already filters, but the flag is the contract
		if !r.Availability {
			continue
		}
		if _, ok := blocked[r.ID]; ok {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		observability.ObserveAvailability("none")
		return nil, domain.ErrNoRoomsAvailable
	}
	observability.ObserveAvailability("found")
	return out, nil
}
