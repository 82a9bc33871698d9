package app

import (
	"context"
	"strings"

	"hotel_booking/internal/domain"
)

type RoomService struct {
	repo   domain.RoomRepository
	hotels domain.HotelRepository
}

func NewRoomService(r domain.RoomRepository, h domain.HotelRepository) *RoomService {
	return &RoomService{repo: r, hotels: h}
}

func (s *RoomService) List(ctx context.Context) ([]domain.Room, error) {
	return s.repo.ListRooms(ctx, domain.RoomFilter{})
}

func (s *RoomService) Get(ctx context.Context, id int64) (domain.Room, error) {
	return s.repo.GetRoom(ctx, id)
}

func (s *RoomService) Create(ctx context.Context, r domain.Room) (domain.Room, error) {
	if err := validateRoom(r); err != nil {
		return domain.Room{}, err
	}
	if _, err := s.hotels.GetHotel(ctx, r.HotelID); err != nil {
		return domain.Room{}, err
	}
	r.ID = 0
	return s.repo.SaveRoom(ctx, r)
}

// Update copies the administrative fields; the owning hotel never changes.
func (s *RoomService) Update(ctx context.Context, id int64, in domain.Room) (domain.Room, error) {
	cur, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	cur.Price = in.Price
	cur.Availability = in.Availability
	cur.Description = in.Description
	cur.RoomType = in.RoomType
	if err := validateRoom(cur); err != nil {
		return domain.Room{}, err
	}
	return s.repo.SaveRoom(ctx, cur)
}

func (s *RoomService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteRoom(ctx, id)
}

func validateRoom(r domain.Room) error {
	switch {
	case r.HotelID <= 0:
		return domain.InvalidInput("hotelId", "Hotel ID is required.")
	case strings.TrimSpace(r.RoomType) == "":
		return domain.InvalidInput("roomType", "Room type is required.")
	case len(r.RoomType) > 100:
		return domain.InvalidInput("roomType", "Room type can't be longer than 100 characters.")
	case r.Price <= 0:
		return domain.InvalidInput("price", "Price must be greater than zero.")
	case r.Description != nil && len(*r.Description) > 500:
		return domain.InvalidInput("description", "Description can't be longer than 500 characters.")
	}
	return nil
}
