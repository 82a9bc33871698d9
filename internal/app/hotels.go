package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel_booking/internal/domain"
)

// HotelService serves hotel CRUD and location search. Single-hotel reads go
// through the cache; writes evict the cached entry.
type HotelService struct {
	repo     domain.HotelRepository
	rooms    domain.RoomRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewHotelService(r domain.HotelRepository, rooms domain.RoomRepository, c domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{repo: r, rooms: rooms, cache: c, cacheTTL: ttl}
}

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

func (s *HotelService) Get(ctx context.Context, id int64) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	}
	return h, nil
}

func (s *HotelService) List(ctx context.Context) ([]domain.Hotel, error) {
	return s.repo.ListHotels(ctx, domain.HotelFilter{})
}

func (s *HotelService) Create(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	if err := validateHotel(h); err != nil {
		return domain.Hotel{}, err
	}
	h.ID = 0
	return s.repo.SaveHotel(ctx, h)
}

func (s *HotelService) Update(ctx context.Context, id int64, h domain.Hotel) (domain.Hotel, error) {
	if _, err := s.repo.GetHotel(ctx, id); err != nil {
		return domain.Hotel{}, err
	}
	if err := validateHotel(h); err != nil {
		return domain.Hotel{}, err
	}
	h.ID = id
	out, err := s.repo.SaveHotel(ctx, h)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.invalidate(ctx, id)
	return out, nil
}

func (s *HotelService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteHotel(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *HotelService) RoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	return s.rooms.ListRooms(ctx, domain.RoomFilter{HotelID: &hotelID})
}

// SearchByLocation matches the location exactly, as stored.
func (s *HotelService) SearchByLocation(ctx context.Context, location string) ([]domain.Hotel, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, domain.InvalidInput("location", "location is required")
	}
	hs, err := s.repo.ListHotels(ctx, domain.HotelFilter{Location: &location})
	if err != nil {
		return nil, err
	}
	if len(hs) == 0 {
		return nil, domain.ErrNoHotelsFound
	}
	return hs, nil
}

func (s *HotelService) invalidate(ctx context.Context, id int64) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(id))
	}
}

func validateHotel(h domain.Hotel) error {
	switch {
	case strings.TrimSpace(h.Name) == "":
		return domain.InvalidInput("hotelName", "Hotel name is required.")
	case len(h.Name) > 100:
		return domain.InvalidInput("hotelName", "Hotel name can't be longer than 100 characters.")
	case strings.TrimSpace(h.Location) == "":
		return domain.InvalidInput("location", "Location is required.")
	case len(h.Location) > 200:
		return domain.InvalidInput("location", "Location can't be longer than 200 characters.")
	case strings.TrimSpace(h.ContactNumber) == "":
		return domain.InvalidInput("contactNumber", "Contact number is required.")
	case h.Description != nil && len(*h.Description) > 500:
		return domain.InvalidInput("description", "Description can't be longer than 500 characters.")
	case h.Rating != nil && (*h.Rating < 0 || *h.Rating > 5):
		return domain.InvalidInput("rating", "Rating must be between 0 and 5.")
	}
	return nil
}
