package app_test

import (
	"context"
	"errors"
	"testing"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// seedAvailability: hotel 1 has rooms 10 (booked 06-10..06-15), 11 (free), 12 (flagged unavailable);
// hotel 2 has room 20 (free).
func seedAvailability(t *testing.T) *memStore {
	t.Helper()
	st := newStore()
	st.seq = 100
	st.rooms[10] = domain.Room{ID: 10, HotelID: 1, RoomType: "Double", Price: 120, Availability: true}
	st.rooms[11] = domain.Room{ID: 11, HotelID: 1, RoomType: "Single", Price: 80, Availability: true}
	st.rooms[12] = domain.Room{ID: 12, HotelID: 1, RoomType: "Suite", Price: 300, Availability: false}
	st.rooms[20] = domain.Room{ID: 20, HotelID: 2, RoomType: "Double", Price: 90, Availability: true}
	st.reservations[1] = domain.Reservation{
		ID: 1, UserID: 7, HotelID: 1, RoomID: 10,
		CheckIn: day("2025-06-10"), CheckOut: day("2025-06-15"), Status: domain.StatusConfirmed,
	}
	return st
}

func roomIDs(rs []domain.Room) map[int64]bool {
	out := map[int64]bool{}
	for _, r := range rs {
		out[r.ID] = true
	}
	return out
}

func TestFindAvailableRooms_ContainmentExcludes(t *testing.T) {
	st := seedAvailability(t)
	svc := app.NewAvailabilityService(st, st)

	rooms, err := svc.FindAvailableRooms(context.Background(), 1, day("2025-06-12"), day("2025-06-14"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	got := roomIDs(rooms)
	if got[10] {
		t.Fatalf("room 10 overlaps and must be excluded: %+v", rooms)
	}
	if !got[11] {
		t.Fatalf("room 11 should be available: %+v", rooms)
	}
}

func TestFindAvailableRooms_AdjacentIncluded(t *testing.T) {
	st := seedAvailability(t)
	svc := app.NewAvailabilityService(st, st)

	rooms, err := svc.FindAvailableRooms(context.Background(), 1, day("2025-06-15"), day("2025-06-20"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !roomIDs(rooms)[10] {
		t.Fatalf("check-in on previous check-out day must not block room 10: %+v", rooms)
	}
}

func TestFindAvailableRooms_NeverReturnsUnavailableFlag(t *testing.T) {
	st := seedAvailability(t)
	svc := app.NewAvailabilityService(st, st)

	for _, hotel := range []int64{0, 1} {
		rooms, err := svc.FindAvailableRooms(context.Background(), hotel, day("2025-08-01"), day("2025-08-02"))
		if err != nil {
			t.Fatalf("hotel %d: %v", hotel, err)
		}
		if roomIDs(rooms)[12] {
			t.Fatalf("hotel %d: room 12 is flagged unavailable", hotel)
		}
	}
}

func TestFindAvailableRooms_CancelledDoesNotBlock(t *testing.T) {
	st := seedAvailability(t)
	r := st.reservations[1]
	r.Cancel()
	st.reservations[1] = r
	svc := app.NewAvailabilityService(st, st)

	rooms, err := svc.FindAvailableRooms(context.Background(), 1, day("2025-06-12"), day("2025-06-14"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !roomIDs(rooms)[10] {
		t.Fatalf("cancelled reservation must not block room 10: %+v", rooms)
	}
}

func TestFindAvailableRooms_HotelScoping(t *testing.T) {
	st := seedAvailability(t)
	svc := app.NewAvailabilityService(st, st)
	ctx := context.Background()

	scoped, err := svc.FindAvailableRooms(ctx, 2, day("2025-08-01"), day("2025-08-03"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(scoped) != 1 || scoped[0].ID != 20 {
		t.Fatalf("expected only room 20 for hotel 2, got %+v", scoped)
	}

	all, err := svc.FindAvailableRooms(ctx, 0, day("2025-08-01"), day("2025-08-03"))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	ids := roomIDs(all)
	if len(all) != 3 || !ids[10] || !ids[11] || !ids[20] {
		t.Fatalf("chain-wide search should return 10, 11, 20; got %+v", all)
	}
}

func TestFindAvailableRooms_NoneLeft(t *testing.T) {
	st := seedAvailability(t)
	st.reservations[2] = domain.Reservation{
		ID: 2, UserID: 8, HotelID: 1, RoomID: 11,
		CheckIn: day("2025-06-01"), CheckOut: day("2025-06-30"), Status: domain.StatusConfirmed,
	}
	svc := app.NewAvailabilityService(st, st)

	_, err := svc.FindAvailableRooms(context.Background(), 1, day("2025-06-12"), day("2025-06-14"))
	if !errors.Is(err, domain.ErrNoRoomsAvailable) {
		t.Fatalf("expected ErrNoRoomsAvailable, got %v", err)
	}
}

func TestFindAvailableRooms_InvalidRange(t *testing.T) {
	st := seedAvailability(t)
	svc := app.NewAvailabilityService(st, st)

	_, err := svc.FindAvailableRooms(context.Background(), 1, day("2025-06-14"), day("2025-06-12"))
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
