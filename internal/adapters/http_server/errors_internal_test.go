package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel_booking/internal/domain"
)

func TestWriteErrorStatusAndDetail(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		detail string
	}{
		{"not found", domain.NotFound(domain.KindReservation, 111), http.StatusNotFound, "Reservation with ID 111 not found."},
		{"wrapped not found", fmt.Errorf("load: %w", domain.NotFound(domain.KindRoom, 7)), http.StatusNotFound, "Room with ID 7 not found."},
		{"no rooms", domain.ErrNoRoomsAvailable, http.StatusNotFound, "No rooms available for the selected dates."},
		{"no hotels", fmt.Errorf("search: %w", domain.ErrNoHotelsFound), http.StatusNotFound, "No hotels found matching your criteria."},
		{"invalid status", domain.ErrInvalidStatus, http.StatusBadRequest, "The provided reservation status is invalid."},
		{"invalid input", domain.InvalidInput("hotelId", "Room 10 does not belong to hotel 2."), http.StatusBadRequest, "Room 10 does not belong to hotel 2."},
		{"wrapped invalid input", fmt.Errorf("create: %w", domain.InvalidInput("checkOut", "Check-out date must be after check-in date.")), http.StatusBadRequest, "Check-out date must be after check-in date."},
		{"payment declined", domain.ErrPaymentDeclined, http.StatusBadRequest, "Invalid card details."},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password."},
		{"delete with history", fmt.Errorf("room 5 has reservations and cannot be deleted: %w", domain.ErrConflict), http.StatusConflict, "room 5 has reservations and cannot be deleted: conflict"},
		{"timeout", fmt.Errorf("query: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, "request timed out"},
		{"unknown", errors.New("Error 1213: deadlock"), http.StatusInternalServerError, "an unexpected error occurred"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeError(rr, httptest.NewRequest(http.MethodGet, "/api/x", nil), c.err)
			if rr.Code != c.status {
				t.Fatalf("status = %d, want %d", rr.Code, c.status)
			}
			var p problem
			if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if p.Detail != c.detail {
				t.Fatalf("detail = %q, want %q", p.Detail, c.detail)
			}
		})
	}
}
