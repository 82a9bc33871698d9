package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_booking/internal/adapters/auth"
	httpserver "hotel_booking/internal/adapters/http_server"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// ---- stubs; embedded interfaces panic on anything a test does not set ----

type stubAvailability struct {
	fn func(hotelID int64, in, out time.Time) ([]domain.Room, error)
}

func (s stubAvailability) FindAvailableRooms(_ context.Context, hotelID int64, in, out time.Time) ([]domain.Room, error) {
	return s.fn(hotelID, in, out)
}

type stubReservations struct {
	httpserver.ReservationAPI
	created []domain.Reservation
	err     error
}

func (s *stubReservations) Create(_ context.Context, in domain.Reservation) (domain.Reservation, error) {
	if s.err != nil {
		return domain.Reservation{}, s.err
	}
	in.ID = 1
	in.Confirm()
	s.created = append(s.created, in)
	return in, nil
}

func (s *stubReservations) Cancel(_ context.Context, id int64) (domain.Reservation, error) {
	return domain.Reservation{}, domain.NotFound(domain.KindReservation, id)
}

func (s *stubReservations) Update(_ context.Context, id int64, u app.ReservationUpdate) (domain.Reservation, error) {
	if _, err := domain.ParseReservationStatus(u.Status); err != nil {
		return domain.Reservation{}, err
	}
	return domain.Reservation{ID: id, Status: domain.ReservationStatus(u.Status)}, nil
}

func (s *stubReservations) List(context.Context) ([]domain.Reservation, error) {
	return nil, errors.New("db exploded: password=hunter2")
}

type stubHotels struct {
	httpserver.HotelAPI
	rooms []domain.Room
}

func (s stubHotels) Get(_ context.Context, id int64) (domain.Hotel, error) {
	if id != 1 {
		return domain.Hotel{}, domain.NotFound(domain.KindHotel, id)
	}
	return domain.Hotel{ID: 1, Name: "Harbour View", Location: "Lisbon"}, nil
}

func (s stubHotels) RoomsByHotel(context.Context, int64) ([]domain.Room, error) { return s.rooms, nil }

type stubUsers struct{ httpserver.UserAPI }

func (stubUsers) Profile(_ context.Context, id int64) (domain.User, error) {
	return domain.User{ID: id, Username: "u", Email: "u@example.com"}, nil
}

type fixture struct {
	srv    http.Handler
	res    *stubReservations
	tokens *auth.Tokens
}

func newFixture(t *testing.T, authRequired bool, opts httpserver.Options) fixture {
	t.Helper()
	res := &stubReservations{}
	tokens := auth.NewTokens("test-secret", "hotel_booking", "clients", time.Hour, nil)
	s := httpserver.New(opts)
	s.MountHandlers(&httpserver.Handlers{
		Availability: stubAvailability{fn: func(hotelID int64, in, out time.Time) ([]domain.Room, error) {
			if in.Month() == time.December {
				return nil, domain.ErrNoRoomsAvailable
			}
			return []domain.Room{{ID: 10, HotelID: 1, RoomType: "Double", Price: 120, Availability: true}}, nil
		}},
		Reservations: res,
		Hotels:       stubHotels{},
		Users:        stubUsers{},
		Tokens:       tokens,
	}, authRequired)
	return fixture{srv: s.Mux(), res: res, tokens: tokens}
}

func do(t *testing.T, h http.Handler, method, target, body string, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func problemDetail(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type %q, body %s", ct, rr.Body.String())
	}
	var p struct {
		Status int    `json:"status"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &p); err != nil {
		t.Fatalf("problem body: %v", err)
	}
	return p.Detail
}

// ---- tests ----

func TestSearchAvailable(t *testing.T) {
	f := newFixture(t, false, httpserver.Options{})

	cases := []struct {
		name   string
		query  string
		status int
		detail string
	}{
		{"ok", "hotelId=1&checkIn=2025-06-12&checkOut=2025-06-14", http.StatusOK, ""},
		{"date-time", "hotelId=1&checkIn=2025-06-12T14:00:00&checkOut=2025-06-14T11:00:00", http.StatusOK, ""},
		{"inverted", "hotelId=1&checkIn=2025-06-14&checkOut=2025-06-12", http.StatusBadRequest, "Check-out date must be after check-in date."},
		{"same day", "hotelId=1&checkIn=2025-06-14&checkOut=2025-06-14", http.StatusBadRequest, "Check-out date must be after check-in date."},
		{"none left", "hotelId=1&checkIn=2025-12-01&checkOut=2025-12-03", http.StatusNotFound, "No available rooms found for the given dates."},
		{"bad date", "hotelId=1&checkIn=tomorrow&checkOut=2025-06-14", http.StatusBadRequest, ""},
		{"bad hotel", "hotelId=abc&checkIn=2025-06-12&checkOut=2025-06-14", http.StatusBadRequest, ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rr := do(t, f.srv, http.MethodGet, "/api/search/available?"+c.query, "", nil)
			if rr.Code != c.status {
				t.Fatalf("status %d, body %s", rr.Code, rr.Body.String())
			}
			if c.detail != "" {
				if got := problemDetail(t, rr); got != c.detail {
					t.Fatalf("detail %q", got)
				}
			}
			if c.status == http.StatusOK {
				var rooms []app.RoomDTO
				if err := json.Unmarshal(rr.Body.Bytes(), &rooms); err != nil || len(rooms) != 1 || rooms[0].RoomID != 10 {
					t.Fatalf("rooms %s (%v)", rr.Body.String(), err)
				}
			}
		})
	}
}

func TestCreateReservation(t *testing.T) {
	f := newFixture(t, false, httpserver.Options{})

	body := `{"userId":1,"hotelId":2,"roomId":3,"checkInDate":"2025-06-10","checkOutDate":"2025-06-15","status":"Cancelled"}`
	rr := do(t, f.srv, http.MethodPost, "/api/reservations", body, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status %d, body %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Location") != "/api/reservations/1" {
		t.Fatalf("location %q", rr.Header().Get("Location"))
	}
	var out app.ReservationDTO
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Status != "confirmed" || !out.CheckInDate.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected body %+v", out)
	}

	rr = do(t, f.srv, http.MethodPost, "/api/reservations", `{"userId":`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("malformed JSON: status %d", rr.Code)
	}
}

func TestReservationErrors(t *testing.T) {
	f := newFixture(t, false, httpserver.Options{})

	rr := do(t, f.srv, http.MethodDelete, "/api/reservations/111", "", nil)
	if rr.Code != http.StatusNotFound || problemDetail(t, rr) != "Reservation with ID 111 not found." {
		t.Fatalf("cancel missing: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, f.srv, http.MethodPut, "/api/reservations/1", `{"status":"InvalidStatus"}`, nil)
	if rr.Code != http.StatusBadRequest || problemDetail(t, rr) != "The provided reservation status is invalid." {
		t.Fatalf("invalid status: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, f.srv, http.MethodGet, "/api/reservations/abc", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad id: %d", rr.Code)
	}

	f.res.err = errors.Join(errors.New("room 3 already booked"), domain.ErrConflict)
	rr = do(t, f.srv, http.MethodPost, "/api/reservations", `{"userId":1,"hotelId":2,"roomId":3,"checkInDate":"2025-06-10","checkOutDate":"2025-06-15"}`, nil)
	if rr.Code != http.StatusConflict {
		t.Fatalf("conflict: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, f.srv, http.MethodGet, "/api/reservations", "", nil)
	if rr.Code != http.StatusInternalServerError || strings.Contains(rr.Body.String(), "hunter2") {
		t.Fatalf("internal errors must be opaque: %d %s", rr.Code, rr.Body.String())
	}
}

func TestHotelETagAndRooms(t *testing.T) {
	f := newFixture(t, false, httpserver.Options{})

	rr := do(t, f.srv, http.MethodGet, "/api/hotels/1", "", nil)
	etag := rr.Header().Get("ETag")
	if rr.Code != http.StatusOK || etag == "" {
		t.Fatalf("first get: %d etag=%q", rr.Code, etag)
	}
	rr = do(t, f.srv, http.MethodGet, "/api/hotels/1", "", map[string]string{"If-None-Match": etag})
	if rr.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rr.Code)
	}

	rr = do(t, f.srv, http.MethodGet, "/api/hotels/7", "", nil)
	if rr.Code != http.StatusNotFound || problemDetail(t, rr) != "Hotel with ID 7 not found." {
		t.Fatalf("missing hotel: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, f.srv, http.MethodGet, "/api/hotels/1/rooms", "", nil)
	if rr.Code != http.StatusNotFound || problemDetail(t, rr) != "No rooms found for this hotel." {
		t.Fatalf("empty rooms: %d %s", rr.Code, rr.Body.String())
	}
}

func TestAuthRequiredOnWrites(t *testing.T) {
	f := newFixture(t, true, httpserver.Options{})
	body := `{"userId":1,"hotelId":2,"roomId":3,"checkInDate":"2025-06-10","checkOutDate":"2025-06-15"}`

	if rr := do(t, f.srv, http.MethodPost, "/api/reservations", body, nil); rr.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rr.Code)
	}
	if rr := do(t, f.srv, http.MethodPost, "/api/reservations", body, map[string]string{"Authorization": "Bearer nope"}); rr.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: %d", rr.Code)
	}

	tok, _, err := f.tokens.Issue(domain.User{ID: 1, Email: "a@example.com", Role: domain.RoleCustomer})
	if err != nil {
		t.Fatal(err)
	}
	bearer := map[string]string{"Authorization": "Bearer " + tok}
	if rr := do(t, f.srv, http.MethodPost, "/api/reservations", body, bearer); rr.Code != http.StatusCreated {
		t.Fatalf("valid token: %d %s", rr.Code, rr.Body.String())
	}

	// reads stay public
	if rr := do(t, f.srv, http.MethodGet, "/api/hotels/1", "", nil); rr.Code != http.StatusOK {
		t.Fatalf("public read: %d", rr.Code)
	}

	// profile falls back to the token subject; other users are off limits
	if rr := do(t, f.srv, http.MethodGet, "/api/users/profile", "", bearer); rr.Code != http.StatusOK {
		t.Fatalf("own profile: %d %s", rr.Code, rr.Body.String())
	}
	if rr := do(t, f.srv, http.MethodGet, "/api/users/profile?userId=2", "", bearer); rr.Code != http.StatusForbidden {
		t.Fatalf("other profile: %d", rr.Code)
	}

	if rr := do(t, f.srv, http.MethodPost, "/api/users/logout", "", bearer); rr.Code != http.StatusNoContent {
		t.Fatalf("logout: %d", rr.Code)
	}
}

func TestRateLimit(t *testing.T) {
	f := newFixture(t, false, httpserver.Options{RateLimitRPS: 0.001, RateLimitBurst: 2})

	for i := 0; i < 2; i++ {
		if rr := do(t, f.srv, http.MethodGet, "/healthz", "", nil); rr.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i, rr.Code)
		}
	}
	rr := do(t, f.srv, http.MethodGet, "/healthz", "", nil)
	if rr.Code != http.StatusTooManyRequests || rr.Header().Get("Retry-After") == "" {
		t.Fatalf("expected 429, got %d", rr.Code)
	}

	// another client has its own bucket
	rr = do(t, f.srv, http.MethodGet, "/healthz", "", map[string]string{"X-Forwarded-For": "203.0.113.9"})
	if rr.Code != http.StatusOK {
		t.Fatalf("second client throttled: %d", rr.Code)
	}
}
