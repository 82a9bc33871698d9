// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/auth"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

const maxBodyBytes = 1 << 20

// Service ports; *app services satisfy them.

type AvailabilityAPI interface {
	FindAvailableRooms(ctx context.Context, hotelID int64, checkIn, checkOut time.Time) ([]domain.Room, error)
}

type ReservationAPI interface {
	Create(ctx context.Context, in domain.Reservation) (domain.Reservation, error)
	Cancel(ctx context.Context, id int64) (domain.Reservation, error)
	Update(ctx context.Context, id int64, u app.ReservationUpdate) (domain.Reservation, error)
	Get(ctx context.Context, id int64) (domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error)
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Reservation, error)
}

type HotelAPI interface {
	Get(ctx context.Context, id int64) (domain.Hotel, error)
	List(ctx context.Context) ([]domain.Hotel, error)
	Create(ctx context.Context, h domain.Hotel) (domain.Hotel, error)
	Update(ctx context.Context, id int64, h domain.Hotel) (domain.Hotel, error)
	Delete(ctx context.Context, id int64) error
	RoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
	SearchByLocation(ctx context.Context, location string) ([]domain.Hotel, error)
}

type RoomAPI interface {
	List(ctx context.Context) ([]domain.Room, error)
	Get(ctx context.Context, id int64) (domain.Room, error)
	Create(ctx context.Context, r domain.Room) (domain.Room, error)
	Update(ctx context.Context, id int64, r domain.Room) (domain.Room, error)
	Delete(ctx context.Context, id int64) error
}

type UserAPI interface {
	Register(ctx context.Context, in app.Registration) (domain.User, error)
	Login(ctx context.Context, email, password string) (app.LoginResult, error)
	Profile(ctx context.Context, id int64) (domain.User, error)
	UpdateProfile(ctx context.Context, id int64, in app.Registration) (domain.User, error)
}

type ReviewAPI interface {
	Add(ctx context.Context, r domain.Review) (domain.Review, error)
	Get(ctx context.Context, id int64) (domain.Review, error)
	List(ctx context.Context) ([]domain.Review, error)
	ByHotel(ctx context.Context, hotelID int64) ([]domain.Review, error)
	ByUser(ctx context.Context, userID int64) ([]domain.Review, error)
	Update(ctx context.Context, id int64, r domain.Review) (domain.Review, error)
	Delete(ctx context.Context, id int64) error
}

type PaymentAPI interface {
	Process(ctx context.Context, in app.PaymentRequest) (domain.Payment, error)
	Get(ctx context.Context, id int64) (domain.Payment, error)
	ByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
}

// TokenAPI verifies bearer tokens and revokes them on logout.
type TokenAPI interface {
	Verify(ctx context.Context, raw string) (auth.Claims, error)
	Revoke(ctx context.Context, c auth.Claims) error
}

type Handlers struct {
	Availability AvailabilityAPI
	Reservations ReservationAPI
	Hotels       HotelAPI
	Rooms        RoomAPI
	Users        UserAPI
	Reviews      ReviewAPI
	Payments     PaymentAPI
	Tokens       TokenAPI
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// Client-facing wording of the domain sentinels.
const (
	msgInvalidStatus      = "The provided reservation status is invalid."
	msgNoRoomsAvailable   = "No rooms available for the selected dates."
	msgNoHotelsFound      = "No hotels found matching your criteria."
	msgInvalidCredentials = "Invalid email or password."
	msgPaymentDeclined    = "Invalid card details."
)

// writeError maps domain errors onto HTTP statuses. Unknown errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *domain.NotFoundError
	var bad *domain.InvalidInputError
	switch {
	case errors.As(err, &nf):
		writeProblem(w, http.StatusNotFound, "Not Found", nf.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, domain.ErrNoRoomsAvailable):
		writeProblem(w, http.StatusNotFound, "Not Found", msgNoRoomsAvailable)
	case errors.Is(err, domain.ErrNoHotelsFound):
		writeProblem(w, http.StatusNotFound, "Not Found", msgNoHotelsFound)
	case errors.As(err, &bad):
		writeProblem(w, http.StatusBadRequest, "Bad Request", bad.Reason)
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrInvalidStatus):
		writeProblem(w, http.StatusBadRequest, "Bad Request", msgInvalidStatus)
	case errors.Is(err, domain.ErrPaymentDeclined):
		writeProblem(w, http.StatusBadRequest, "Payment Declined", msgPaymentDeclined)
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", msgInvalidCredentials)
	case errors.Is(err, auth.ErrInvalidToken):
		writeProblem(w, http.StatusUnauthorized, "Unauthorized", "invalid token")
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeProblem(w, http.StatusServiceUnavailable, "Service Unavailable", "request timed out")
	default:
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "an unexpected error occurred")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable answers GETs with a weak ETag and honours If-None-Match.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "could not encode response")
		return
	}
	w.Header().Set("ETag", etag)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

// decodeJSON writes a 400 itself and returns false when the body is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return false
	}
	return true
}

// pathID reads a positive integer URL parameter, writing a 400 otherwise.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", fmt.Sprintf("%s must be a positive number", name))
		return 0, false
	}
	return id, true
}

func (h *Handlers) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
