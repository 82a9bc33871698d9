package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

const noAvailableRooms = "No available rooms found for the given dates."

// GET /api/search/available?hotelId&checkIn&checkOut
func (h *Handlers) searchAvailable(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var hotelID int64
	if s := strings.TrimSpace(q.Get("hotelId")); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id < 0 {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "hotelId must be a non-negative number")
			return
		}
		hotelID = id
	}
	checkIn, err := app.ParseTimestamp(q.Get("checkIn"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "checkIn: "+err.Error())
		return
	}
	checkOut, err := app.ParseTimestamp(q.Get("checkOut"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "checkOut: "+err.Error())
		return
	}
	if err := domain.ValidateStay(checkIn, checkOut); err != nil {
		writeError(w, r, err)
		return
	}

	rooms, err := h.Availability.FindAvailableRooms(r.Context(), hotelID, checkIn, checkOut)
	if errors.Is(err, domain.ErrNoRoomsAvailable) {
		writeProblem(w, http.StatusNotFound, "Not Found", noAvailableRooms)
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.RoomsToDTO(rooms))
}

func (h *Handlers) createReservation(w http.ResponseWriter, r *http.Request) {
	var in app.ReservationDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Reservations.Create(r.Context(), app.ReservationFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/reservations/"+strconv.FormatInt(out.ID, 10))
	writeJSON(w, http.StatusCreated, app.ReservationToDTO(out))
}

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reservations.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ReservationsToDTO(out))
}

func (h *Handlers) getReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Reservations.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ReservationToDTO(out))
}

func (h *Handlers) updateReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.UpdateReservationDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Reservations.Update(r.Context(), id, app.ReservationUpdateFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ReservationToDTO(out))
}

// DELETE cancels; reservations are never removed.
func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Reservations.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ReservationToDTO(out))
}

func (h *Handlers) reservationsByUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	out, err := h.Reservations.ListByUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ReservationsToDTO(out))
}

func (h *Handlers) reservationsByHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "hotelId")
	if !ok {
		return
	}
	out, err := h.Reservations.ListByHotel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ReservationsToDTO(out))
}
