package httpserver

import (
	"net/http"
	"strconv"

	"hotel_booking/internal/app"
)

// ---- search ----

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Hotels.SearchByLocation(r.Context(), r.URL.Query().Get("location"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.HotelsToDTO(hs))
}

// ---- hotels ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Hotels.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, app.HotelsToDTO(hs))
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	hotel, err := h.Hotels.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, app.HotelToDTO(hotel))
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	var in app.HotelDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Hotels.Create(r.Context(), app.HotelFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/hotels/"+strconv.FormatInt(out.ID, 10))
	writeJSON(w, http.StatusCreated, app.HotelToDTO(out))
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.HotelDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Hotels.Update(r.Context(), id, app.HotelFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.HotelToDTO(out))
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Hotels.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) hotelRooms(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	rooms, err := h.Hotels.RoomsByHotel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(rooms) == 0 {
		writeProblem(w, http.StatusNotFound, "Not Found", "No rooms found for this hotel.")
		return
	}
	writeCacheable(w, r, app.RoomsToDTO(rooms))
}

// ---- rooms ----

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Rooms.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.RoomsToDTO(rooms))
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	room, err := h.Rooms.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.RoomToDTO(room))
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var in app.RoomDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Rooms.Create(r.Context(), app.RoomFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/rooms/"+strconv.FormatInt(out.ID, 10))
	writeJSON(w, http.StatusCreated, app.RoomToDTO(out))
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.RoomDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Rooms.Update(r.Context(), id, app.RoomFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.RoomToDTO(out))
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Rooms.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
