package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

// ---- users ----

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var in app.UserRegisterDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	u, err := h.Users.Register(r.Context(), app.RegistrationFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/users/profile?userId="+strconv.FormatInt(u.ID, 10))
	writeJSON(w, http.StatusCreated, app.UserToDTO(u))
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in app.UserLoginDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	res, err := h.Users.Login(r.Context(), strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.TokenDTO{Token: res.Token, ExpiresAt: res.ExpiresAt, UserID: res.User.ID})
}

// profileID picks the explicit id, falling back to the caller's token.
// Only admins may act on someone else's profile.
func profileID(w http.ResponseWriter, r *http.Request, explicit int64) (int64, bool) {
	c, authed := claimsFrom(r.Context())
	id := explicit
	if id == 0 && authed {
		id = c.UserID()
	}
	if id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "userId is required")
		return 0, false
	}
	if authed && c.UserID() != id && c.Role != domain.RoleAdmin {
		writeProblem(w, http.StatusForbidden, "Forbidden", "cannot access another user's profile")
		return 0, false
	}
	return id, true
}

func (h *Handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	var explicit int64
	if s := r.URL.Query().Get("userId"); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "Bad Request", "userId must be a number")
			return
		}
		explicit = n
	}
	id, ok := profileID(w, r, explicit)
	if !ok {
		return
	}
	u, err := h.Users.Profile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.UserToDTO(u))
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in app.UserDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	id, ok := profileID(w, r, in.UserID)
	if !ok {
		return
	}
	u, err := h.Users.UpdateProfile(r.Context(), id, app.ProfileFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.UserToDTO(u))
}

// logout revokes the presented token when there is one. Tokens are
// stateless otherwise, so this always succeeds.
func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if c, ok := claimsFrom(r.Context()); ok && h.Tokens != nil {
		if err := h.Tokens.Revoke(r.Context(), c); err != nil {
			log.Warn().Err(err).Int64("user_id", c.UserID()).Msg("token revoke failed")
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- reviews ----

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	out, err := h.Reviews.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ReviewsToDTO(out))
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	out, err := h.Reviews.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ReviewToDTO(out))
}

func (h *Handlers) reviewsByHotel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "hotelId")
	if !ok {
		return
	}
	out, err := h.Reviews.ByHotel(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, app.ReviewsToDTO(out))
}

func (h *Handlers) reviewsByUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	out, err := h.Reviews.ByUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ReviewsToDTO(out))
}

func (h *Handlers) addReview(w http.ResponseWriter, r *http.Request) {
	var in app.ReviewDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Reviews.Add(r.Context(), app.ReviewFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/reviews/"+strconv.FormatInt(out.ID, 10))
	writeJSON(w, http.StatusCreated, app.ReviewToDTO(out))
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in app.ReviewDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	out, err := h.Reviews.Update(r.Context(), id, app.ReviewFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.ReviewToDTO(out))
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Reviews.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- payments ----

func (h *Handlers) processPayment(w http.ResponseWriter, r *http.Request) {
	var in app.ProcessPaymentDTO
	if !decodeJSON(w, r, &in) {
		return
	}
	p, err := h.Payments.Process(r.Context(), app.PaymentRequestFromDTO(in))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/payments/"+strconv.FormatInt(p.ID, 10))
	writeJSON(w, http.StatusCreated, app.PaymentToDTO(p))
}

func (h *Handlers) getPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.Payments.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.PaymentToDTO(p))
}

func (h *Handlers) paymentsByUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	ps, err := h.Payments.ByUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app.PaymentsToDTO(ps))
}
