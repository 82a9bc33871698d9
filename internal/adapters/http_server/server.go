package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Options struct {
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

type Server struct{ mux *chi.Mux }

func New(o Options) *Server {
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = 15 * time.Second
	}
	m := chi.NewRouter()

	// All middlewares go here (before any routes are added)
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer)
	m.Use(Timeout(o.RequestTimeout))
	m.Use(Metrics)
	m.Use(Logger(log.Logger))
	m.Use(RateLimit(o.RateLimitRPS, o.RateLimitBurst))

	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}

// MountHandlers registers the API. With authRequired, every write except
// register/login needs a valid bearer token; reads stay public.
func (s *Server) MountHandlers(h *Handlers, authRequired bool) {
	s.mux.Get("/healthz", h.health)

	s.mux.Route("/api", func(r chi.Router) {
		// tokens are always parsed when present, so logout and profile can use them
		r.Use(Authenticate(h.Tokens, false))
		write := Authenticate(h.Tokens, authRequired)

		r.Get("/search", h.searchHotels)
		r.Get("/search/available", h.searchAvailable)

		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", h.listReservations)
			r.Get("/{id}", h.getReservation)
			r.Get("/user/{userId}", h.reservationsByUser)
			r.Get("/hotel/{hotelId}", h.reservationsByHotel)
			r.With(write).Post("/", h.createReservation)
			r.With(write).Put("/{id}", h.updateReservation)
			r.With(write).Delete("/{id}", h.cancelReservation)
		})

		r.Route("/hotels", func(r chi.Router) {
			r.Get("/", h.listHotels)
			r.Get("/{id}", h.getHotel)
			r.Get("/{id}/rooms", h.hotelRooms)
			r.With(write).Post("/", h.createHotel)
			r.With(write).Put("/{id}", h.updateHotel)
			r.With(write).Delete("/{id}", h.deleteHotel)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Get("/", h.listRooms)
			r.Get("/{id}", h.getRoom)
			r.With(write).Post("/", h.createRoom)
			r.With(write).Put("/{id}", h.updateRoom)
			r.With(write).Delete("/{id}", h.deleteRoom)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.With(write).Get("/profile", h.getProfile)
			r.With(write).Put("/profile", h.updateProfile)
			r.Post("/logout", h.logout)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", h.listReviews)
			r.Get("/{id}", h.getReview)
			r.Get("/hotel/{hotelId}", h.reviewsByHotel)
			r.Get("/user/{userId}", h.reviewsByUser)
			r.With(write).Post("/", h.addReview)
			r.With(write).Put("/{id}", h.updateReview)
			r.With(write).Delete("/{id}", h.deleteReview)
		})

		r.Route("/payments", func(r chi.Router) {
			r.With(write).Post("/", h.processPayment)
			r.Get("/{id}", h.getPayment)
			r.Get("/user/{userId}", h.paymentsByUser)
		})
	})
}
