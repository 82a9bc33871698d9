package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

// publishTimeout bounds the best-effort event publish after a committed write.
const publishTimeout = 3 * time.Second

// ReservationService owns the booking status lifecycle.
// It does not consult the availability resolver; the repository rejects
// overlapping confirmed stays with domain.ErrConflict.
type ReservationService struct {
	repo   domain.ReservationRepository
	rooms  domain.RoomRepository
	users  domain.UserRepository
	events domain.EventPublisher
	now    func() time.Time
}

func NewReservationService(r domain.ReservationRepository, rooms domain.RoomRepository, users domain.UserRepository, p domain.EventPublisher) *ReservationService {
	return &ReservationService{repo: r, rooms: rooms, users: users, events: p, now: time.Now}
}

// ReservationUpdate carries the fields a PUT may change. Status is mandatory;
// nil pointers leave the stored value alone.
type ReservationUpdate struct {
	Status   string
	RoomID   *int64
	CheckIn  *time.Time
	CheckOut *time.Time
}

func (s *ReservationService) Create(ctx context.Context, in domain.Reservation) (domain.Reservation, error) {
	if in.UserID <= 0 || in.HotelID <= 0 || in.RoomID <= 0 {
		return domain.Reservation{}, domain.InvalidInput("userId/hotelId/roomId", "userId, hotelId and roomId are required")
	}
	if err := domain.ValidateStay(in.CheckIn, in.CheckOut); err != nil {
		return domain.Reservation{}, err
	}

	if _, err := s.users.GetUser(ctx, in.UserID); err != nil {
		return domain.Reservation{}, err
	}
	if err := s.checkRoom(ctx, in); err != nil {
		return domain.Reservation{}, err
	}

	in.ID = 0
	in.Confirm() // whatever the caller sent
	saved, err := s.repo.SaveReservation(ctx, in)
	if err != nil {
		return domain.Reservation{}, err
	}
	observability.ObserveReservation(string(saved.Status))
	log.Info().
		Int64("reservation_id", saved.ID).
		Int64("room_id", saved.RoomID).
		Time("check_in", saved.CheckIn).
		Time("check_out", saved.CheckOut).
		Msg("reservation confirmed")

	s.publish(ctx, domain.EventReservationConfirmed, saved)
	return saved, nil
}

func (s *ReservationService) Cancel(ctx context.Context, id int64) (domain.Reservation, error) {
	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	r.Cancel()
	saved, err := s.repo.SaveReservation(ctx, r)
	if err != nil {
		return domain.Reservation{}, err
	}
	observability.ObserveReservation(string(saved.Status))
	log.Info().Int64("reservation_id", saved.ID).Msg("reservation cancelled")

	s.publish(ctx, domain.EventReservationCancelled, saved)
	return saved, nil
}

// Update overwrites the status (and any supplied fields). Validation happens
// before anything is copied, so a rejected update leaves the record untouched.
func (s *ReservationService) Update(ctx context.Context, id int64, u ReservationUpdate) (domain.Reservation, error) {
	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	status, err := domain.ParseReservationStatus(u.Status)
	if err != nil {
		return domain.Reservation{}, err
	}

	next := r
	next.Status = status
	if u.RoomID != nil {
		if *u.RoomID <= 0 {
			return domain.Reservation{}, domain.InvalidInput("roomId", "roomId must be positive")
		}
		next.RoomID = *u.RoomID
		if err := s.checkRoom(ctx, next); err != nil {
			return domain.Reservation{}, err
		}
	}
	if u.CheckIn != nil {
		next.CheckIn = *u.CheckIn
	}
	if u.CheckOut != nil {
		next.CheckOut = *u.CheckOut
	}
	if err := domain.ValidateStay(next.CheckIn, next.CheckOut); err != nil {
		return domain.Reservation{}, err
	}

	saved, err := s.repo.SaveReservation(ctx, next)
	if err != nil {
		return domain.Reservation{}, err
	}
	observability.ObserveReservation(string(saved.Status))

	if r.Status != saved.Status {
		typ := domain.EventReservationConfirmed
		if saved.Status == domain.StatusCancelled {
			typ = domain.EventReservationCancelled
		}
		s.publish(ctx, typ, saved)
	}
	return saved, nil
}

func (s *ReservationService) Get(ctx context.Context, id int64) (domain.Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

func (s *ReservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.repo.ListReservations(ctx, domain.ReservationFilter{})
}

func (s *ReservationService) ListByUser(ctx context.Context, userID int64) ([]domain.Reservation, error) {
	return s.repo.ListReservations(ctx, domain.ReservationFilter{UserID: &userID})
}

func (s *ReservationService) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Reservation, error) {
	return s.repo.ListReservations(ctx, domain.ReservationFilter{HotelID: &hotelID})
}

// checkRoom requires the booked room to exist and to belong to r's hotel.
// The repository repeats the check under its row lock.
func (s *ReservationService) checkRoom(ctx context.Context, r domain.Reservation) error {
	room, err := s.rooms.GetRoom(ctx, r.RoomID)
	if err != nil {
		return err
	}
	return domain.CheckPlacement(r, room.HotelID)
}

// publish is best-effort: the transition is already persisted. It outlives a
// cancelled request but never holds the response for more than publishTimeout.
func (s *ReservationService) publish(ctx context.Context, typ domain.EventType, r domain.Reservation) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	ev := domain.ReservationEvent{
		EventID:       uuid.NewString(),
		Type:          typ,
		ReservationID: r.ID,
		UserID:        r.UserID,
		HotelID:       r.HotelID,
		RoomID:        r.RoomID,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		Status:        string(r.Status),
		OccurredAt:    s.now().UTC(),
	}
	err := s.events.Publish(ctx, ev)
	observability.ObserveEvent(string(typ), err)
	if err != nil {
		log.Warn().Err(err).Str("type", string(typ)).Int64("reservation_id", r.ID).Msg("publish reservation event failed")
	}
}
