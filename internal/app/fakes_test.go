package app_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"hotel_booking/internal/domain"
)

// ---- fakes ----

// memStore implements every repository port in memory.
type memStore struct {
	mu           sync.Mutex
	seq          int64
	hotels       map[int64]domain.Hotel
	rooms        map[int64]domain.Room
	reservations map[int64]domain.Reservation
	users        map[int64]domain.User
	reviews      map[int64]domain.Review
	payments     map[int64]domain.Payment

	hotelReads int
	saves      int
	failSave   error
}

func newStore() *memStore {
	return &memStore{
		hotels:       map[int64]domain.Hotel{},
		rooms:        map[int64]domain.Room{},
		reservations: map[int64]domain.Reservation{},
		users:        map[int64]domain.User{},
		reviews:      map[int64]domain.Review{},
		payments:     map[int64]domain.Payment{},
	}
}

func (m *memStore) next() int64 { m.seq++; return m.seq }

func sortedKeys[V any](mp map[int64]V) []int64 {
	ks := make([]int64, 0, len(mp))
	for k := range mp {
		ks = append(ks, k)
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i] < ks[j] })
	return ks
}

func (m *memStore) ListHotels(ctx context.Context, f domain.HotelFilter) ([]domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Hotel
	for _, k := range sortedKeys(m.hotels) {
		h := m.hotels[k]
		if f.Location != nil && h.Location != *f.Location {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}
func (m *memStore) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hotelReads++
	h, ok := m.hotels[id]
	if !ok {
		return domain.Hotel{}, domain.NotFound(domain.KindHotel, id)
	}
	return h, nil
}
func (m *memStore) SaveHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h.ID == 0 {
		h.ID = m.next()
	}
	m.hotels[h.ID] = h
	return h, nil
}
func (m *memStore) DeleteHotel(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.hotels[id]; !ok {
		return domain.NotFound(domain.KindHotel, id)
	}
	delete(m.hotels, id)
	return nil
}

func (m *memStore) ListRooms(ctx context.Context, f domain.RoomFilter) ([]domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Room
	for _, k := range sortedKeys(m.rooms) {
		r := m.rooms[k]
		if f.HotelID != nil && r.HotelID != *f.HotelID {
			continue
		}
		if f.AvailableOnly && !r.Availability {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
func (m *memStore) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.Room{}, domain.NotFound(domain.KindRoom, id)
	}
	return r, nil
}
func (m *memStore) SaveRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.next()
	}
	m.rooms[r.ID] = r
	return r, nil
}
func (m *memStore) DeleteRoom(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; !ok {
		return domain.NotFound(domain.KindRoom, id)
	}
	delete(m.rooms, id)
	return nil
}

func (m *memStore) ListReservations(ctx context.Context, f domain.ReservationFilter) ([]domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rooms map[int64]bool
	if f.RoomIDs != nil {
		rooms = map[int64]bool{}
		for _, id := range f.RoomIDs {
			rooms[id] = true
		}
	}
	var out []domain.Reservation
	for _, k := range sortedKeys(m.reservations) {
		r := m.reservations[k]
		switch {
		case rooms != nil && !rooms[r.RoomID]:
			continue
		case f.HotelID != nil && r.HotelID != *f.HotelID:
			continue
		case f.UserID != nil && r.UserID != *f.UserID:
			continue
		case f.Status != nil && r.Status != *f.Status:
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
func (m *memStore) GetReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reservations[id]
	if !ok {
		return domain.Reservation{}, domain.NotFound(domain.KindReservation, id)
	}
	return r, nil
}
func (m *memStore) SaveReservation(ctx context.Context, r domain.Reservation) (domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave != nil {
		return domain.Reservation{}, m.failSave
	}
	m.saves++
	if r.ID == 0 {
		r.ID = m.next()
	}
	m.reservations[r.ID] = r
	return r, nil
}

func (m *memStore) GetUser(ctx context.Context, id int64) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFound(domain.KindUser, id)
	}
	return u, nil
}
func (m *memStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}
func (m *memStore) SaveUser(ctx context.Context, u domain.User) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == 0 {
		u.ID = m.next()
	}
	m.users[u.ID] = u
	return u, nil
}

func (m *memStore) ListReviews(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Review
	for _, k := range sortedKeys(m.reviews) {
		r := m.reviews[k]
		if f.HotelID != nil && r.HotelID != *f.HotelID {
			continue
		}
		if f.UserID != nil && r.UserID != *f.UserID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
func (m *memStore) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return domain.Review{}, domain.NotFound(domain.KindReview, id)
	}
	return r, nil
}
func (m *memStore) SaveReview(ctx context.Context, r domain.Review) (domain.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r.ID == 0 {
		r.ID = m.next()
	}
	m.reviews[r.ID] = r
	return r, nil
}
func (m *memStore) DeleteReview(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return domain.NotFound(domain.KindReview, id)
	}
	delete(m.reviews, id)
	return nil
}

func (m *memStore) ListPayments(ctx context.Context, userID int64) ([]domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Payment
	for _, k := range sortedKeys(m.payments) {
		if p := m.payments[k]; p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memStore) GetPayment(ctx context.Context, id int64) (domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return domain.Payment{}, domain.NotFound(domain.KindPayment, id)
	}
	return p, nil
}
func (m *memStore) SavePayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == 0 {
		p.ID = m.next()
	}
	m.payments[p.ID] = p
	return p, nil
}

type fakeCache struct {
	store map[string]any
	dels  []string
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.dels = append(c.dels, key)
	delete(c.store, key)
	return nil
}

type fakePublisher struct {
	events []domain.ReservationEvent
	err    error
	// state of each publish context at call time
	deadlines []time.Time
	ctxErrs   []error
}

func (p *fakePublisher) Publish(ctx context.Context, ev domain.ReservationEvent) error {
	d, _ := ctx.Deadline()
	p.deadlines = append(p.deadlines, d)
	p.ctxErrs = append(p.ctxErrs, ctx.Err())
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

// fakeHasher "hashes" by prefixing; good enough to prove the service never stores plain text.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (fakeHasher) Verify(hash, plain string) bool    { return hash == "hashed:"+plain }

type fakeTokens struct{ err error }

func (f fakeTokens) Issue(u domain.User) (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return "token-for-" + u.Email, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

var errBoom = errors.New("boom")

func ptr[T any](v T) *T { return &v }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
