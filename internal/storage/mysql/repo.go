package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"

	"hotel_booking/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
func f64Ptr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// MySQL server error numbers the repository translates.
const (
	errDuplicateEntry  = 1062
	errRowIsReferenced = 1451 // delete blocked by a child row
	errNoReferencedRow = 1452 // write names a missing parent
)

// Repo implements every repository port in internal/domain on one *sql.DB.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// Open connects and pings. DSN must carry parseTime=true.
func Open(ctx context.Context, dsn string, maxOpen int) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxOpen)
	db.SetConnMaxLifetime(30 * time.Minute)

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// where joins conditions with AND; an empty list yields "".
func where(conds []string) string {
	if len(conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conds, " AND ") + "\n"
}

func affectedOrNotFound(res sql.Result, kind domain.EntityKind, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound(kind, id)
	}
	return nil
}

func mysqlErrno(err error) uint16 {
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) {
		return me.Number
	}
	return 0
}

func isDuplicate(err error) bool     { return mysqlErrno(err) == errDuplicateEntry }
func isReferenced(err error) bool    { return mysqlErrno(err) == errRowIsReferenced }
func isMissingParent(err error) bool { return mysqlErrno(err) == errNoReferencedRow }

// ---- hotels ----

type scanner interface{ Scan(dest ...any) error }

func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var desc sql.NullString
	var rating sql.NullFloat64
	if err := s.Scan(&h.ID, &h.Name, &desc, &h.Location, &h.ContactNumber, &rating); err != nil {
		return domain.Hotel{}, err
	}
	h.Description = strPtr(desc)
	h.Rating = f64Ptr(rating)
	return h, nil
}

func (r *Repo) ListHotels(ctx context.Context, f domain.HotelFilter) ([]domain.Hotel, error) {
	var conds []string
	var args []any
	if f.Location != nil {
		conds = append(conds, "location = ?")
		args = append(args, *f.Location)
	}
	rows, err := r.db.QueryContext(ctx, selectHotelSQL+where(conds)+"ORDER BY hotel_id", args...)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, selectHotelSQL+"WHERE hotel_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Hotel{}, domain.NotFound(domain.KindHotel, id)
	}
	return h, err
}

func (r *Repo) SaveHotel(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	if h.ID == 0 {
		res, err := r.db.ExecContext(ctx, insertHotelSQL,
			h.Name, valStr(h.Description), h.Location, h.ContactNumber, valF64(h.Rating))
		if err != nil {
			return domain.Hotel{}, fmt.Errorf("insert hotel: %w", err)
		}
		h.ID, err = res.LastInsertId()
		return h, err
	}
	_, err := r.db.ExecContext(ctx, updateHotelSQL,
		h.Name, valStr(h.Description), h.Location, h.ContactNumber, valF64(h.Rating), h.ID)
	if err != nil {
		return domain.Hotel{}, fmt.Errorf("update hotel %d: %w", h.ID, err)
	}
	return h, nil
}

func (r *Repo) DeleteHotel(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if isReferenced(err) {
		return fmt.Errorf("hotel %d has reservations and cannot be deleted: %w", id, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("delete hotel %d: %w", id, err)
	}
	return affectedOrNotFound(res, domain.KindHotel, id)
}

// ---- rooms ----

func scanRoom(s scanner) (domain.Room, error) {
	var rm domain.Room
	var desc sql.NullString
	if err := s.Scan(&rm.ID, &rm.HotelID, &rm.RoomType, &rm.Price, &rm.Availability, &desc); err != nil {
		return domain.Room{}, err
	}
	rm.Description = strPtr(desc)
	return rm, nil
}

func (r *Repo) ListRooms(ctx context.Context, f domain.RoomFilter) ([]domain.Room, error) {
	var conds []string
	var args []any
	if f.HotelID != nil {
		conds = append(conds, "hotel_id = ?")
		args = append(args, *f.HotelID)
	}
	if f.AvailableOnly {
		conds = append(conds, "availability = TRUE")
	}
	rows, err := r.db.QueryContext(ctx, selectRoomSQL+where(conds)+"ORDER BY room_id", args...)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, selectRoomSQL+"WHERE room_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Room{}, domain.NotFound(domain.KindRoom, id)
	}
	return rm, err
}

func (r *Repo) SaveRoom(ctx context.Context, rm domain.Room) (domain.Room, error) {
	if rm.ID == 0 {
		res, err := r.db.ExecContext(ctx, insertRoomSQL,
			rm.HotelID, rm.RoomType, rm.Price, rm.Availability, valStr(rm.Description))
		if isMissingParent(err) {
			return domain.Room{}, domain.NotFound(domain.KindHotel, rm.HotelID)
		}
		if err != nil {
			return domain.Room{}, fmt.Errorf("insert room: %w", err)
		}
		rm.ID, err = res.LastInsertId()
		return rm, err
	}
	_, err := r.db.ExecContext(ctx, updateRoomSQL,
		rm.HotelID, rm.RoomType, rm.Price, rm.Availability, valStr(rm.Description), rm.ID)
	if isMissingParent(err) {
		return domain.Room{}, domain.NotFound(domain.KindHotel, rm.HotelID)
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("update room %d: %w", rm.ID, err)
	}
	return rm, nil
}

func (r *Repo) DeleteRoom(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteRoomSQL, id)
	if isReferenced(err) {
		return fmt.Errorf("room %d has reservations and cannot be deleted: %w", id, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("delete room %d: %w", id, err)
	}
	return affectedOrNotFound(res, domain.KindRoom, id)
}
