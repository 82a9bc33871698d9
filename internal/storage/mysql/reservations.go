package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"hotel_booking/internal/domain"
)

func scanReservation(s scanner) (domain.Reservation, error) {
	var res domain.Reservation
	var status string
	if err := s.Scan(&res.ID, &res.UserID, &res.HotelID, &res.RoomID, &res.CheckIn, &res.CheckOut, &status); err != nil {
		return domain.Reservation{}, err
	}
	res.Status = domain.ReservationStatus(status)
	return res, nil
}

func (r *Repo) ListReservations(ctx context.Context, f domain.ReservationFilter) ([]domain.Reservation, error) {
	var conds []string
	var args []any
	if f.RoomIDs != nil {
		if len(f.RoomIDs) == 0 {
			return nil, nil
		}
		marks := strings.TrimSuffix(strings.Repeat("?,", len(f.RoomIDs)), ",")
		conds = append(conds, "room_id IN ("+marks+")")
		for _, id := range f.RoomIDs {
			args = append(args, id)
		}
	}
	if f.HotelID != nil {
		conds = append(conds, "hotel_id = ?")
		args = append(args, *f.HotelID)
	}
	if f.UserID != nil {
		conds = append(conds, "user_id = ?")
		args = append(args, *f.UserID)
	}
	if f.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, string(*f.Status))
	}

	rows, err := r.db.QueryContext(ctx, selectReservationSQL+where(conds)+"ORDER BY reservation_id", args...)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *Repo) GetReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	res, err := scanReservation(r.db.QueryRowContext(ctx, selectReservationSQL+"WHERE reservation_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Reservation{}, domain.NotFound(domain.KindReservation, id)
	}
	return res, err
}

// SaveReservation writes inside a transaction that locks the room row. The
// room must exist and belong to res.HotelID whatever the status. A confirmed
// reservation that would overlap another confirmed one on the same room is
// rejected with domain.ErrConflict; concurrent bookings for one room queue on
// the lock, so only one of two overlapping requests can win.
func (r *Repo) SaveReservation(ctx context.Context, res domain.Reservation) (out domain.Reservation, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Reservation{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockAndCheck(ctx, tx, res); err != nil {
		return domain.Reservation{}, err
	}

	if res.ID == 0 {
		var sr sql.Result
		sr, err = tx.ExecContext(ctx, insertReservationSQL,
			res.UserID, res.HotelID, res.RoomID, res.CheckIn, res.CheckOut, string(res.Status))
		if isMissingParent(err) {
			// room and hotel are verified under the lock; only the user is left
			return domain.Reservation{}, domain.NotFound(domain.KindUser, res.UserID)
		}
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("insert reservation: %w", err)
		}
		if res.ID, err = sr.LastInsertId(); err != nil {
			return domain.Reservation{}, err
		}
	} else {
		_, err = tx.ExecContext(ctx, updateReservationSQL,
			res.UserID, res.HotelID, res.RoomID, res.CheckIn, res.CheckOut, string(res.Status), res.ID)
		if isMissingParent(err) {
			return domain.Reservation{}, domain.NotFound(domain.KindUser, res.UserID)
		}
		if err != nil {
			return domain.Reservation{}, fmt.Errorf("update reservation %d: %w", res.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return domain.Reservation{}, err
	}
	return res, nil
}

func lockAndCheck(ctx context.Context, tx *sql.Tx, res domain.Reservation) error {
	var hotelID int64
	err := tx.QueryRowContext(ctx, lockRoomSQL, res.RoomID).Scan(&hotelID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound(domain.KindRoom, res.RoomID)
	}
	if err != nil {
		return fmt.Errorf("lock room %d: %w", res.RoomID, err)
	}
	if err := domain.CheckPlacement(res, hotelID); err != nil {
		return err
	}
	if res.Status != domain.StatusConfirmed {
		return nil
	}

	var n int
	in, out := res.CheckIn, res.CheckOut
	if err := tx.QueryRowContext(ctx, countOverlapsSQL,
		res.RoomID, res.ID, in, in, out, out, in, out).Scan(&n); err != nil {
		return fmt.Errorf("overlap check room %d: %w", res.RoomID, err)
	}
	if n > 0 {
		return fmt.Errorf("room %d already booked for these dates: %w", res.RoomID, domain.ErrConflict)
	}
	return nil
}
