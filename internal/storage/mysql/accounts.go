package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotel_booking/internal/domain"
)

// ---- users ----

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	var first, last, addr sql.NullString
	var role string
	if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &first, &last, &u.PhoneNumber, &addr, &role); err != nil {
		return domain.User{}, err
	}
	u.FirstName, u.LastName, u.Address = strPtr(first), strPtr(last), strPtr(addr)
	u.Role = domain.UserRole(role)
	return u, nil
}

func (r *Repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserSQL+"WHERE user_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.NotFound(domain.KindUser, id)
	}
	return u, err
}

// GetUserByEmail has no id to report, so absence is plain domain.ErrNotFound.
func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, selectUserSQL+"WHERE email = ?", email))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrNotFound
	}
	return u, err
}

func (r *Repo) SaveUser(ctx context.Context, u domain.User) (domain.User, error) {
	args := []any{u.Username, u.PasswordHash, u.Email, valStr(u.FirstName), valStr(u.LastName),
		u.PhoneNumber, valStr(u.Address), string(u.Role)}
	if u.ID == 0 {
		res, err := r.db.ExecContext(ctx, insertUserSQL, args...)
		if isDuplicate(err) {
			return domain.User{}, fmt.Errorf("email %s: %w", u.Email, domain.ErrConflict)
		}
		if err != nil {
			return domain.User{}, fmt.Errorf("insert user: %w", err)
		}
		u.ID, err = res.LastInsertId()
		return u, err
	}
	_, err := r.db.ExecContext(ctx, updateUserSQL, append(args, u.ID)...)
	if isDuplicate(err) {
		return domain.User{}, fmt.Errorf("email %s: %w", u.Email, domain.ErrConflict)
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return u, nil
}

// ---- reviews ----

func scanReview(s scanner) (domain.Review, error) {
	var rv domain.Review
	var comment sql.NullString
	if err := s.Scan(&rv.ID, &rv.UserID, &rv.HotelID, &rv.Rating, &comment, &rv.ReviewDate); err != nil {
		return domain.Review{}, err
	}
	rv.Comment = strPtr(comment)
	return rv, nil
}

func (r *Repo) ListReviews(ctx context.Context, f domain.ReviewFilter) ([]domain.Review, error) {
	var conds []string
	var args []any
	if f.HotelID != nil {
		conds = append(conds, "hotel_id = ?")
		args = append(args, *f.HotelID)
	}
	if f.UserID != nil {
		conds = append(conds, "user_id = ?")
		args = append(args, *f.UserID)
	}
	rows, err := r.db.QueryContext(ctx, selectReviewSQL+where(conds)+"ORDER BY review_date DESC, review_id DESC", args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, selectReviewSQL+"WHERE review_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Review{}, domain.NotFound(domain.KindReview, id)
	}
	return rv, err
}

func (r *Repo) SaveReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	if rv.ID == 0 {
		res, err := r.db.ExecContext(ctx, insertReviewSQL,
			rv.UserID, rv.HotelID, rv.Rating, valStr(rv.Comment), rv.ReviewDate)
		if err != nil {
			return domain.Review{}, fmt.Errorf("insert review: %w", err)
		}
		rv.ID, err = res.LastInsertId()
		return rv, err
	}
	if _, err := r.db.ExecContext(ctx, updateReviewSQL, rv.Rating, valStr(rv.Comment), rv.ReviewDate, rv.ID); err != nil {
		return domain.Review{}, fmt.Errorf("update review %d: %w", rv.ID, err)
	}
	return rv, nil
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteReviewSQL, id)
	if err != nil {
		return fmt.Errorf("delete review %d: %w", id, err)
	}
	return affectedOrNotFound(res, domain.KindReview, id)
}

// ---- payments ----

func scanPayment(s scanner) (domain.Payment, error) {
	var p domain.Payment
	if err := s.Scan(&p.ID, &p.UserID, &p.Amount, &p.Status, &p.PaymentMethod, &p.Date); err != nil {
		return domain.Payment{}, err
	}
	return p, nil
}

func (r *Repo) ListPayments(ctx context.Context, userID int64) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, selectPaymentSQL+"WHERE user_id = ?\nORDER BY payment_date DESC, payment_id DESC", userID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetPayment(ctx context.Context, id int64) (domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, selectPaymentSQL+"WHERE payment_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Payment{}, domain.NotFound(domain.KindPayment, id)
	}
	return p, err
}

// SavePayment only inserts; payments are immutable once recorded.
func (r *Repo) SavePayment(ctx context.Context, p domain.Payment) (domain.Payment, error) {
	if p.ID != 0 {
		return domain.Payment{}, fmt.Errorf("payment %d: %w", p.ID, domain.ErrConflict)
	}
	res, err := r.db.ExecContext(ctx, insertPaymentSQL, p.UserID, p.Amount, p.Status, p.PaymentMethod, p.Date)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	p.ID, err = res.LastInsertId()
	return p, err
}
