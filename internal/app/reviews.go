package app

import (
	"context"
	"time"

	"hotel_booking/internal/domain"
)

type ReviewService struct {
	repo domain.ReviewRepository
	now  func() time.Time
}

func NewReviewService(r domain.ReviewRepository) *ReviewService {
	return &ReviewService{repo: r, now: time.Now}
}

func (s *ReviewService) Add(ctx context.Context, r domain.Review) (domain.Review, error) {
	if r.UserID <= 0 || r.HotelID <= 0 {
		return domain.Review{}, domain.InvalidInput("userId/hotelId", "User ID and Hotel ID are required.")
	}
	if err := validateReview(r); err != nil {
		return domain.Review{}, err
	}
	if r.ReviewDate.IsZero() {
		r.ReviewDate = s.now().UTC()
	}
	r.ID = 0
	return s.repo.SaveReview(ctx, r)
}

func (s *ReviewService) Get(ctx context.Context, id int64) (domain.Review, error) {
	return s.repo.GetReview(ctx, id)
}

func (s *ReviewService) List(ctx context.Context) ([]domain.Review, error) {
	return s.repo.ListReviews(ctx, domain.ReviewFilter{})
}

func (s *ReviewService) ByHotel(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	return s.repo.ListReviews(ctx, domain.ReviewFilter{HotelID: &hotelID})
}

func (s *ReviewService) ByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	return s.repo.ListReviews(ctx, domain.ReviewFilter{UserID: &userID})
}

// Update replaces rating and comment; authorship and hotel stay fixed.
func (s *ReviewService) Update(ctx context.Context, id int64, in domain.Review) (domain.Review, error) {
	cur, err := s.repo.GetReview(ctx, id)
	if err != nil {
		return domain.Review{}, err
	}
	cur.Rating = in.Rating
	cur.Comment = in.Comment
	if !in.ReviewDate.IsZero() {
		cur.ReviewDate = in.ReviewDate
	}
	if err := validateReview(cur); err != nil {
		return domain.Review{}, err
	}
	return s.repo.SaveReview(ctx, cur)
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteReview(ctx, id)
}

func validateReview(r domain.Review) error {
	if r.Rating < 1 || r.Rating > 5 {
		return domain.InvalidInput("rating", "Rating must be between 1 and 5.")
	}
	if r.Comment != nil && len(*r.Comment) > 500 {
		return domain.InvalidInput("comment", "Comment can't be longer than 500 characters.")
	}
	return nil
}
