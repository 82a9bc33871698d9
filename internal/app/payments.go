package app

import (
	"context"
	"time"

	"hotel_booking/internal/domain"
)

// PaymentService records card payments. There is no gateway behind it:
// card details get a format check and the payment is stored as confirmed.
type PaymentService struct {
	repo domain.PaymentRepository
	now  func() time.Time
}

func NewPaymentService(r domain.PaymentRepository) *PaymentService {
	return &PaymentService{repo: r, now: time.Now}
}

type PaymentRequest struct {
	UserID         int64
	Amount         float64
	CardNumber     string
	ExpirationDate string // MM/YY
	CVV            string
}

func (s *PaymentService) Process(ctx context.Context, in PaymentRequest) (domain.Payment, error) {
	if in.UserID <= 0 {
		return domain.Payment{}, domain.InvalidInput("userId", "UserId is required.")
	}
	if in.Amount <= 0 {
		return domain.Payment{}, domain.InvalidInput("amount", "Amount must be greater than zero.")
	}
	now := s.now()
	if !validCard(in.CardNumber, in.ExpirationDate, in.CVV, now) {
		return domain.Payment{}, domain.ErrPaymentDeclined
	}
	return s.repo.SavePayment(ctx, domain.Payment{
		UserID:        in.UserID,
		Amount:        in.Amount,
		Status:        "confirmed",
		PaymentMethod: "Credit Card",
		Date:          now.UTC(),
	})
}

func (s *PaymentService) Get(ctx context.Context, id int64) (domain.Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

func (s *PaymentService) ByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return s.repo.ListPayments(ctx, userID)
}

// validCard: 16 digits, an MM/YY expiry whose first day is still ahead, 3-digit CVV.
func validCard(number, expiry, cvv string, now time.Time) bool {
	if len(number) != 16 || !digits(number) || len(cvv) != 3 || !digits(cvv) {
		return false
	}
	exp, err := time.ParseInLocation("01/06", expiry, now.Location())
	if err != nil {
		return false
	}
	return exp.After(now)
}

func digits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
