package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
)

func futureExpiry() string { return time.Now().AddDate(2, 0, 0).Format("01/06") }

func TestProcessPayment_Confirmed(t *testing.T) {
	st := newStore()
	svc := app.NewPaymentService(st)

	p, err := svc.Process(context.Background(), app.PaymentRequest{
		UserID: 3, Amount: 250.5, CardNumber: "4111111111111111", ExpirationDate: futureExpiry(), CVV: "123",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if p.Status != "confirmed" || p.PaymentMethod != "Credit Card" || p.ID == 0 || p.Date.IsZero() {
		t.Fatalf("unexpected payment: %+v", p)
	}

	list, err := svc.ByUser(context.Background(), 3)
	if err != nil || len(list) != 1 {
		t.Fatalf("by user: %+v %v", list, err)
	}
}

func TestProcessPayment_Declined(t *testing.T) {
	cases := map[string]app.PaymentRequest{
		"short card":  {CardNumber: "411111111111", ExpirationDate: futureExpiry(), CVV: "123"},
		"letters":     {CardNumber: "41111111111111ab", ExpirationDate: futureExpiry(), CVV: "123"},
		"expired":     {CardNumber: "4111111111111111", ExpirationDate: "01/20", CVV: "123"},
		"bad expiry":  {CardNumber: "4111111111111111", ExpirationDate: "13/30", CVV: "123"},
		"cvv length":  {CardNumber: "4111111111111111", ExpirationDate: futureExpiry(), CVV: "12"},
		"cvv letters": {CardNumber: "4111111111111111", ExpirationDate: futureExpiry(), CVV: "1a3"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			st := newStore()
			req.UserID, req.Amount = 1, 10
			if _, err := app.NewPaymentService(st).Process(context.Background(), req); !errors.Is(err, domain.ErrPaymentDeclined) {
				t.Fatalf("expected ErrPaymentDeclined, got %v", err)
			}
			if len(st.payments) != 0 {
				t.Fatalf("declined payment was stored")
			}
		})
	}
}

func TestProcessPayment_InvalidAmount(t *testing.T) {
	svc := app.NewPaymentService(newStore())
	_, err := svc.Process(context.Background(), app.PaymentRequest{
		UserID: 1, Amount: 0, CardNumber: "4111111111111111", ExpirationDate: futureExpiry(), CVV: "123",
	})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetPayment_Missing(t *testing.T) {
	_, err := app.NewPaymentService(newStore()).Get(context.Background(), 8)
	if err == nil || err.Error() != "Payment with ID 8 not found." {
		t.Fatalf("unexpected err: %v", err)
	}
}
