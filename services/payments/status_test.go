package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/msutyak/careconnect/models"
)

func TestGetPaymentForBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("payer reads the record", func(t *testing.T) {
		f := newWebhookFixture()

		payment, err := f.svc.GetPaymentForBooking(ctx, "prof_rcp", "bkg_1")
		if err != nil {
			t.Fatalf("GetPaymentForBooking: %v", err)
		}
		if payment.ID != "pay_1" || payment.Status != models.PaymentProcessing {
			t.Errorf("payment = %+v", payment)
		}
	})

	t.Run("caregiver reads the record", func(t *testing.T) {
		f := newWebhookFixture()

		payment, err := f.svc.GetPaymentForBooking(ctx, "prof_cg", "bkg_1")
		if err != nil {
			t.Fatalf("GetPaymentForBooking: %v", err)
		}
		if payment.BookingID != "bkg_1" {
			t.Errorf("booking = %q, want bkg_1", payment.BookingID)
		}
	})

	t.Run("outsider is rejected", func(t *testing.T) {
		f := newWebhookFixture()

		_, err := f.svc.GetPaymentForBooking(ctx, "prof_stranger", "bkg_1")
		if !errors.Is(err, ErrNotParticipant) {
			t.Fatalf("error = %v, want ErrNotParticipant", err)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newWebhookFixture()

		_, err := f.svc.GetPaymentForBooking(ctx, "prof_rcp", "bkg_missing")
		if !errors.Is(err, ErrBookingNotFound) {
			t.Fatalf("error = %v, want ErrBookingNotFound", err)
		}
	})

	t.Run("booking without a payment record", func(t *testing.T) {
		f := newWebhookFixture()
		delete(f.payments.byBooking, "bkg_1")

		_, err := f.svc.GetPaymentForBooking(ctx, "prof_rcp", "bkg_1")
		if !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("error = %v, want ErrPaymentNotFound", err)
		}
	})
}
