package payments

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test_secret"

// signedPayload produces the body and Stripe-Signature header exactly as the
// provider would send them, so HandleWebhookEvent exercises real signature
// verification.
func signedPayload(t *testing.T, payload string) ([]byte, string) {
	t.Helper()
	now := time.Now()
	sig := webhook.ComputeSignature(now, []byte(payload), testWebhookSecret)
	header := fmt.Sprintf("t=%d,v1=%x", now.Unix(), sig)
	return []byte(payload), header
}

func succeededEvent(eventID, intentID string) string {
	return fmt.Sprintf(`{
		"id": %q,
		"api_version": "2023-10-16",
		"type": "payment_intent.succeeded",
		"data": {"object": {
			"id": %q,
			"amount": 10000,
			"application_fee_amount": 1500,
			"metadata": {
				"careconnect_booking_id": "bkg_1",
				"careconnect_recipient_id": "prof_rcp",
				"careconnect_caregiver_id": "prof_cg"
			}
		}}
	}`, eventID, intentID)
}

type webhookFixture struct {
	svc        *DefaultPaymentService
	bookings   *fakeBookings
	payments   *fakePayments
	caregivers *fakeCaregivers
	notifs     *fakeNotifications
	dedupe     *fakeDedupe
}

func newWebhookFixture() *webhookFixture {
	f := &webhookFixture{
		bookings:   newFakeBookings(testBooking()),
		payments:   newFakePayments(),
		caregivers: newFakeCaregivers(testCaregiver()),
		notifs:     &fakeNotifications{},
		dedupe:     newFakeDedupe(),
	}
	f.payments.byBooking["bkg_1"] = models.Payment{
		ID:                    "pay_1",
		BookingID:             "bkg_1",
		StripePaymentIntentID: "pi_1",
		AmountCents:           10000,
		PlatformFeeCents:      1500,
		CaregiverAmountCents:  8500,
		Status:                models.PaymentProcessing,
	}
	f.payments.byIntent["pi_1"] = "bkg_1"
	f.svc = &DefaultPaymentService{
		Bookings:      f.bookings,
		Payments:      f.payments,
		Caregivers:    f.caregivers,
		Recipients:    newFakeRecipients(&models.CareRecipient{ID: "rcp_1", ProfileID: "prof_rcp"}),
		Profiles:      newFakeProfiles(),
		Notifications: f.notifs,
		Dedupe:        f.dedupe,
		FeePercent:    PlatformFeePercent,
		WebhookSecret: testWebhookSecret,
		Logger:        zap.NewNop(),
	}
	return f
}

func TestHandleWebhookEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects bad signature and writes nothing", func(t *testing.T) {
		f := newWebhookFixture()
		payload := succeededEvent("evt_1", "pi_1")

		err := f.svc.HandleWebhookEvent(ctx, []byte(payload), "t=1,v1=deadbeef")
		if !errors.Is(err, ErrInvalidSignature) {
			t.Fatalf("error = %v, want ErrInvalidSignature", err)
		}
		if len(f.bookings.statusCalls) != 0 || len(f.payments.statusLogs) != 0 {
			t.Error("state written despite failed verification")
		}
	})

	t.Run("payment_intent.succeeded confirms booking and notifies caregiver", func(t *testing.T) {
		f := newWebhookFixture()
		payload, header := signedPayload(t, succeededEvent("evt_1", "pi_1"))

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatalf("HandleWebhookEvent: %v", err)
		}

		booking, _ := f.bookings.GetByID(ctx, "bkg_1")
		if booking.Status != models.BookingConfirmed {
			t.Errorf("booking status = %q, want confirmed", booking.Status)
		}
		payment, _ := f.payments.GetByBookingID(ctx, "bkg_1")
		if payment.Status != models.PaymentSucceeded {
			t.Errorf("payment status = %q, want succeeded", payment.Status)
		}

		if len(f.notifs.created) != 1 {
			t.Fatalf("notifications = %d, want 1", len(f.notifs.created))
		}
		notif := f.notifs.created[0]
		if notif.RecipientID != "prof_cg" {
			t.Errorf("notification addressed to %q, want the caregiver", notif.RecipientID)
		}
		if notif.Type != models.NotifPaymentReceived || notif.Title != "Payment Received" {
			t.Errorf("notification = %q / %q", notif.Type, notif.Title)
		}
		// The caregiver sees the booking total, matching what the booking
		// itself displays; the platform cut is not surfaced here.
		want := "You received a payment of $100.00 for your booking on 2026-09-15."
		if notif.Body != want {
			t.Errorf("body = %q, want %q", notif.Body, want)
		}
		if notif.Data["amount_cents"] != "10000" {
			t.Errorf("amount_cents = %q, want the booking total", notif.Data["amount_cents"])
		}
		if len(f.notifs.reminders) != 1 || f.notifs.reminders[0] != "bkg_1" {
			t.Errorf("reminders = %v, want [bkg_1]", f.notifs.reminders)
		}
	})

	t.Run("replayed delivery skips duplicate notification", func(t *testing.T) {
		f := newWebhookFixture()
		payload, header := signedPayload(t, succeededEvent("evt_1", "pi_1"))

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatal(err)
		}
		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatal(err)
		}

		if len(f.notifs.created) != 1 {
			t.Errorf("notifications = %d after replay, want 1", len(f.notifs.created))
		}
		// The idempotent state writes still ran both times.
		if len(f.payments.statusLogs) != 2 {
			t.Errorf("payment status writes = %d, want 2", len(f.payments.statusLogs))
		}
	})

	t.Run("dedupe outage degrades to duplicate notification", func(t *testing.T) {
		f := newWebhookFixture()
		f.dedupe.err = errStorageDown
		payload, header := signedPayload(t, succeededEvent("evt_1", "pi_1"))

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatal(err)
		}
		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatal(err)
		}
		if len(f.notifs.created) != 2 {
			t.Errorf("notifications = %d, want 2 when dedupe is unavailable", len(f.notifs.created))
		}
	})

	t.Run("missing booking metadata is dropped", func(t *testing.T) {
		f := newWebhookFixture()
		payload, header := signedPayload(t, `{
			"id": "evt_nometa",
			"api_version": "2023-10-16",
			"type": "payment_intent.succeeded",
			"data": {"object": {"id": "pi_1", "amount": 10000, "metadata": {}}}
		}`)

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatalf("want acknowledgement, got %v", err)
		}
		if len(f.bookings.statusCalls) != 0 {
			t.Error("booking touched without correlation metadata")
		}
	})

	t.Run("unknown booking acknowledged without error", func(t *testing.T) {
		f := newWebhookFixture()
		delete(f.bookings.bookings, "bkg_1")
		payload, header := signedPayload(t, succeededEvent("evt_1", "pi_1"))

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatalf("want acknowledgement for unknown booking, got %v", err)
		}
	})

	t.Run("transient storage failure propagates for retry", func(t *testing.T) {
		f := newWebhookFixture()
		f.payments.updateErr = errStorageDown
		payload, header := signedPayload(t, succeededEvent("evt_1", "pi_1"))

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); !errors.Is(err, errStorageDown) {
			t.Fatalf("error = %v, want wrapped storage error", err)
		}
	})

	t.Run("payment_intent.payment_failed notifies payer and leaves booking pending", func(t *testing.T) {
		f := newWebhookFixture()
		payload, header := signedPayload(t, `{
			"id": "evt_fail",
			"api_version": "2023-10-16",
			"type": "payment_intent.payment_failed",
			"data": {"object": {
				"id": "pi_1",
				"amount": 10000,
				"metadata": {
					"careconnect_booking_id": "bkg_1",
					"careconnect_recipient_id": "prof_rcp"
				},
				"last_payment_error": {"message": "Your card was declined."}
			}}
		}`)

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatalf("HandleWebhookEvent: %v", err)
		}

		booking, _ := f.bookings.GetByID(ctx, "bkg_1")
		if booking.Status != models.BookingPending {
			t.Errorf("booking status = %q, failed payment must not change it", booking.Status)
		}
		payment, _ := f.payments.GetByBookingID(ctx, "bkg_1")
		if payment.Status != models.PaymentFailed {
			t.Errorf("payment status = %q, want failed", payment.Status)
		}
		if len(f.notifs.created) != 1 {
			t.Fatalf("notifications = %d, want 1", len(f.notifs.created))
		}
		notif := f.notifs.created[0]
		if notif.RecipientID != "prof_rcp" || notif.Title != "Payment Failed" {
			t.Errorf("notification = %+v", notif)
		}
		want := "Payment for your booking on 2026-09-15 failed: Your card was declined."
		if notif.Body != want {
			t.Errorf("body = %q, want %q", notif.Body, want)
		}
		if notif.Data["error"] != "Your card was declined." {
			t.Errorf("error data = %q, want the provider message", notif.Data["error"])
		}
	})

	// Deliveries missing the recipient metadata still reach the payer: the
	// processor falls back to resolving the booking's recipient record.
	t.Run("payment failure resolves payer through the booking", func(t *testing.T) {
		f := newWebhookFixture()
		payload, header := signedPayload(t, `{
			"id": "evt_fail2",
			"api_version": "2023-10-16",
			"type": "payment_intent.payment_failed",
			"data": {"object": {
				"id": "pi_1",
				"metadata": {"careconnect_booking_id": "bkg_1"}
			}}
		}`)

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatal(err)
		}
		if len(f.notifs.created) != 1 {
			t.Fatalf("notifications = %d, want 1", len(f.notifs.created))
		}
		notif := f.notifs.created[0]
		if notif.RecipientID != "prof_rcp" {
			t.Errorf("notification addressed to %q, want the booking's payer", notif.RecipientID)
		}
		want := "Payment for your booking on 2026-09-15 failed: Your payment could not be processed."
		if notif.Body != want {
			t.Errorf("body = %q, want %q", notif.Body, want)
		}
	})

	t.Run("payment failure without booking metadata is dropped", func(t *testing.T) {
		f := newWebhookFixture()
		payload, header := signedPayload(t, `{
			"id": "evt_fail3",
			"api_version": "2023-10-16",
			"type": "payment_intent.payment_failed",
			"data": {"object": {
				"id": "pi_1",
				"metadata": {"careconnect_recipient_id": "prof_rcp"}
			}}
		}`)

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatalf("want acknowledgement, got %v", err)
		}
		if len(f.notifs.created) != 0 {
			t.Errorf("notifications = %d, want none without correlation metadata", len(f.notifs.created))
		}
		if len(f.payments.statusLogs) != 0 {
			t.Errorf("payment touched without correlation metadata")
		}
	})

	t.Run("account.updated flips onboarding when capable", func(t *testing.T) {
		f := newWebhookFixture()
		f.caregivers.caregivers["cg_1"].StripeOnboardingComplete = false
		payload, header := signedPayload(t, `{
			"id": "evt_acct",
			"api_version": "2023-10-16",
			"type": "account.updated",
			"data": {"object": {"id": "acct_cg", "charges_enabled": true, "payouts_enabled": true}}
		}`)

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatalf("HandleWebhookEvent: %v", err)
		}
		if !f.caregivers.caregivers["cg_1"].StripeOnboardingComplete {
			t.Error("onboarding flag not set")
		}
	})

	t.Run("account.updated without payouts leaves flag alone", func(t *testing.T) {
		f := newWebhookFixture()
		payload, header := signedPayload(t, `{
			"id": "evt_acct2",
			"api_version": "2023-10-16",
			"type": "account.updated",
			"data": {"object": {"id": "acct_cg", "charges_enabled": true, "payouts_enabled": false}}
		}`)

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatal(err)
		}
		if len(f.caregivers.markedCalls) != 0 {
			t.Error("onboarding marked despite missing payouts capability")
		}
		// Once true the flag never reverts; the incapable update is ignored,
		// not applied in reverse.
		if !f.caregivers.caregivers["cg_1"].StripeOnboardingComplete {
			t.Error("onboarding flag regressed")
		}
	})

	t.Run("unrecognized event type is acknowledged", func(t *testing.T) {
		f := newWebhookFixture()
		payload, header := signedPayload(t, `{
			"id": "evt_other",
			"api_version": "2023-10-16",
			"type": "charge.refunded",
			"data": {"object": {"id": "ch_1"}}
		}`)

		if err := f.svc.HandleWebhookEvent(ctx, payload, header); err != nil {
			t.Fatalf("want acknowledgement, got %v", err)
		}
	})
}
