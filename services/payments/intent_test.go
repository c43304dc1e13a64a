package payments

import (
	"context"
	"errors"
	"testing"

	"github.com/msutyak/careconnect/models"

	"go.uber.org/zap"
)

func testBooking() *models.Booking {
	return &models.Booking{
		ID:               "bkg_1",
		RecipientID:      "rcp_1",
		CaregiverID:      "cg_1",
		Date:             "2026-09-15",
		StartTime:        "09:00",
		EndTime:          "13:00",
		Status:           models.BookingPending,
		TotalAmountCents: 10000,
	}
}

func testCaregiver() *models.Caregiver {
	return &models.Caregiver{
		ID:                       "cg_1",
		ProfileID:                "prof_cg",
		StripeAccountID:          "acct_cg",
		StripeOnboardingComplete: true,
		HourlyRateCents:          2500,
	}
}

type intentFixture struct {
	svc        *DefaultPaymentService
	bookings   *fakeBookings
	payments   *fakePayments
	caregivers *fakeCaregivers
	gateway    *fakeGateway
	notifs     *fakeNotifications
}

func newIntentFixture() *intentFixture {
	f := &intentFixture{
		bookings:   newFakeBookings(testBooking()),
		payments:   newFakePayments(),
		caregivers: newFakeCaregivers(testCaregiver()),
		gateway:    newFakeGateway(),
		notifs:     &fakeNotifications{},
	}
	f.svc = &DefaultPaymentService{
		Gateway:    f.gateway,
		Bookings:   f.bookings,
		Payments:   f.payments,
		Caregivers: f.caregivers,
		Recipients: newFakeRecipients(&models.CareRecipient{ID: "rcp_1", ProfileID: "prof_rcp"}),
		Profiles: newFakeProfiles(
			&models.Profile{ID: "prof_rcp", FirstName: "Dana", LastName: "Reyes", Email: "dana@example.com"},
			&models.Profile{ID: "prof_cg", FirstName: "Sam", LastName: "Okafor", Email: "sam@example.com"},
		),
		Notifications: f.notifs,
		FeePercent:    PlatformFeePercent,
		WebhookSecret: "whsec_test",
		Logger:        zap.NewNop(),
	}
	return f
}

func TestCreatePaymentIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("issues intent with split and metadata", func(t *testing.T) {
		f := newIntentFixture()

		sheet, err := f.svc.CreatePaymentIntent(ctx, "bkg_1")
		if err != nil {
			t.Fatalf("CreatePaymentIntent: %v", err)
		}
		if sheet.ClientSecret == "" || sheet.EphemeralKey == "" || sheet.CustomerID == "" {
			t.Fatalf("incomplete payment sheet: %+v", sheet)
		}

		if len(f.gateway.createdIntents) != 1 {
			t.Fatalf("created %d intents, want 1", len(f.gateway.createdIntents))
		}
		spec := f.gateway.createdIntents[0]
		if spec.AmountCents != 10000 {
			t.Errorf("amount = %d, want 10000", spec.AmountCents)
		}
		if spec.ApplicationFeeCents != 1500 {
			t.Errorf("application fee = %d, want 1500", spec.ApplicationFeeCents)
		}
		if spec.DestinationAccountID != "acct_cg" {
			t.Errorf("destination = %q, want acct_cg", spec.DestinationAccountID)
		}
		if spec.Metadata["careconnect_booking_id"] != "bkg_1" ||
			spec.Metadata["careconnect_recipient_id"] != "prof_rcp" ||
			spec.Metadata["careconnect_caregiver_id"] != "prof_cg" {
			t.Errorf("metadata = %v", spec.Metadata)
		}

		payment, err := f.payments.GetByBookingID(ctx, "bkg_1")
		if err != nil {
			t.Fatalf("payment record not persisted: %v", err)
		}
		if payment.Status != models.PaymentProcessing {
			t.Errorf("payment status = %q, want processing", payment.Status)
		}
		if payment.PlatformFeeCents+payment.CaregiverAmountCents != payment.AmountCents {
			t.Errorf("persisted split does not sum: %+v", payment)
		}
		if !f.bookings.splitApplied {
			t.Error("fee split not written to booking")
		}
	})

	t.Run("reissuing updates the payment record in place", func(t *testing.T) {
		f := newIntentFixture()

		if _, err := f.svc.CreatePaymentIntent(ctx, "bkg_1"); err != nil {
			t.Fatal(err)
		}
		if _, err := f.svc.CreatePaymentIntent(ctx, "bkg_1"); err != nil {
			t.Fatal(err)
		}

		if f.payments.upserts != 2 {
			t.Fatalf("upsert calls = %d, want 2", f.payments.upserts)
		}
		if len(f.payments.byBooking) != 1 {
			t.Fatalf("payment records = %d, want 1", len(f.payments.byBooking))
		}
		payment, _ := f.payments.GetByBookingID(ctx, "bkg_1")
		if payment.StripePaymentIntentID != "pi_2" {
			t.Errorf("record holds intent %q, want the latest pi_2", payment.StripePaymentIntentID)
		}
	})

	t.Run("reuses existing customer", func(t *testing.T) {
		f := newIntentFixture()
		f.gateway.customers["dana@example.com"] = "cus_existing"

		sheet, err := f.svc.CreatePaymentIntent(ctx, "bkg_1")
		if err != nil {
			t.Fatal(err)
		}
		if sheet.CustomerID != "cus_existing" {
			t.Errorf("customer = %q, want cus_existing", sheet.CustomerID)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newIntentFixture()

		_, err := f.svc.CreatePaymentIntent(ctx, "bkg_missing")
		if !errors.Is(err, ErrBookingNotFound) {
			t.Fatalf("error = %v, want ErrBookingNotFound", err)
		}
	})

	t.Run("caregiver without connected account writes nothing", func(t *testing.T) {
		f := newIntentFixture()
		f.caregivers.caregivers["cg_1"].StripeAccountID = ""
		f.caregivers.caregivers["cg_1"].StripeOnboardingComplete = false

		_, err := f.svc.CreatePaymentIntent(ctx, "bkg_1")
		if !errors.Is(err, ErrCaregiverNotOnboarded) {
			t.Fatalf("error = %v, want ErrCaregiverNotOnboarded", err)
		}
		if len(f.gateway.createdIntents) != 0 {
			t.Error("intent created despite onboarding guard")
		}
		if f.payments.upserts != 0 || f.bookings.splitApplied {
			t.Error("storage written despite onboarding guard")
		}
	})

	// The onboarding-complete flag is flipped by an asynchronous webhook; a
	// caregiver whose account.updated event was lost can still be paid as
	// long as the connected account exists.
	t.Run("pending onboarding flag does not block the intent", func(t *testing.T) {
		f := newIntentFixture()
		f.caregivers.caregivers["cg_1"].StripeOnboardingComplete = false

		sheet, err := f.svc.CreatePaymentIntent(ctx, "bkg_1")
		if err != nil {
			t.Fatalf("CreatePaymentIntent: %v", err)
		}
		if sheet.ClientSecret == "" {
			t.Error("no client secret returned")
		}
		if len(f.gateway.createdIntents) != 1 {
			t.Fatalf("created %d intents, want 1", len(f.gateway.createdIntents))
		}
		if got := f.gateway.createdIntents[0].DestinationAccountID; got != "acct_cg" {
			t.Errorf("destination = %q, want acct_cg", got)
		}
	})

	t.Run("persistence failure surfaces", func(t *testing.T) {
		f := newIntentFixture()
		f.payments.upsertErr = errStorageDown

		_, err := f.svc.CreatePaymentIntent(ctx, "bkg_1")
		if err == nil || !errors.Is(err, errStorageDown) {
			t.Fatalf("error = %v, want wrapped storage error", err)
		}
	})
}
