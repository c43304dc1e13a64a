package payments

import (
	"context"
	"fmt"

	"github.com/msutyak/careconnect/models"

	"go.uber.org/zap"
)

// CreatePaymentIntent issues a charge authorization for a booking: it loads
// the booking with its caregiver and paying recipient, computes the fee
// split, resolves the recipient's Stripe customer, and creates a destination
// charge routed to the caregiver's connected account. The payment record and
// the booking's split are persisted before returning.
//
// The steps are not atomic: a failure mid-way leaves earlier writes
// committed. Each write is an idempotent upsert keyed by a stable id, so a
// client retry converges rather than duplicating state.
func (s *DefaultPaymentService) CreatePaymentIntent(ctx context.Context, bookingID string) (*PaymentSheet, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingNotFound, err)
	}

	caregiver, err := s.Caregivers.GetByID(ctx, booking.CaregiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: caregiver %s: %v", ErrProfileNotFound, booking.CaregiverID, err)
	}
	// Gate only on the connected account existing. The onboarding-complete
	// flag is set asynchronously by account.updated and a missed delivery
	// must not permanently block payouts; Stripe itself rejects charges to
	// accounts that cannot receive them.
	if caregiver.StripeAccountID == "" {
		return nil, ErrCaregiverNotOnboarded
	}

	split, err := ComputeSplit(booking.TotalAmountCents, s.FeePercent)
	if err != nil {
		return nil, err
	}

	recipient, err := s.Recipients.GetByID(ctx, booking.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("%w: recipient %s: %v", ErrProfileNotFound, booking.RecipientID, err)
	}
	payerProfile, err := s.Profiles.GetByID(ctx, recipient.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("%w: profile %s: %v", ErrProfileNotFound, recipient.ProfileID, err)
	}

	// Resolve or create the payer's billing identity. The lookup-then-create
	// is not transactionally guarded: two concurrent first payments by the
	// same payer may each create a customer. Accepted risk.
	customerID, err := s.Gateway.FindCustomerByEmail(ctx, payerProfile.Email)
	if err != nil {
		return nil, err
	}
	if customerID == "" {
		customerID, err = s.Gateway.CreateCustomer(ctx, CustomerSpec{
			Email:     payerProfile.Email,
			Name:      payerProfile.FullName(),
			ProfileID: payerProfile.ID,
		})
		if err != nil {
			return nil, err
		}
	}

	ephemeralKey, err := s.Gateway.CreateEphemeralKey(ctx, customerID)
	if err != nil {
		return nil, err
	}

	intent, err := s.Gateway.CreatePaymentIntent(ctx, IntentSpec{
		AmountCents:          booking.TotalAmountCents,
		ApplicationFeeCents:  split.PlatformFeeCents,
		CustomerID:           customerID,
		DestinationAccountID: caregiver.StripeAccountID,
		Metadata: map[string]string{
			metaBookingID:   booking.ID,
			metaRecipientID: recipient.ProfileID,
			metaCaregiverID: caregiver.ProfileID,
		},
	})
	if err != nil {
		return nil, err
	}

	// One payment record per booking: re-issuing an intent updates the
	// existing row in place.
	err = s.Payments.UpsertByBookingID(ctx, models.Payment{
		BookingID:             booking.ID,
		StripePaymentIntentID: intent.ID,
		AmountCents:           booking.TotalAmountCents,
		PlatformFeeCents:      split.PlatformFeeCents,
		CaregiverAmountCents:  split.CaregiverAmountCents,
		Status:                models.PaymentProcessing,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert payment record: %w", err)
	}

	if err := s.Bookings.SetFeeSplit(ctx, booking.ID, split.PlatformFeeCents, split.CaregiverAmountCents); err != nil {
		return nil, fmt.Errorf("persist fee split: %w", err)
	}

	s.Logger.Info("payment intent issued",
		zap.String("booking", booking.ID),
		zap.String("payment_intent", intent.ID),
		zap.Int64("amount_cents", booking.TotalAmountCents),
		zap.Int64("platform_fee_cents", split.PlatformFeeCents))

	return &PaymentSheet{
		ClientSecret: intent.ClientSecret,
		EphemeralKey: ephemeralKey,
		CustomerID:   customerID,
	}, nil
}
