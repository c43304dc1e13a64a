package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/msutyak/careconnect/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleWebhookEvent verifies a Stripe webhook delivery and dispatches it to
// the matching reconciliation handler. Unrecognized event types are logged
// and acknowledged so Stripe stops redelivering them.
//
// Error semantics matter here: a returned error signals the HTTP layer to
// respond non-2xx, which makes Stripe retry the delivery. Handlers therefore
// return errors only for transient failures (a storage write that should be
// retried) and swallow permanent ones (unknown booking, missing metadata)
// after logging.
func (s *DefaultPaymentService) HandleWebhookEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEvent(payload, sigHeader, s.WebhookSecret)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	switch string(event.Type) {
	case "payment_intent.succeeded":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			s.Logger.Error("malformed payment_intent.succeeded payload", zap.String("event", event.ID), zap.Error(err))
			return nil
		}
		return s.handlePaymentSucceeded(ctx, event.ID, &pi)

	case "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			s.Logger.Error("malformed payment_intent.payment_failed payload", zap.String("event", event.ID), zap.Error(err))
			return nil
		}
		return s.handlePaymentFailed(ctx, event.ID, &pi)

	case "account.updated":
		var acct stripe.Account
		if err := json.Unmarshal(event.Data.Raw, &acct); err != nil {
			s.Logger.Error("malformed account.updated payload", zap.String("event", event.ID), zap.Error(err))
			return nil
		}
		return s.handleAccountUpdated(ctx, &acct)

	default:
		s.Logger.Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil
	}
}

// handlePaymentSucceeded finalizes the payment record, confirms the booking,
// and notifies the caregiver. The state writes run on every delivery (they
// are idempotent); only the notification and reminder are gated behind the
// event-id dedupe, since those are the effects a user would notice twice.
func (s *DefaultPaymentService) handlePaymentSucceeded(ctx context.Context, eventID string, pi *stripe.PaymentIntent) error {
	bookingID := pi.Metadata[metaBookingID]
	caregiverID := pi.Metadata[metaCaregiverID]
	if bookingID == "" {
		s.Logger.Warn("payment_intent.succeeded without booking metadata", zap.String("payment_intent", pi.ID))
		return nil
	}

	matched, err := s.Payments.UpdateStatusByIntentID(ctx, pi.ID, models.PaymentSucceeded)
	if err != nil {
		return fmt.Errorf("finalize payment record: %w", err)
	}
	if matched == 0 {
		s.Logger.Warn("no payment record for succeeded intent",
			zap.String("payment_intent", pi.ID), zap.String("booking", bookingID))
	}

	booking, err := s.Bookings.UpdateStatus(ctx, bookingID, models.BookingConfirmed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			s.Logger.Warn("succeeded intent references unknown booking",
				zap.String("payment_intent", pi.ID), zap.String("booking", bookingID))
			return nil
		}
		return fmt.Errorf("confirm booking %s: %w", bookingID, err)
	}

	s.Logger.Info("booking confirmed by payment",
		zap.String("booking", bookingID),
		zap.String("payment_intent", pi.ID))

	if s.alreadyProcessed(ctx, eventID) {
		s.Logger.Info("duplicate webhook delivery, skipping notifications", zap.String("event", eventID))
		return nil
	}

	caregiver, err := s.Caregivers.GetByID(ctx, booking.CaregiverID)
	if err != nil {
		s.Logger.Error("caregiver lookup failed for payment notification",
			zap.String("caregiver", booking.CaregiverID), zap.Error(err))
		return nil
	}
	payeeProfileID := caregiver.ProfileID
	if caregiverID != "" && caregiverID != payeeProfileID {
		s.Logger.Warn("metadata caregiver does not match booking caregiver",
			zap.String("metadata_caregiver", caregiverID), zap.String("booking_caregiver", payeeProfileID))
	}

	amount := float64(booking.TotalAmountCents) / 100
	notif := models.Notification{
		RecipientID: payeeProfileID,
		Type:        models.NotifPaymentReceived,
		Title:       "Payment Received",
		Body:        fmt.Sprintf("You received a payment of $%.2f for your booking on %s.", amount, booking.Date),
		Data: map[string]string{
			"booking_id":        booking.ID,
			"payment_intent_id": pi.ID,
			"amount_cents":      fmt.Sprintf("%d", booking.TotalAmountCents),
		},
	}
	if err := s.Notifications.Create(ctx, notif); err != nil {
		s.Logger.Error("payment notification not created", zap.String("booking", booking.ID), zap.Error(err))
	}

	if payerProfileID := s.payerProfileID(ctx, pi, booking); payerProfileID != "" {
		if err := s.Notifications.ScheduleBookingReminder(ctx, *booking, payerProfileID); err != nil {
			s.Logger.Warn("booking reminder not scheduled", zap.String("booking", booking.ID), zap.Error(err))
		}
	}

	return nil
}

// payerProfileID resolves the paying profile for a booking, preferring the
// intent metadata over a repository round trip.
func (s *DefaultPaymentService) payerProfileID(ctx context.Context, pi *stripe.PaymentIntent, booking *models.Booking) string {
	if id := pi.Metadata[metaRecipientID]; id != "" {
		return id
	}
	recipient, err := s.Recipients.GetByID(ctx, booking.RecipientID)
	if err != nil {
		s.Logger.Warn("payer lookup failed",
			zap.String("recipient", booking.RecipientID), zap.Error(err))
		return ""
	}
	return recipient.ProfileID
}

// handlePaymentFailed marks the payment record failed and tells the payer.
// The booking is left untouched: it stays pending and the recipient can try
// paying again.
func (s *DefaultPaymentService) handlePaymentFailed(ctx context.Context, eventID string, pi *stripe.PaymentIntent) error {
	bookingID := pi.Metadata[metaBookingID]
	if bookingID == "" {
		s.Logger.Warn("payment_intent.payment_failed without booking metadata", zap.String("payment_intent", pi.ID))
		return nil
	}

	matched, err := s.Payments.UpdateStatusByIntentID(ctx, pi.ID, models.PaymentFailed)
	if err != nil {
		return fmt.Errorf("mark payment failed: %w", err)
	}
	if matched == 0 {
		s.Logger.Warn("no payment record for failed intent", zap.String("payment_intent", pi.ID))
	}

	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		s.Logger.Warn("failed intent references unknown booking",
			zap.String("payment_intent", pi.ID), zap.String("booking", bookingID))
		return nil
	}

	payerID := s.payerProfileID(ctx, pi, booking)
	if payerID == "" {
		return nil
	}
	if s.alreadyProcessed(ctx, eventID) {
		return nil
	}

	reason := "Your payment could not be processed."
	if pi.LastPaymentError != nil && pi.LastPaymentError.Msg != "" {
		reason = pi.LastPaymentError.Msg
	}
	notif := models.Notification{
		RecipientID: payerID,
		Type:        models.NotifPaymentSent,
		Title:       "Payment Failed",
		Body:        fmt.Sprintf("Payment for your booking on %s failed: %s", booking.Date, reason),
		Data: map[string]string{
			"booking_id":        bookingID,
			"payment_intent_id": pi.ID,
			"error":             reason,
		},
	}
	if err := s.Notifications.Create(ctx, notif); err != nil {
		s.Logger.Error("payment failure notification not created", zap.String("booking", bookingID), zap.Error(err))
	}
	return nil
}

// handleAccountUpdated flips the caregiver's onboarding flag once Stripe
// reports both charges and payouts enabled. The flag only ever goes true:
// a later event with capabilities revoked does not clear it, payment intent
// issuance would fail at Stripe anyway and a flapping flag confuses the
// client more than it protects anything.
func (s *DefaultPaymentService) handleAccountUpdated(ctx context.Context, acct *stripe.Account) error {
	if !acct.ChargesEnabled || !acct.PayoutsEnabled {
		s.Logger.Debug("account update without full capabilities", zap.String("stripe_account", acct.ID))
		return nil
	}

	matched, err := s.Caregivers.MarkOnboardingComplete(ctx, acct.ID)
	if err != nil {
		return fmt.Errorf("mark onboarding complete: %w", err)
	}
	if matched == 0 {
		s.Logger.Warn("account.updated for unknown connected account", zap.String("stripe_account", acct.ID))
		return nil
	}

	s.Logger.Info("caregiver onboarding complete", zap.String("stripe_account", acct.ID))
	return nil
}
