package payments

import (
	"context"
	"time"

	bookingRepo "github.com/msutyak/careconnect/database/repository/booking"
	caregiverRepo "github.com/msutyak/careconnect/database/repository/caregiver"
	paymentRepo "github.com/msutyak/careconnect/database/repository/payment"
	profileRepo "github.com/msutyak/careconnect/database/repository/profile"
	recipientRepo "github.com/msutyak/careconnect/database/repository/recipient"
	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/notification"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Metadata keys embedded on Stripe objects so asynchronous webhook events can
// be correlated back to domain entities. Metadata is the sole correlation
// link: an event without it is dropped, not guessed at.
const (
	metaBookingID   = "careconnect_booking_id"
	metaRecipientID = "careconnect_recipient_id"
	metaCaregiverID = "careconnect_caregiver_id"
)

// PaymentSheet is everything the mobile client needs to confirm a charge.
type PaymentSheet struct {
	ClientSecret string `json:"clientSecret"`
	EphemeralKey string `json:"ephemeralKey"`
	CustomerID   string `json:"customerId"`
}

// OnboardingLink is the redirect the caregiver follows to verify identity and
// bank details with Stripe.
type OnboardingLink struct {
	URL             string `json:"url"`
	StripeAccountID string `json:"stripeAccountId"`
}

// PaymentService implements the booking-payment reconciliation flow: intent
// issuance, connect onboarding, and webhook-driven state reconciliation.
type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, bookingID string) (*PaymentSheet, error)
	CreateOnboardingLink(ctx context.Context, profileID, returnURL, refreshURL string) (*OnboardingLink, error)
	GetPaymentForBooking(ctx context.Context, profileID, bookingID string) (*models.Payment, error)
	HandleWebhookEvent(ctx context.Context, payload []byte, sigHeader string) error
}

// DedupeStore remembers webhook event ids so replays skip their user-visible
// side effects. State writes are idempotent regardless; this only suppresses
// duplicate notifications.
type DedupeStore interface {
	// MarkSeen records the event id and reports whether it had been seen.
	MarkSeen(ctx context.Context, eventID string) (bool, error)
}

// DefaultPaymentService is the production implementation. Every invocation
// re-reads current state through the repositories; nothing is cached between
// requests.
type DefaultPaymentService struct {
	Gateway       Gateway
	Bookings      bookingRepo.BookingRepository
	Payments      paymentRepo.PaymentRepository
	Caregivers    caregiverRepo.CaregiverRepository
	Recipients    recipientRepo.RecipientRepository
	Profiles      profileRepo.ProfileRepository
	Notifications notification.NotificationService
	Dedupe        DedupeStore // nil disables replay dedupe
	FeePercent    float64
	WebhookSecret string
	Logger        *zap.Logger
}

// redisDedupe is the production DedupeStore: SETNX with a TTL comfortably
// longer than Stripe's retry window.
type redisDedupe struct {
	client *redis.Client
}

const dedupeTTL = 48 * time.Hour

// NewRedisDedupe wraps a Redis client as a DedupeStore.
func NewRedisDedupe(client *redis.Client) DedupeStore {
	return &redisDedupe{client: client}
}

func (d *redisDedupe) MarkSeen(ctx context.Context, eventID string) (bool, error) {
	fresh, err := d.client.SetNX(ctx, "stripe:event:"+eventID, 1, dedupeTTL).Result()
	if err != nil {
		return false, err
	}
	return !fresh, nil
}

// alreadyProcessed is best effort: when the dedupe store is unavailable the
// event is treated as new, which at worst duplicates a notification.
func (s *DefaultPaymentService) alreadyProcessed(ctx context.Context, eventID string) bool {
	if s.Dedupe == nil || eventID == "" {
		return false
	}
	seen, err := s.Dedupe.MarkSeen(ctx, eventID)
	if err != nil {
		s.Logger.Warn("webhook dedupe store unavailable", zap.Error(err))
		return false
	}
	return seen
}
