package models

import "time"

// Payment statuses. A record moves processing -> succeeded or
// processing -> failed; the webhook processor finalizes it.
const (
	PaymentProcessing = "processing"
	PaymentSucceeded  = "succeeded"
	PaymentFailed     = "failed"
)

// Payment represents one Stripe charge attempt tied to a booking. At most one
// non-superseded record exists per booking: re-issuing a payment intent for
// the same booking updates the row in place, keyed by booking id.
type Payment struct {
	ID                    string    `bson:"id" json:"id"`
	BookingID             string    `bson:"booking_id" json:"bookingId"`
	StripePaymentIntentID string    `bson:"stripe_payment_intent_id,omitempty" json:"stripePaymentIntentId,omitempty"`
	AmountCents           int64     `bson:"amount_cents" json:"amountCents"`
	PlatformFeeCents      int64     `bson:"platform_fee_cents" json:"platformFeeCents"`
	CaregiverAmountCents  int64     `bson:"caregiver_amount_cents" json:"caregiverAmountCents"`
	Status                string    `bson:"status" json:"status"`
	CreatedAt             time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt             time.Time `bson:"updated_at" json:"updatedAt"`
}
