package paymentRepo

import (
	"context"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByBookingID returns the payment record owned by a booking.
func (r *mongoPaymentRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// UpsertByBookingID writes the payment record keyed by booking id. A single
// upsert keeps the one-record-per-booking invariant even under concurrent
// intent issuance for the same booking.
func (r *mongoPaymentRepo) UpsertByBookingID(ctx context.Context, payment models.Payment) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"stripe_payment_intent_id": payment.StripePaymentIntentID,
			"amount_cents":             payment.AmountCents,
			"platform_fee_cents":       payment.PlatformFeeCents,
			"caregiver_amount_cents":   payment.CaregiverAmountCents,
			"status":                   payment.Status,
			"updated_at":               now,
		},
		"$setOnInsert": bson.M{
			"id":         uuid.New().String(),
			"booking_id": payment.BookingID,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.coll.UpdateOne(ctx, bson.M{"booking_id": payment.BookingID}, update, opts)
	return err
}

// UpdateStatusByIntentID sets the status of the record carrying the given
// payment-intent id. Matching on the intent id rather than the booking id
// tolerates the record having been re-keyed since the intent was issued.
func (r *mongoPaymentRepo) UpdateStatusByIntentID(ctx context.Context, intentID, status string) (int64, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"stripe_payment_intent_id": intentID}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
