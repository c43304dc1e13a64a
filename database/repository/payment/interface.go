package paymentRepo

import (
	"context"

	"github.com/msutyak/careconnect/database"
	"github.com/msutyak/careconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*models.Payment, error)
	// UpsertByBookingID creates or replaces the single payment record for a
	// booking. Re-issuing an intent for the same booking updates the row in
	// place rather than inserting a duplicate.
	UpsertByBookingID(ctx context.Context, payment models.Payment) error
	// UpdateStatusByIntentID finalizes a record matched on the Stripe
	// payment-intent id and reports how many records matched.
	UpdateStatusByIntentID(ctx context.Context, intentID, status string) (int64, error)
}

type mongoPaymentRepo struct {
	coll *mongo.Collection
}

// NewMongoPaymentRepo returns a PaymentRepository backed by MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	return &mongoPaymentRepo{
		coll: database.DB().Collection("payments"),
	}
}
