package bookingRepo

import (
	"context"

	"github.com/msutyak/careconnect/database"
	"github.com/msutyak/careconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingRepository interface {
	Create(ctx context.Context, booking models.Booking) (string, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByRecipient(ctx context.Context, recipientID string) ([]models.Booking, error)
	ListByCaregiver(ctx context.Context, caregiverID string) ([]models.Booking, error)
	ListConfirmedOnDate(ctx context.Context, date string) ([]models.Booking, error)
	// UpdateStatus sets the lifecycle status unconditionally and returns the
	// updated booking, or mongo.ErrNoDocuments when the id does not match.
	UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error)
	// SetFeeSplit persists the computed three-way split onto the booking row.
	SetFeeSplit(ctx context.Context, id string, platformFeeCents, caregiverAmountCents int64) error
	// Cancel transitions to cancelled only from pending or confirmed.
	Cancel(ctx context.Context, id, reason string) error
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}
