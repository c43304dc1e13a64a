package bookingRepo

import (
	"context"
	"errors"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotCancellable is returned when a booking is past the point of cancellation.
var ErrNotCancellable = errors.New("booking can no longer be cancelled")

// Create inserts a new booking and returns its ID.
func (r *mongoBookingRepo) Create(ctx context.Context, booking models.Booking) (string, error) {
	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return "", err
	}
	return booking.ID, nil
}

// GetByID returns a booking by its ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListByRecipient returns all bookings made by a care recipient, newest first.
func (r *mongoBookingRepo) ListByRecipient(ctx context.Context, recipientID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"recipient_id": recipientID})
}

// ListByCaregiver returns all bookings assigned to a caregiver, newest first.
func (r *mongoBookingRepo) ListByCaregiver(ctx context.Context, caregiverID string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"caregiver_id": caregiverID})
}

// ListConfirmedOnDate returns confirmed bookings scheduled for the given date.
func (r *mongoBookingRepo) ListConfirmedOnDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.list(ctx, bson.M{"date": date, "status": models.BookingConfirmed})
}

func (r *mongoBookingRepo) list(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "start_time", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// UpdateStatus sets the status and returns the updated booking. The write is
// an unconditional snapshot keyed by id, so reprocessing the same transition
// converges to the same end state.
func (r *mongoBookingRepo) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// SetFeeSplit persists the computed split onto the booking row so it is
// visible to clients before payment confirmation.
func (r *mongoBookingRepo) SetFeeSplit(ctx context.Context, id string, platformFeeCents, caregiverAmountCents int64) error {
	update := bson.M{"$set": bson.M{
		"platform_fee_cents":     platformFeeCents,
		"caregiver_amount_cents": caregiverAmountCents,
		"updated_at":             time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("booking not found")
	}
	return nil
}

// Cancel moves a booking to cancelled. The status guard lives in the filter,
// so a booking already in progress or completed is never clobbered.
func (r *mongoBookingRepo) Cancel(ctx context.Context, id, reason string) error {
	filter := bson.M{
		"id":     id,
		"status": bson.M{"$in": bson.A{models.BookingPending, models.BookingConfirmed}},
	}
	update := bson.M{"$set": bson.M{
		"status":              models.BookingCancelled,
		"cancellation_reason": reason,
		"updated_at":          time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotCancellable
	}
	return nil
}
