package reviewRepo

import (
	"context"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new review and returns its ID.
func (r *mongoReviewRepo) Create(ctx context.Context, review models.Review) (string, error) {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.CreatedAt = time.Now()
	review.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, review); err != nil {
		return "", err
	}
	return review.ID, nil
}

// GetByBookingID returns the review attached to a booking, if any.
func (r *mongoReviewRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.Review, error) {
	var review models.Review
	if err := r.coll.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&review); err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByCaregiver returns all reviews of a caregiver, newest first.
func (r *mongoReviewRepo) ListByCaregiver(ctx context.Context, caregiverID string) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"caregiver_id": caregiverID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
