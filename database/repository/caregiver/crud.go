package caregiverRepo

import (
	"context"
	"errors"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new caregiver record and returns its ID.
func (r *mongoCaregiverRepo) Create(ctx context.Context, caregiver models.Caregiver) (string, error) {
	if caregiver.ID == "" {
		caregiver.ID = uuid.New().String()
	}
	if caregiver.Expertise == nil {
		caregiver.Expertise = []string{}
	}
	caregiver.CreatedAt = time.Now()
	caregiver.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, caregiver); err != nil {
		return "", err
	}
	return caregiver.ID, nil
}

// GetByID returns a caregiver by its ID.
func (r *mongoCaregiverRepo) GetByID(ctx context.Context, id string) (*models.Caregiver, error) {
	var caregiver models.Caregiver
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&caregiver); err != nil {
		return nil, err
	}
	return &caregiver, nil
}

// GetByProfileID returns the caregiver record owned by a profile.
func (r *mongoCaregiverRepo) GetByProfileID(ctx context.Context, profileID string) (*models.Caregiver, error) {
	var caregiver models.Caregiver
	if err := r.coll.FindOne(ctx, bson.M{"profile_id": profileID}).Decode(&caregiver); err != nil {
		return nil, err
	}
	return &caregiver, nil
}

// Update replaces the caregiver-editable fields.
func (r *mongoCaregiverRepo) Update(ctx context.Context, caregiver models.Caregiver) error {
	update := bson.M{"$set": bson.M{
		"bio":               caregiver.Bio,
		"education_level":   caregiver.EducationLevel,
		"expertise":         caregiver.Expertise,
		"interests":         caregiver.Interests,
		"hourly_rate_cents": caregiver.HourlyRateCents,
		"license_number":    caregiver.LicenseNumber,
		"license_state":     caregiver.LicenseState,
		"years_experience":  caregiver.YearsExperience,
		"is_available":      caregiver.IsAvailable,
		"updated_at":        time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": caregiver.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("caregiver not found")
	}
	return nil
}

// SetStripeAccountID persists the connected-account id created during onboarding.
func (r *mongoCaregiverRepo) SetStripeAccountID(ctx context.Context, id, accountID string) error {
	update := bson.M{"$set": bson.M{"stripe_account_id": accountID, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("caregiver not found")
	}
	return nil
}

// MarkOnboardingComplete sets the onboarding flag true for the caregiver
// matched by Stripe account id and reports how many records matched.
func (r *mongoCaregiverRepo) MarkOnboardingComplete(ctx context.Context, stripeAccountID string) (int64, error) {
	update := bson.M{"$set": bson.M{"stripe_onboarding_complete": true, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"stripe_account_id": stripeAccountID}, update)
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

// ApplyReview folds one new rating into the caregiver's aggregates using a
// pipeline update so the average and count move together.
func (r *mongoCaregiverRepo) ApplyReview(ctx context.Context, id string, rating int) error {
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"average_rating": bson.M{"$divide": bson.A{
				bson.M{"$add": bson.A{
					bson.M{"$multiply": bson.A{"$average_rating", "$total_reviews"}},
					rating,
				}},
				bson.M{"$add": bson.A{"$total_reviews", 1}},
			}},
			"total_reviews": bson.M{"$add": bson.A{"$total_reviews", 1}},
			"updated_at":    time.Now(),
		}},
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, pipeline)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("caregiver not found")
	}
	return nil
}

// IncTotalBookings bumps the lifetime booking counter.
func (r *mongoCaregiverRepo) IncTotalBookings(ctx context.Context, id string) error {
	update := bson.M{
		"$inc": bson.M{"total_bookings": 1},
		"$set": bson.M{"updated_at": time.Now()},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	return err
}
