package profileRepo

import (
	"context"
	"errors"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new profile and returns its ID.
func (r *mongoProfileRepo) Create(ctx context.Context, profile models.Profile) (string, error) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		return "", err
	}
	return profile.ID, nil
}

// GetByID returns a profile by its ID.
func (r *mongoProfileRepo) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetByEmail returns a profile by its email address.
func (r *mongoProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Update replaces the mutable fields of a profile.
func (r *mongoProfileRepo) Update(ctx context.Context, profile models.Profile) error {
	profile.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"first_name":           profile.FirstName,
		"last_name":            profile.LastName,
		"phone":                profile.Phone,
		"state":                profile.State,
		"city":                 profile.City,
		"address":              profile.Address,
		"avatar_url":           profile.AvatarURL,
		"onboarding_completed": profile.OnboardingCompleted,
		"updated_at":           profile.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": profile.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("profile not found")
	}
	return nil
}

// SetFCMToken stores the device push token for a profile.
func (r *mongoProfileRepo) SetFCMToken(ctx context.Context, id, token string) error {
	update := bson.M{"$set": bson.M{"fcm_token": token, "updated_at": time.Now()}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("profile not found")
	}
	return nil
}
