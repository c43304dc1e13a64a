package recipientRepo

import (
	"context"
	"errors"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new care recipient record and returns its ID.
func (r *mongoRecipientRepo) Create(ctx context.Context, recipient models.CareRecipient) (string, error) {
	if recipient.ID == "" {
		recipient.ID = uuid.New().String()
	}
	recipient.CreatedAt = time.Now()
	recipient.UpdatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, recipient); err != nil {
		return "", err
	}
	return recipient.ID, nil
}

// GetByID returns a care recipient by its ID.
func (r *mongoRecipientRepo) GetByID(ctx context.Context, id string) (*models.CareRecipient, error) {
	var recipient models.CareRecipient
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&recipient); err != nil {
		return nil, err
	}
	return &recipient, nil
}

// GetByProfileID returns the care recipient record owned by a profile.
func (r *mongoRecipientRepo) GetByProfileID(ctx context.Context, profileID string) (*models.CareRecipient, error) {
	var recipient models.CareRecipient
	if err := r.coll.FindOne(ctx, bson.M{"profile_id": profileID}).Decode(&recipient); err != nil {
		return nil, err
	}
	return &recipient, nil
}

// Update replaces the recipient-editable fields.
func (r *mongoRecipientRepo) Update(ctx context.Context, recipient models.CareRecipient) error {
	update := bson.M{"$set": bson.M{
		"care_for":               recipient.CareFor,
		"loved_one_first_name":   recipient.LovedOneFirstName,
		"loved_one_last_name":    recipient.LovedOneLastName,
		"loved_one_age":          recipient.LovedOneAge,
		"loved_one_relationship": recipient.LovedOneRelationship,
		"care_needs":             recipient.CareNeeds,
		"additional_notes":       recipient.AdditionalNotes,
		"updated_at":             time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": recipient.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("care recipient not found")
	}
	return nil
}
