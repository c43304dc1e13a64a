package availabilityRepo

import (
	"context"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReplaceSlots deletes and reinserts the caregiver's weekly schedule.
func (r *mongoAvailabilityRepo) ReplaceSlots(ctx context.Context, caregiverID string, slots []models.AvailabilitySlot) error {
	if _, err := r.slots.DeleteMany(ctx, bson.M{"caregiver_id": caregiverID}); err != nil {
		return err
	}
	if len(slots) == 0 {
		return nil
	}

	docs := make([]interface{}, 0, len(slots))
	for _, slot := range slots {
		if slot.ID == "" {
			slot.ID = uuid.New().String()
		}
		slot.CaregiverID = caregiverID
		slot.CreatedAt = time.Now()
		docs = append(docs, slot)
	}
	_, err := r.slots.InsertMany(ctx, docs)
	return err
}

// ListSlots returns the caregiver's weekly schedule.
func (r *mongoAvailabilityRepo) ListSlots(ctx context.Context, caregiverID string) ([]models.AvailabilitySlot, error) {
	cursor, err := r.slots.Find(ctx, bson.M{"caregiver_id": caregiverID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.AvailabilitySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// UpsertOverride writes the single override for a caregiver/date pair.
func (r *mongoAvailabilityRepo) UpsertOverride(ctx context.Context, override models.AvailabilityOverride) error {
	filter := bson.M{"caregiver_id": override.CaregiverID, "date": override.Date}
	update := bson.M{
		"$set": bson.M{
			"start_time":     override.StartTime,
			"end_time":       override.EndTime,
			"is_unavailable": override.IsUnavailable,
		},
		"$setOnInsert": bson.M{
			"id":           uuid.New().String(),
			"caregiver_id": override.CaregiverID,
			"date":         override.Date,
			"created_at":   time.Now(),
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.overrides.UpdateOne(ctx, filter, update, opts)
	return err
}

// ListOverrides returns date overrides on or after fromDate.
func (r *mongoAvailabilityRepo) ListOverrides(ctx context.Context, caregiverID, fromDate string) ([]models.AvailabilityOverride, error) {
	filter := bson.M{"caregiver_id": caregiverID}
	if fromDate != "" {
		filter["date"] = bson.M{"$gte": fromDate}
	}
	cursor, err := r.overrides.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var overrides []models.AvailabilityOverride
	if err := cursor.All(ctx, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}
