package caregiverRepo

import (
	"context"
	"fmt"

	"github.com/msutyak/careconnect/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Search runs the available-caregiver search as a single aggregation
// pipeline: filter on caregiver fields, join the owning profile for
// location filters, optionally join weekly availability for a day filter,
// then rank by rating and experience.
func (r *mongoCaregiverRepo) Search(ctx context.Context, criteria SearchCriteria) ([]models.Caregiver, error) {
	var pipeline mongo.Pipeline

	// 1) $match on caregiver-side filters.
	matchFilter := bson.M{"is_available": true}
	if criteria.OnboardedOnly {
		matchFilter["stripe_onboarding_complete"] = true
	}
	if len(criteria.Expertise) > 0 {
		matchFilter["expertise"] = bson.M{"$in": criteria.Expertise}
	}
	if criteria.MaxHourlyRateCents > 0 {
		matchFilter["hourly_rate_cents"] = bson.M{"$lte": criteria.MaxHourlyRateCents}
	}
	pipeline = append(pipeline, bson.D{{Key: "$match", Value: matchFilter}})

	// 2) $lookup the owning profile, then filter on location.
	pipeline = append(pipeline, bson.D{
		{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "profiles"},
			{Key: "localField", Value: "profile_id"},
			{Key: "foreignField", Value: "id"},
			{Key: "as", Value: "profile"},
		}},
	})
	pipeline = append(pipeline, bson.D{
		{Key: "$unwind", Value: "$profile"},
	})
	profileFilter := bson.M{}
	if criteria.City != "" {
		profileFilter["profile.city"] = bson.M{"$regex": criteria.City, "$options": "i"}
	}
	if criteria.State != "" {
		profileFilter["profile.state"] = criteria.State
	}
	if len(profileFilter) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: profileFilter}})
	}

	// 3) Optional availability-day filter via the weekly slots collection.
	if criteria.DayOfWeek != "" {
		pipeline = append(pipeline, bson.D{
			{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: "availability_slots"},
				{Key: "localField", Value: "id"},
				{Key: "foreignField", Value: "caregiver_id"},
				{Key: "as", Value: "slots"},
			}},
		})
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"slots.day_of_week": criteria.DayOfWeek,
		}}})
		pipeline = append(pipeline, bson.D{{Key: "$unset", Value: "slots"}})
	}

	// 4) $sort: best-rated first, most-reviewed breaking ties, then cheapest.
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
		{Key: "average_rating", Value: -1},
		{Key: "total_reviews", Value: -1},
		{Key: "hourly_rate_cents", Value: 1},
	}}})

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("caregiver search aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var caregivers []models.Caregiver
	if err := cursor.All(ctx, &caregivers); err != nil {
		return nil, fmt.Errorf("failed to decode caregivers: %w", err)
	}
	return caregivers, nil
}
