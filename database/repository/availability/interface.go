package availabilityRepo

import (
	"context"

	"github.com/msutyak/careconnect/database"
	"github.com/msutyak/careconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type AvailabilityRepository interface {
	// ReplaceSlots swaps a caregiver's full weekly schedule in one call.
	ReplaceSlots(ctx context.Context, caregiverID string, slots []models.AvailabilitySlot) error
	ListSlots(ctx context.Context, caregiverID string) ([]models.AvailabilitySlot, error)
	UpsertOverride(ctx context.Context, override models.AvailabilityOverride) error
	ListOverrides(ctx context.Context, caregiverID, fromDate string) ([]models.AvailabilityOverride, error)
}

type mongoAvailabilityRepo struct {
	slots     *mongo.Collection
	overrides *mongo.Collection
}

// NewMongoAvailabilityRepo returns an AvailabilityRepository backed by MongoDB.
func NewMongoAvailabilityRepo() AvailabilityRepository {
	db := database.DB()
	return &mongoAvailabilityRepo{
		slots:     db.Collection("availability_slots"),
		overrides: db.Collection("availability_overrides"),
	}
}
