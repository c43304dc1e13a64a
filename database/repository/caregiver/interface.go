package caregiverRepo

import (
	"context"
	"log"

	"github.com/msutyak/careconnect/database"
	"github.com/msutyak/careconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SearchCriteria carries the filters accepted by Search. Zero values mean
// "no filter" for the corresponding field.
type SearchCriteria struct {
	Expertise          []string
	City               string
	State              string
	MaxHourlyRateCents int64
	DayOfWeek          string
	OnboardedOnly      bool
}

type CaregiverRepository interface {
	Create(ctx context.Context, caregiver models.Caregiver) (string, error)
	GetByID(ctx context.Context, id string) (*models.Caregiver, error)
	GetByProfileID(ctx context.Context, profileID string) (*models.Caregiver, error)
	Update(ctx context.Context, caregiver models.Caregiver) error
	SetStripeAccountID(ctx context.Context, id, accountID string) error
	// MarkOnboardingComplete flips the completeness flag true for the
	// caregiver matched by Stripe account id. The flag is monotonic: there
	// is no path that sets it back to false.
	MarkOnboardingComplete(ctx context.Context, stripeAccountID string) (int64, error)
	ApplyReview(ctx context.Context, id string, rating int) error
	IncTotalBookings(ctx context.Context, id string) error
	Search(ctx context.Context, criteria SearchCriteria) ([]models.Caregiver, error)
}

type mongoCaregiverRepo struct {
	coll *mongo.Collection
}

// NewMongoCaregiverRepo returns a CaregiverRepository backed by MongoDB.
func NewMongoCaregiverRepo() CaregiverRepository {
	repo := &mongoCaregiverRepo{
		coll: database.DB().Collection("caregivers"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		log.Printf("caregiver repo: %v", err)
	}
	return repo
}
