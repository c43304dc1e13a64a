package recipientRepo

import (
	"context"

	"github.com/msutyak/careconnect/database"
	"github.com/msutyak/careconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type RecipientRepository interface {
	Create(ctx context.Context, recipient models.CareRecipient) (string, error)
	GetByID(ctx context.Context, id string) (*models.CareRecipient, error)
	GetByProfileID(ctx context.Context, profileID string) (*models.CareRecipient, error)
	Update(ctx context.Context, recipient models.CareRecipient) error
}

type mongoRecipientRepo struct {
	coll *mongo.Collection
}

// NewMongoRecipientRepo returns a RecipientRepository backed by MongoDB.
func NewMongoRecipientRepo() RecipientRepository {
	return &mongoRecipientRepo{
		coll: database.DB().Collection("care_recipients"),
	}
}
