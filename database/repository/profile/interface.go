package profileRepo

import (
	"context"

	"github.com/msutyak/careconnect/database"
	"github.com/msutyak/careconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile models.Profile) (string, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Update(ctx context.Context, profile models.Profile) error
	SetFCMToken(ctx context.Context, id, token string) error
}

type mongoProfileRepo struct {
	coll *mongo.Collection
}

// NewMongoProfileRepo returns a ProfileRepository backed by MongoDB.
func NewMongoProfileRepo() ProfileRepository {
	return &mongoProfileRepo{
		coll: database.DB().Collection("profiles"),
	}
}
