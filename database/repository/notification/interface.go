package notificationRepo

import (
	"context"

	"github.com/msutyak/careconnect/database"
	"github.com/msutyak/careconnect/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification models.Notification) (string, error)
	ListByRecipient(ctx context.Context, profileID string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, profileID string) error
}

type mongoNotificationRepo struct {
	coll *mongo.Collection
}

// NewMongoNotificationRepo returns a NotificationRepository backed by MongoDB.
func NewMongoNotificationRepo() NotificationRepository {
	return &mongoNotificationRepo{
		coll: database.DB().Collection("notifications"),
	}
}
