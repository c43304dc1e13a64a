package notificationRepo

import (
	"context"
	"errors"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new notification and returns its ID.
func (r *mongoNotificationRepo) Create(ctx context.Context, notification models.Notification) (string, error) {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	notification.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, notification); err != nil {
		return "", err
	}
	return notification.ID, nil
}

// ListByRecipient returns a profile's notifications, newest first.
func (r *mongoNotificationRepo) ListByRecipient(ctx context.Context, profileID string, limit int64) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cursor, err := r.coll.Find(ctx, bson.M{"recipient_id": profileID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flags a notification read. The recipient filter prevents one user
// from touching another's notifications.
func (r *mongoNotificationRepo) MarkRead(ctx context.Context, id, profileID string) error {
	update := bson.M{"$set": bson.M{"is_read": true}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id, "recipient_id": profileID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("notification not found")
	}
	return nil
}
