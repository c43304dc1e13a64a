package notification

import (
	"context"

	"github.com/msutyak/careconnect/models"
)

// NotificationService persists user-visible notifications and hands push
// delivery off to the background worker. Persistence is the durable record;
// push is fire-and-forget.
type NotificationService interface {
	// Create inserts the notification row and enqueues a push delivery.
	// The push enqueue is best effort; only the insert can fail the call.
	Create(ctx context.Context, notification models.Notification) error
	List(ctx context.Context, profileID string, limit int64) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, profileID string) error
	// SendPush delivers one push message to a profile's registered device.
	// Called from the worker, not from request handlers.
	SendPush(ctx context.Context, profileID, title, body string, data map[string]string) error
	// ScheduleBookingReminder enqueues a reminder task ahead of a confirmed
	// booking's start time.
	ScheduleBookingReminder(ctx context.Context, booking models.Booking, profileID string) error
}
