package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	notificationRepo "github.com/msutyak/careconnect/database/repository/notification"
	profileRepo "github.com/msutyak/careconnect/database/repository/profile"
	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/tasks"
	"github.com/msutyak/careconnect/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// reminderLead is how long before a booking's start time the reminder fires.
const reminderLead = time.Hour

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	Profiles profileRepo.ProfileRepository
	Tasks    *asynq.Client // nil disables background dispatch
	Logger   *zap.Logger
}

func (s *DefaultNotificationService) Create(ctx context.Context, notification models.Notification) error {
	if _, err := s.Repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	if s.Tasks == nil {
		return nil
	}
	task, err := tasks.NewPushTask(tasks.PushPayload{
		ProfileID: notification.RecipientID,
		Title:     notification.Title,
		Body:      notification.Body,
		Data:      notification.Data,
	})
	if err == nil {
		_, err = s.Tasks.EnqueueContext(ctx, task)
	}
	if err != nil {
		s.Logger.Warn("failed to enqueue push delivery",
			zap.String("profile", notification.RecipientID), zap.Error(err))
	}
	return nil
}

func (s *DefaultNotificationService) List(ctx context.Context, profileID string, limit int64) ([]models.Notification, error) {
	return s.Repo.ListByRecipient(ctx, profileID, limit)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id, profileID string) error {
	return s.Repo.MarkRead(ctx, id, profileID)
}

// SendPush looks up the profile's FCM token and delivers one push message.
func (s *DefaultNotificationService) SendPush(ctx context.Context, profileID, title, body string, data map[string]string) error {
	profile, err := s.Profiles.GetByID(ctx, profileID)
	if err != nil {
		return fmt.Errorf("SendPush: could not find profile %s: %w", profileID, err)
	}
	if profile.FCMToken == "" {
		s.Logger.Debug("no push token for profile, notification saved to database only",
			zap.String("profile", profileID))
		return nil
	}

	msg := &messaging.Message{
		Token: profile.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("SendPush: failed to send FCM message: %w", err)
	}
	return nil
}

// ScheduleBookingReminder enqueues a reminder an hour before the session
// starts. Sessions already under way get no reminder.
func (s *DefaultNotificationService) ScheduleBookingReminder(ctx context.Context, booking models.Booking, profileID string) error {
	if s.Tasks == nil {
		return nil
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", booking.Date+" "+booking.StartTime, time.Local)
	if err != nil {
		return fmt.Errorf("parse booking start: %w", err)
	}
	fireAt := start.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	task, opts, err := tasks.NewReminderTask(models.ReminderPayload{
		ProfileID: profileID,
		BookingID: booking.ID,
		Date:      booking.Date,
		StartTime: booking.StartTime,
	}, fireAt)
	if err != nil {
		return err
	}
	if _, err := s.Tasks.EnqueueContext(ctx, task, opts...); err != nil {
		// The task id is keyed by booking; a conflict means the reminder is
		// already queued.
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue booking reminder: %w", err)
	}
	return nil
}
