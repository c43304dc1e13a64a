package tasks

import (
	"encoding/json"
	"time"

	"github.com/msutyak/careconnect/models"

	"github.com/hibiken/asynq"
)

// Task type names routed by the background worker.
const (
	TypePushNotification = "notification:push"
	TypeBookingReminder  = "reminder:send"
	TypeReminderSweep    = "reminder:daily_sweep"
)

// PushPayload is the asynq payload for one FCM push delivery.
type PushPayload struct {
	ProfileID string            `json:"profileId"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
}

// NewPushTask builds an immediate push-delivery task.
func NewPushTask(payload PushPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePushNotification, b), nil
}

// NewReminderTask builds a booking-reminder task scheduled for fireAt. The
// task id is derived from the booking so enqueueing the same reminder twice
// (webhook confirmation plus the daily sweep) collapses to one delivery.
func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.BookingID),
	}

	return task, opts, nil
}

// NewReminderSweepTask builds the payload-less daily sweep trigger.
func NewReminderSweepTask() *asynq.Task {
	return asynq.NewTask(TypeReminderSweep, nil)
}
