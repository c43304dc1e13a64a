package models

import "time"

// Notification types surfaced to users.
const (
	NotifBookingRequest   = "booking_request"
	NotifBookingCancelled = "booking_cancelled"
	NotifBookingCompleted = "booking_completed"
	NotifNewMessage       = "new_message"
	NotifNewReview        = "new_review"
	NotifPaymentReceived  = "payment_received"
	NotifPaymentSent      = "payment_sent"
	NotifReminder         = "reminder"
)

// Notification is a durable, user-visible record of an event. It is not a
// payment source of truth; failing to create one never rolls back the state
// change that produced it.
type Notification struct {
	ID          string            `bson:"id" json:"id"`
	RecipientID string            `bson:"recipient_id" json:"recipientId"` // profile id of the addressee
	Type        string            `bson:"type" json:"type"`
	Title       string            `bson:"title" json:"title"`
	Body        string            `bson:"body" json:"body"`
	Data        map[string]string `bson:"data,omitempty" json:"data,omitempty"`
	IsRead      bool              `bson:"is_read" json:"isRead"`
	CreatedAt   time.Time         `bson:"created_at" json:"createdAt"`
}

// ReminderPayload is the asynq task payload for a scheduled booking reminder.
type ReminderPayload struct {
	ProfileID string `json:"profileId"`
	BookingID string `json:"bookingId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}
