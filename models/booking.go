package models

import "time"

// Booking lifecycle statuses. Transitions are monotonic
// (pending -> confirmed -> in_progress -> completed) except cancellation,
// which is reachable from pending or confirmed only.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingInProgress = "in_progress"
	BookingCompleted  = "completed"
	BookingCancelled  = "cancelled"
)

// Booking represents a scheduled care session between one recipient (payer)
// and one caregiver (payee). All amounts are integer cents; once the fee
// split has run, TotalAmountCents == PlatformFeeCents + CaregiverAmountCents.
type Booking struct {
	ID                   string    `bson:"id" json:"id"`
	RecipientID          string    `bson:"recipient_id" json:"recipientId"`
	CaregiverID          string    `bson:"caregiver_id" json:"caregiverId"`
	Date                 string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartTime            string    `bson:"start_time" json:"startTime"`
	EndTime              string    `bson:"end_time" json:"endTime"`
	Status               string    `bson:"status" json:"status"`
	TotalAmountCents     int64     `bson:"total_amount_cents" json:"totalAmountCents"`
	PlatformFeeCents     int64     `bson:"platform_fee_cents" json:"platformFeeCents"`
	CaregiverAmountCents int64     `bson:"caregiver_amount_cents" json:"caregiverAmountCents"`
	Notes                string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CancellationReason   string    `bson:"cancellation_reason,omitempty" json:"cancellationReason,omitempty"`
	CreatedAt            time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time `bson:"updated_at" json:"updatedAt"`
}

// CanCancel reports whether the booking may still be cancelled.
func (b Booking) CanCancel() bool {
	return b.Status == BookingPending || b.Status == BookingConfirmed
}
