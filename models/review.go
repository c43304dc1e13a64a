package models

import "time"

// Review is a recipient's rating of a caregiver for one completed booking.
type Review struct {
	ID          string    `bson:"id" json:"id"`
	BookingID   string    `bson:"booking_id" json:"bookingId"`
	ReviewerID  string    `bson:"reviewer_id" json:"reviewerId"`
	CaregiverID string    `bson:"caregiver_id" json:"caregiverId"`
	Rating      int       `bson:"rating" json:"rating"` // 1..5
	Comment     string    `bson:"comment,omitempty" json:"comment,omitempty"`
	Response    string    `bson:"response,omitempty" json:"response,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}
