package models

import "time"

// AvailabilitySlot is a recurring weekly window a caregiver accepts bookings in.
type AvailabilitySlot struct {
	ID          string    `bson:"id" json:"id"`
	CaregiverID string    `bson:"caregiver_id" json:"caregiverId"`
	DayOfWeek   string    `bson:"day_of_week" json:"dayOfWeek"` // "monday".."sunday"
	StartTime   string    `bson:"start_time" json:"startTime"`  // "HH:MM"
	EndTime     string    `bson:"end_time" json:"endTime"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}

// AvailabilityOverride adjusts or blocks a single date, taking precedence
// over the weekly slots.
type AvailabilityOverride struct {
	ID            string    `bson:"id" json:"id"`
	CaregiverID   string    `bson:"caregiver_id" json:"caregiverId"`
	Date          string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	StartTime     string    `bson:"start_time,omitempty" json:"startTime,omitempty"`
	EndTime       string    `bson:"end_time,omitempty" json:"endTime,omitempty"`
	IsUnavailable bool      `bson:"is_unavailable" json:"isUnavailable"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}
