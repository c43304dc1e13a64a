package booking

import (
	"context"

	"github.com/msutyak/careconnect/models"
)

// CreateInput is the payload for requesting a booking. The price is computed
// server-side from the caregiver's hourly rate; clients never send amounts.
type CreateInput struct {
	CaregiverID string `json:"caregiverId" binding:"required"`
	Date        string `json:"date" binding:"required"`      // "YYYY-MM-DD"
	StartTime   string `json:"startTime" binding:"required"` // "HH:MM"
	EndTime     string `json:"endTime" binding:"required"`
	Notes       string `json:"notes"`
}

// BookingService manages the booking lifecycle up to and after payment.
// Payment-driven transitions (pending -> confirmed) belong to the webhook
// processor, not this service.
type BookingService interface {
	// Create prices and records a pending booking requested by the profile.
	Create(ctx context.Context, payerProfileID string, input CreateInput) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	// ListForProfile returns the profile's bookings from whichever side of
	// the marketplace it is on.
	ListForProfile(ctx context.Context, profileID string) ([]models.Booking, error)
	// Start and Complete are caregiver-driven transitions.
	Start(ctx context.Context, id string) (*models.Booking, error)
	Complete(ctx context.Context, id string) (*models.Booking, error)
	Cancel(ctx context.Context, id, profileID, reason string) error
}
