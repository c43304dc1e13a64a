package payments

import (
	"context"
	"fmt"

	"github.com/msutyak/careconnect/models"
)

// GetPaymentForBooking returns the payment record the client polls after
// presenting the payment sheet. Only the booking's payer or caregiver may
// read it.
func (s *DefaultPaymentService) GetPaymentForBooking(ctx context.Context, profileID, bookingID string) (*models.Payment, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBookingNotFound, err)
	}

	allowed := false
	if recipient, err := s.Recipients.GetByID(ctx, booking.RecipientID); err == nil && recipient.ProfileID == profileID {
		allowed = true
	}
	if !allowed {
		if caregiver, err := s.Caregivers.GetByID(ctx, booking.CaregiverID); err == nil && caregiver.ProfileID == profileID {
			allowed = true
		}
	}
	if !allowed {
		return nil, ErrNotParticipant
	}

	payment, err := s.Payments.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentNotFound, err)
	}
	return payment, nil
}
