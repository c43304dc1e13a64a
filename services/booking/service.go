package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "github.com/msutyak/careconnect/database/repository/booking"
	caregiverRepo "github.com/msutyak/careconnect/database/repository/caregiver"
	recipientRepo "github.com/msutyak/careconnect/database/repository/recipient"
	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/notification"
	"github.com/msutyak/careconnect/services/payments"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrCaregiverNotFound     = errors.New("caregiver not found")
	ErrRecipientNotFound     = errors.New("recipient record not found")
	ErrInvalidTimeRange      = errors.New("end time must be after start time")
	ErrInvalidTransition     = errors.New("booking is not in a state that allows this transition")
	ErrNotBookingParticipant = errors.New("booking does not belong to this profile")
)

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	Bookings      bookingRepo.BookingRepository
	Caregivers    caregiverRepo.CaregiverRepository
	Recipients    recipientRepo.RecipientRepository
	Notifications notification.NotificationService
	// FeePercent is the platform's cut, injected from the same config value
	// the payment-intent path uses so the persisted split and the charged
	// application fee can never disagree. Zero falls back to the default.
	FeePercent float64
	Logger     *zap.Logger
}

func (s *DefaultBookingService) feePercent() float64 {
	if s.FeePercent == 0 {
		return payments.PlatformFeePercent
	}
	return s.FeePercent
}

// Create prices the session from the caregiver's hourly rate and the
// requested window, records the fee split up front, and notifies the
// caregiver of the new request. The booking stays pending until payment
// succeeds.
func (s *DefaultBookingService) Create(ctx context.Context, payerProfileID string, input CreateInput) (*models.Booking, error) {
	recipient, err := s.Recipients.GetByProfileID(ctx, payerProfileID)
	if err != nil {
		return nil, fmt.Errorf("%w: profile %s", ErrRecipientNotFound, payerProfileID)
	}
	caregiver, err := s.Caregivers.GetByID(ctx, input.CaregiverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrCaregiverNotFound, input.CaregiverID)
	}

	minutes, err := sessionMinutes(input.StartTime, input.EndTime)
	if err != nil {
		return nil, err
	}
	total := caregiver.HourlyRateCents * int64(minutes) / 60

	split, err := payments.ComputeSplit(total, s.feePercent())
	if err != nil {
		return nil, err
	}

	booking := models.Booking{
		ID:                   uuid.NewString(),
		RecipientID:          recipient.ID,
		CaregiverID:          caregiver.ID,
		Date:                 input.Date,
		StartTime:            input.StartTime,
		EndTime:              input.EndTime,
		Status:               models.BookingPending,
		TotalAmountCents:     total,
		PlatformFeeCents:     split.PlatformFeeCents,
		CaregiverAmountCents: split.CaregiverAmountCents,
		Notes:                input.Notes,
	}
	if _, err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if err := s.Caregivers.IncTotalBookings(ctx, caregiver.ID); err != nil {
		s.Logger.Warn("booking counter not incremented", zap.String("caregiver", caregiver.ID), zap.Error(err))
	}

	notif := models.Notification{
		RecipientID: caregiver.ProfileID,
		Type:        models.NotifBookingRequest,
		Title:       "New Booking Request",
		Body:        fmt.Sprintf("You have a new booking request for %s, %s-%s.", booking.Date, booking.StartTime, booking.EndTime),
		Data:        map[string]string{"booking_id": booking.ID},
	}
	if err := s.Notifications.Create(ctx, notif); err != nil {
		s.Logger.Error("booking request notification not created", zap.String("booking", booking.ID), zap.Error(err))
	}

	s.Logger.Info("booking created",
		zap.String("booking", booking.ID),
		zap.String("caregiver", caregiver.ID),
		zap.Int64("total_cents", total))
	return &booking, nil
}

func (s *DefaultBookingService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.Bookings.GetByID(ctx, id)
}

func (s *DefaultBookingService) ListForProfile(ctx context.Context, profileID string) ([]models.Booking, error) {
	if caregiver, err := s.Caregivers.GetByProfileID(ctx, profileID); err == nil {
		return s.Bookings.ListByCaregiver(ctx, caregiver.ID)
	}
	recipient, err := s.Recipients.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: profile %s", ErrRecipientNotFound, profileID)
	}
	return s.Bookings.ListByRecipient(ctx, recipient.ID)
}

// Start moves a confirmed booking into progress when the session begins.
func (s *DefaultBookingService) Start(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(ctx, id, models.BookingConfirmed, models.BookingInProgress)
}

// Complete finishes an in-progress session and tells the recipient they can
// leave a review.
func (s *DefaultBookingService) Complete(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.transition(ctx, id, models.BookingInProgress, models.BookingCompleted)
	if err != nil {
		return nil, err
	}

	if recipient, rerr := s.Recipients.GetByID(ctx, booking.RecipientID); rerr == nil {
		notif := models.Notification{
			RecipientID: recipient.ProfileID,
			Type:        models.NotifBookingCompleted,
			Title:       "Booking Completed",
			Body:        "Your booking is complete. Leave a review to help others find great care.",
			Data:        map[string]string{"booking_id": booking.ID},
		}
		if err := s.Notifications.Create(ctx, notif); err != nil {
			s.Logger.Error("completion notification not created", zap.String("booking", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}

func (s *DefaultBookingService) transition(ctx context.Context, id, from, to string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.Status != from {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvalidTransition, id, booking.Status)
	}
	return s.Bookings.UpdateStatus(ctx, id, to)
}

// Cancel applies the repository's guarded transition and notifies the other
// party. Either side may cancel while the booking is pending or confirmed.
func (s *DefaultBookingService) Cancel(ctx context.Context, id, profileID, reason string) error {
	booking, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}

	otherParty, err := s.counterpartProfileID(ctx, booking, profileID)
	if err != nil {
		return err
	}

	if err := s.Bookings.Cancel(ctx, id, reason); err != nil {
		return err
	}

	notif := models.Notification{
		RecipientID: otherParty,
		Type:        models.NotifBookingCancelled,
		Title:       "Booking Cancelled",
		Body:        fmt.Sprintf("Your booking on %s was cancelled.", booking.Date),
		Data:        map[string]string{"booking_id": booking.ID},
	}
	if err := s.Notifications.Create(ctx, notif); err != nil {
		s.Logger.Error("cancellation notification not created", zap.String("booking", booking.ID), zap.Error(err))
	}
	return nil
}

// counterpartProfileID verifies the caller is a participant and returns the
// other side's profile id.
func (s *DefaultBookingService) counterpartProfileID(ctx context.Context, booking *models.Booking, profileID string) (string, error) {
	caregiver, err := s.Caregivers.GetByID(ctx, booking.CaregiverID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}
	recipient, err := s.Recipients.GetByID(ctx, booking.RecipientID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return "", err
	}

	switch {
	case caregiver != nil && caregiver.ProfileID == profileID:
		if recipient == nil {
			return "", ErrRecipientNotFound
		}
		return recipient.ProfileID, nil
	case recipient != nil && recipient.ProfileID == profileID:
		if caregiver == nil {
			return "", ErrCaregiverNotFound
		}
		return caregiver.ProfileID, nil
	default:
		return "", ErrNotBookingParticipant
	}
}

// sessionMinutes computes the billed duration from "HH:MM" endpoints on a
// single day.
func sessionMinutes(startTime, endTime string) (int, error) {
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeRange, startTime)
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeRange, endTime)
	}
	minutes := int(end.Sub(start).Minutes())
	if minutes <= 0 {
		return 0, ErrInvalidTimeRange
	}
	return minutes, nil
}
