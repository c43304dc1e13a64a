package review

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/msutyak/careconnect/database/repository/booking"
	caregiverRepo "github.com/msutyak/careconnect/database/repository/caregiver"
	recipientRepo "github.com/msutyak/careconnect/database/repository/recipient"
	reviewRepo "github.com/msutyak/careconnect/database/repository/review"
	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/notification"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	ErrBookingNotCompleted = errors.New("only completed bookings can be reviewed")
	ErrAlreadyReviewed     = errors.New("booking already has a review")
	ErrNotBookingPayer     = errors.New("only the booking's recipient can review it")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
)

// CreateInput is the payload for leaving a review.
type CreateInput struct {
	BookingID string `json:"bookingId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// ReviewService records ratings for completed bookings and keeps caregiver
// aggregates current.
type ReviewService interface {
	Create(ctx context.Context, reviewerProfileID string, input CreateInput) (*models.Review, error)
	ListByCaregiver(ctx context.Context, caregiverID string) ([]models.Review, error)
}

// DefaultReviewService is the production ReviewService.
type DefaultReviewService struct {
	Reviews       reviewRepo.ReviewRepository
	Bookings      bookingRepo.BookingRepository
	Caregivers    caregiverRepo.CaregiverRepository
	Recipients    recipientRepo.RecipientRepository
	Notifications notification.NotificationService
	Logger        *zap.Logger
}

// Create validates the review against its booking (completed, reviewed by
// the payer, one review per booking), stores it, and folds the rating into
// the caregiver's aggregates.
func (s *DefaultReviewService) Create(ctx context.Context, reviewerProfileID string, input CreateInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	booking, err := s.Bookings.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingCompleted {
		return nil, ErrBookingNotCompleted
	}

	recipient, err := s.Recipients.GetByID(ctx, booking.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient.ProfileID != reviewerProfileID {
		return nil, ErrNotBookingPayer
	}

	if existing, err := s.Reviews.GetByBookingID(ctx, input.BookingID); err == nil && existing != nil {
		return nil, ErrAlreadyReviewed
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check existing review: %w", err)
	}

	review := models.Review{
		ID:          uuid.NewString(),
		BookingID:   booking.ID,
		ReviewerID:  reviewerProfileID,
		CaregiverID: booking.CaregiverID,
		Rating:      input.Rating,
		Comment:     input.Comment,
	}
	if _, err := s.Reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.Caregivers.ApplyReview(ctx, booking.CaregiverID, input.Rating); err != nil {
		s.Logger.Error("caregiver rating aggregate not updated",
			zap.String("caregiver", booking.CaregiverID), zap.Error(err))
	}

	if caregiver, cerr := s.Caregivers.GetByID(ctx, booking.CaregiverID); cerr == nil {
		notif := models.Notification{
			RecipientID: caregiver.ProfileID,
			Type:        models.NotifNewReview,
			Title:       "New Review",
			Body:        fmt.Sprintf("You received a %d-star review.", input.Rating),
			Data:        map[string]string{"booking_id": booking.ID, "review_id": review.ID},
		}
		if err := s.Notifications.Create(ctx, notif); err != nil {
			s.Logger.Error("review notification not created", zap.String("review", review.ID), zap.Error(err))
		}
	}

	return &review, nil
}

func (s *DefaultReviewService) ListByCaregiver(ctx context.Context, caregiverID string) ([]models.Review, error) {
	return s.Reviews.ListByCaregiver(ctx, caregiverID)
}
