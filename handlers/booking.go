package handlers

import (
	"context"
	"errors"
	"net/http"

	bookingRepo "github.com/msutyak/careconnect/database/repository/booking"
	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/booking"
	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateBookingHandler records a new pending booking for the caller.
func CreateBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var input booking.CreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		created, err := svc.Create(c.Request.Context(), profileID, input)
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrCaregiverNotFound), errors.Is(err, booking.ErrRecipientNotFound):
				utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
			case errors.Is(err, booking.ErrInvalidTimeRange):
				utils.JSONError(c, http.StatusBadRequest, "Invalid time range", err.Error())
			default:
				getLogger(c).Error("booking creation failed", zap.String("profile", profileID), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Failed to create booking", "please try again")
			}
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// GetBookingHandler returns one booking by id.
func GetBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authedProfileID(c) == "" {
			return
		}
		b, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// ListBookingsHandler returns the caller's bookings.
func ListBookingsHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}
		bookings, err := svc.ListForProfile(c.Request.Context(), profileID)
		if err != nil {
			getLogger(c).Error("booking list failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load bookings", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
	}
}

// StartBookingHandler moves a confirmed booking into progress.
func StartBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return transitionHandler(svc.Start)
}

// CompleteBookingHandler finishes an in-progress booking.
func CompleteBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return transitionHandler(svc.Complete)
}

func transitionHandler(fn func(ctx context.Context, id string) (*models.Booking, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authedProfileID(c) == "" {
			return
		}
		b, err := fn(c.Request.Context(), c.Param("id"))
		if err != nil {
			switch {
			case errors.Is(err, mongo.ErrNoDocuments):
				utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
			case errors.Is(err, booking.ErrInvalidTransition):
				utils.JSONError(c, http.StatusConflict, "Invalid transition", err.Error())
			default:
				getLogger(c).Error("booking transition failed", zap.String("booking", c.Param("id")), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Failed to update booking", "")
			}
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// CancelBookingHandler cancels a pending or confirmed booking.
func CancelBookingHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var input struct {
			Reason string `json:"reason"`
		}
		_ = c.ShouldBindJSON(&input)

		err := svc.Cancel(c.Request.Context(), c.Param("id"), profileID, input.Reason)
		if err != nil {
			switch {
			case errors.Is(err, mongo.ErrNoDocuments):
				utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
			case errors.Is(err, booking.ErrNotBookingParticipant):
				utils.JSONError(c, http.StatusForbidden, "Forbidden", "booking does not belong to this account")
			case errors.Is(err, bookingRepo.ErrNotCancellable):
				utils.JSONError(c, http.StatusConflict, "Cannot cancel", "booking is past the point of cancellation")
			default:
				getLogger(c).Error("booking cancellation failed", zap.String("booking", c.Param("id")), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Failed to cancel booking", "")
			}
			return
		}
		c.JSON(http.StatusOK, gin.H{"cancelled": true})
	}
}
