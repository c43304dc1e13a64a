package handlers

import (
	"errors"
	"net/http"

	"github.com/msutyak/careconnect/services/review"
	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateReviewHandler records a rating for a completed booking.
func CreateReviewHandler(svc review.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var input review.CreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		created, err := svc.Create(c.Request.Context(), profileID, input)
		if err != nil {
			switch {
			case errors.Is(err, mongo.ErrNoDocuments):
				utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
			case errors.Is(err, review.ErrInvalidRating):
				utils.JSONError(c, http.StatusBadRequest, "Invalid rating", "rating must be between 1 and 5")
			case errors.Is(err, review.ErrBookingNotCompleted):
				utils.JSONError(c, http.StatusConflict, "Booking not completed", "reviews are only allowed after completion")
			case errors.Is(err, review.ErrAlreadyReviewed):
				utils.JSONError(c, http.StatusConflict, "Already reviewed", "this booking already has a review")
			case errors.Is(err, review.ErrNotBookingPayer):
				utils.JSONError(c, http.StatusForbidden, "Forbidden", "only the booking's recipient can review it")
			default:
				getLogger(c).Error("review creation failed", zap.String("profile", profileID), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Failed to create review", "")
			}
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ListCaregiverReviewsHandler returns a caregiver's reviews.
func ListCaregiverReviewsHandler(svc review.ReviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := svc.ListByCaregiver(c.Request.Context(), c.Param("id"))
		if err != nil {
			getLogger(c).Error("review list failed", zap.String("caregiver", c.Param("id")), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load reviews", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"reviews": reviews})
	}
}
