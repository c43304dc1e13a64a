package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	caregiverRepo "github.com/msutyak/careconnect/database/repository/caregiver"
	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/caregiver"
	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetCaregiverHandler returns a caregiver listing by id.
func GetCaregiverHandler(svc caregiver.CaregiverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cg, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "Caregiver not found", "")
			return
		}
		c.JSON(http.StatusOK, cg)
	}
}

// GetOwnCaregiverHandler returns the caller's caregiver record.
func GetOwnCaregiverHandler(svc caregiver.CaregiverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}
		cg, err := svc.GetByProfile(c.Request.Context(), profileID)
		if err != nil {
			utils.JSONError(c, http.StatusNotFound, "Not a caregiver", "this account has no caregiver record")
			return
		}
		c.JSON(http.StatusOK, cg)
	}
}

// UpdateCaregiverHandler updates the caller's caregiver listing.
func UpdateCaregiverHandler(svc caregiver.CaregiverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var input caregiver.UpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		cg, err := svc.Update(c.Request.Context(), profileID, input)
		if err != nil {
			if errors.Is(err, caregiver.ErrNotACaregiver) {
				utils.JSONError(c, http.StatusNotFound, "Not a caregiver", "this account has no caregiver record")
				return
			}
			getLogger(c).Error("caregiver update failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update caregiver", "")
			return
		}
		c.JSON(http.StatusOK, cg)
	}
}

// SearchCaregiversHandler filters caregiver listings by query parameters.
func SearchCaregiversHandler(svc caregiver.CaregiverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		criteria := caregiverRepo.SearchCriteria{
			City:          c.Query("city"),
			State:         c.Query("state"),
			DayOfWeek:     c.Query("day"),
			OnboardedOnly: c.Query("onboardedOnly") != "false",
		}
		if raw := c.Query("expertise"); raw != "" {
			criteria.Expertise = strings.Split(raw, ",")
		}
		if raw := c.Query("maxHourlyRateCents"); raw != "" {
			rate, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				utils.JSONError(c, http.StatusBadRequest, "Invalid request", "maxHourlyRateCents must be an integer")
				return
			}
			criteria.MaxHourlyRateCents = rate
		}

		results, err := svc.Search(c.Request.Context(), criteria)
		if err != nil {
			getLogger(c).Error("caregiver search failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Search failed", "please try again")
			return
		}
		c.JSON(http.StatusOK, gin.H{"caregivers": results, "count": len(results)})
	}
}

// SetScheduleHandler replaces the caller's weekly availability.
func SetScheduleHandler(svc caregiver.CaregiverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var input struct {
			Slots []models.AvailabilitySlot `json:"slots" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := svc.SetWeeklySchedule(c.Request.Context(), profileID, input.Slots); err != nil {
			if errors.Is(err, caregiver.ErrNotACaregiver) {
				utils.JSONError(c, http.StatusNotFound, "Not a caregiver", "this account has no caregiver record")
				return
			}
			getLogger(c).Error("schedule update failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to save schedule", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": true})
	}
}

// GetScheduleHandler returns a caregiver's weekly availability.
func GetScheduleHandler(svc caregiver.CaregiverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		slots, err := svc.GetSchedule(c.Request.Context(), c.Param("id"))
		if err != nil {
			getLogger(c).Error("schedule fetch failed", zap.String("caregiver", c.Param("id")), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load schedule", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"slots": slots})
	}
}

// SetOverrideHandler blocks or adjusts a single date on the caller's schedule.
func SetOverrideHandler(svc caregiver.CaregiverService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var override models.AvailabilityOverride
		if err := c.ShouldBindJSON(&override); err != nil || override.Date == "" {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "date is required")
			return
		}
		if err := svc.SetDateOverride(c.Request.Context(), profileID, override); err != nil {
			if errors.Is(err, caregiver.ErrNotACaregiver) {
				utils.JSONError(c, http.StatusNotFound, "Not a caregiver", "this account has no caregiver record")
				return
			}
			getLogger(c).Error("override update failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to save override", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": true})
	}
}
