package handlers

import (
	"net/http"

	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/storage"
	"github.com/msutyak/careconnect/services/user"
	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProfileHandler returns the authenticated account's profile.
func GetProfileHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}
		profile, err := svc.GetProfile(c.Request.Context(), profileID)
		if err != nil {
			getLogger(c).Error("profile fetch failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to retrieve profile", "")
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// UpdateProfileHandler updates the caller's mutable profile fields.
func UpdateProfileHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var input models.Profile
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		input.ID = profileID

		profile, err := svc.UpdateProfile(c.Request.Context(), input)
		if err != nil {
			getLogger(c).Error("profile update failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to update profile", "")
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// SetPushTokenHandler registers the device token for push delivery.
func SetPushTokenHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var input struct {
			Token string `json:"token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "token is required")
			return
		}
		if err := svc.SetPushToken(c.Request.Context(), profileID, input.Token); err != nil {
			getLogger(c).Error("push token update failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to save push token", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"saved": true})
	}
}

// UploadAvatarHandler stores a profile photo and saves its delivery URL.
func UploadAvatarHandler(userSvc user.UserService, store storage.StorageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		fileHeader, err := c.FormFile("avatar")
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "avatar file is required")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "could not read uploaded file")
			return
		}
		defer file.Close()

		publicID, err := store.UploadFile(c.Request.Context(), file, "avatars")
		if err != nil {
			logger.Error("avatar upload failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Upload failed", "please try again")
			return
		}
		url, err := store.GetDownloadURL(c.Request.Context(), "image", publicID)
		if err != nil {
			logger.Error("avatar url resolution failed", zap.String("public_id", publicID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Upload failed", "please try again")
			return
		}

		if _, err := userSvc.UpdateProfile(c.Request.Context(), models.Profile{ID: profileID, AvatarURL: url}); err != nil {
			logger.Error("avatar url not saved", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Upload failed", "please try again")
			return
		}
		c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
	}
}
