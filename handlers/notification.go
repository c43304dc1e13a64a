package handlers

import (
	"net/http"
	"strconv"

	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/services/notification"
	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListNotificationsHandler returns the caller's recent notifications.
func ListNotificationsHandler(svc notification.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
		notifications, err := svc.List(c.Request.Context(), profileID, limit)
		if err != nil {
			getLogger(c).Error("notification list failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load notifications", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"notifications": notifications})
	}
}

// SendPushHandler creates a notification for another profile, delivering a
// push alongside the durable row. Used by the mobile client for direct
// user-to-user alerts outside the automatic flows.
func SendPushHandler(svc notification.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID := authedProfileID(c)
		if senderID == "" {
			return
		}

		var input struct {
			ProfileID string            `json:"profileId" binding:"required"`
			Title     string            `json:"title" binding:"required"`
			Body      string            `json:"body" binding:"required"`
			Data      map[string]string `json:"data"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		data := input.Data
		if data == nil {
			data = map[string]string{}
		}
		data["sender_id"] = senderID

		notif := models.Notification{
			RecipientID: input.ProfileID,
			Type:        models.NotifNewMessage,
			Title:       input.Title,
			Body:        input.Body,
			Data:        data,
		}
		if err := svc.Create(c.Request.Context(), notif); err != nil {
			getLogger(c).Error("push send failed", zap.String("recipient", input.ProfileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to send notification", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"sent": true})
	}
}

// MarkNotificationReadHandler marks one of the caller's notifications read.
func MarkNotificationReadHandler(svc notification.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}
		if err := svc.MarkRead(c.Request.Context(), c.Param("id"), profileID); err != nil {
			utils.JSONError(c, http.StatusNotFound, "Notification not found", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"read": true})
	}
}
