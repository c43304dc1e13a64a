package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/msutyak/careconnect/services/messaging"
	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartConversationHandler opens (or returns) the conversation between the
// caller and another profile.
func StartConversationHandler(svc messaging.MessagingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var input struct {
			ProfileID string `json:"profileId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", "profileId is required")
			return
		}

		conversation, err := svc.StartConversation(c.Request.Context(), profileID, input.ProfileID)
		if err != nil {
			getLogger(c).Error("conversation creation failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to start conversation", "")
			return
		}
		c.JSON(http.StatusOK, conversation)
	}
}

// ListConversationsHandler returns the caller's conversations with unread counts.
func ListConversationsHandler(svc messaging.MessagingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}
		conversations, err := svc.ListConversations(c.Request.Context(), profileID)
		if err != nil {
			getLogger(c).Error("conversation list failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load conversations", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"conversations": conversations})
	}
}

// SendMessageHandler appends a message to a conversation.
func SendMessageHandler(svc messaging.MessagingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		var input struct {
			Content  string `json:"content"`
			ImageURL string `json:"imageUrl"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		message, err := svc.Send(c.Request.Context(), profileID, c.Param("id"), input.Content, input.ImageURL)
		if err != nil {
			switch {
			case errors.Is(err, messaging.ErrEmptyMessage):
				utils.JSONError(c, http.StatusBadRequest, "Empty message", "content or imageUrl is required")
			case errors.Is(err, messaging.ErrNotParticipant):
				utils.JSONError(c, http.StatusForbidden, "Forbidden", "not a participant in this conversation")
			default:
				getLogger(c).Error("message send failed", zap.String("conversation", c.Param("id")), zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Failed to send message", "")
			}
			return
		}
		c.JSON(http.StatusCreated, message)
	}
}

// ListMessagesHandler returns a page of a conversation's messages.
func ListMessagesHandler(svc messaging.MessagingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}

		limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)
		messages, err := svc.ListMessages(c.Request.Context(), profileID, c.Param("id"), limit)
		if err != nil {
			if errors.Is(err, messaging.ErrNotParticipant) {
				utils.JSONError(c, http.StatusForbidden, "Forbidden", "not a participant in this conversation")
				return
			}
			getLogger(c).Error("message list failed", zap.String("conversation", c.Param("id")), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to load messages", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}

// MarkMessagesReadHandler marks the other side's messages as read.
func MarkMessagesReadHandler(svc messaging.MessagingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}
		if err := svc.MarkRead(c.Request.Context(), profileID, c.Param("id")); err != nil {
			if errors.Is(err, messaging.ErrNotParticipant) {
				utils.JSONError(c, http.StatusForbidden, "Forbidden", "not a participant in this conversation")
				return
			}
			getLogger(c).Error("mark read failed", zap.String("conversation", c.Param("id")), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to mark messages read", "")
			return
		}
		c.JSON(http.StatusOK, gin.H{"read": true})
	}
}
