package handlers

import (
	"net/http"

	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger retrieves a zap logger from the gin context, falling back to the
// process logger.
func getLogger(c *gin.Context) *zap.Logger {
	if l, exists := c.Get("logger"); exists {
		if logger, ok := l.(*zap.Logger); ok {
			return logger
		}
	}
	return utils.GetLogger()
}

// authedProfileID returns the profile id set by the auth middleware, or ""
// with a 401 already written.
func authedProfileID(c *gin.Context) string {
	id, exists := c.Get("userID")
	if !exists {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing authentication")
		return ""
	}
	profileID, ok := id.(string)
	if !ok || profileID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "missing authentication")
		return ""
	}
	return profileID
}
