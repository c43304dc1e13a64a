package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthMiddleware validates the bearer token and checks its hash against
// the auth cache, so tokens invalidated by logout or a later sign-in are
// rejected before their expiry. On success the profile id is set as "userID"
// in the gin context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		profileID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || profileID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		cacheKey := utils.AuthCachePrefix + profileID
		cachedHash, err := utils.GetAuthCacheClient().Get(c.Request.Context(), cacheKey).Result()
		if err == redis.Nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Authorization unavailable"})
			return
		}
		if cachedHash != utils.HashToken(tokenString) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token superseded"})
			return
		}

		// Sliding expiry keeps active sessions alive.
		_ = utils.GetAuthCacheClient().Expire(c.Request.Context(), cacheKey, 72*time.Hour).Err()

		c.Set("userID", profileID)
		c.Next()
	}
}
