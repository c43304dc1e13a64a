package handlers

import (
	"errors"
	"net/http"

	"github.com/msutyak/careconnect/services/user"
	"github.com/msutyak/careconnect/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHandler creates a new account and signs it in.
func RegisterHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var input user.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		resp, err := svc.Register(c.Request.Context(), input)
		if err != nil {
			switch {
			case errors.Is(err, user.ErrEmailTaken):
				utils.JSONError(c, http.StatusConflict, "Email already registered", "sign in instead")
			case errors.Is(err, user.ErrUnknownRole):
				utils.JSONError(c, http.StatusBadRequest, "Invalid role", err.Error())
			default:
				logger.Error("registration failed", zap.Error(err))
				utils.JSONError(c, http.StatusInternalServerError, "Registration failed", "please try again")
			}
			return
		}
		c.JSON(http.StatusCreated, resp)
	}
}

// LoginHandler authenticates credentials and returns a session token.
func LoginHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		resp, err := svc.Authenticate(c.Request.Context(), input.Email, input.Password)
		if err != nil {
			if errors.Is(err, user.ErrInvalidCredentials) {
				utils.JSONError(c, http.StatusUnauthorized, "Invalid email or password", "")
				return
			}
			logger.Error("sign-in failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Sign-in failed", "please try again")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// LogoutHandler invalidates the caller's session token.
func LogoutHandler(svc user.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		profileID := authedProfileID(c)
		if profileID == "" {
			return
		}
		if err := svc.Logout(c.Request.Context(), profileID); err != nil {
			getLogger(c).Error("logout failed", zap.String("profile", profileID), zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Logout failed", "please try again")
			return
		}
		c.JSON(http.StatusOK, gin.H{"loggedOut": true})
	}
}
