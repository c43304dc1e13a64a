package user

import (
	"context"

	"github.com/msutyak/careconnect/models"
)

// RegisterInput is the payload for account creation. Role decides which
// domain record is created next to the profile.
type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=8"`
	Role      string `json:"role" binding:"required"`
}

// AuthResponse carries the session token and the authenticated profile.
type AuthResponse struct {
	Token   string         `json:"token"`
	Profile models.Profile `json:"profile"`
}

// UserService handles account lifecycle and authentication.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	GetProfile(ctx context.Context, profileID string) (*models.Profile, error)
	UpdateProfile(ctx context.Context, profile models.Profile) (*models.Profile, error)
	SetPushToken(ctx context.Context, profileID, token string) error
	Logout(ctx context.Context, profileID string) error
}
