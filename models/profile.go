package models

import "time"

// User roles.
const (
	RoleCaregiver = "caregiver"
	RoleRecipient = "recipient"
)

// Profile is the account record shared by caregivers and care recipients.
type Profile struct {
	ID                  string    `bson:"id" json:"id"`
	Role                string    `bson:"role" json:"role"`
	FirstName           string    `bson:"first_name" json:"firstName"`
	LastName            string    `bson:"last_name" json:"lastName"`
	Email               string    `bson:"email" json:"email"`
	PasswordHash        string    `bson:"password_hash" json:"-"`
	Phone               string    `bson:"phone,omitempty" json:"phone,omitempty"`
	State               string    `bson:"state,omitempty" json:"state,omitempty"`
	City                string    `bson:"city,omitempty" json:"city,omitempty"`
	Address             string    `bson:"address,omitempty" json:"address,omitempty"`
	AvatarURL           string    `bson:"avatar_url,omitempty" json:"avatarUrl,omitempty"`
	FCMToken            string    `bson:"fcm_token,omitempty" json:"-"`
	OnboardingCompleted bool      `bson:"onboarding_completed" json:"onboardingCompleted"`
	CreatedAt           time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time `bson:"updated_at" json:"updatedAt"`
}

// FullName returns the display name used in notifications and provider records.
func (p Profile) FullName() string {
	return p.FirstName + " " + p.LastName
}
