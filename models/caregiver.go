package models

import "time"

// Caregiver is the provider-side profile of a caregiver account.
type Caregiver struct {
	ID                       string    `bson:"id" json:"id"`
	ProfileID                string    `bson:"profile_id" json:"profileId"`
	Bio                      string    `bson:"bio,omitempty" json:"bio,omitempty"`
	EducationLevel           string    `bson:"education_level,omitempty" json:"educationLevel,omitempty"`
	Expertise                []string  `bson:"expertise" json:"expertise"`
	Interests                []string  `bson:"interests,omitempty" json:"interests,omitempty"`
	HourlyRateCents          int64     `bson:"hourly_rate_cents" json:"hourlyRateCents"`
	LicenseNumber            string    `bson:"license_number,omitempty" json:"licenseNumber,omitempty"`
	LicenseState             string    `bson:"license_state,omitempty" json:"licenseState,omitempty"`
	YearsExperience          int       `bson:"years_experience,omitempty" json:"yearsExperience,omitempty"`
	StripeAccountID          string    `bson:"stripe_account_id,omitempty" json:"stripeAccountId,omitempty"`
	StripeOnboardingComplete bool      `bson:"stripe_onboarding_complete" json:"stripeOnboardingComplete"`
	AverageRating            float64   `bson:"average_rating" json:"averageRating"`
	TotalReviews             int       `bson:"total_reviews" json:"totalReviews"`
	TotalBookings            int       `bson:"total_bookings" json:"totalBookings"`
	IsAvailable              bool      `bson:"is_available" json:"isAvailable"`
	CreatedAt                time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt                time.Time `bson:"updated_at" json:"updatedAt"`

	Profile *Profile `bson:"profile,omitempty" json:"profile,omitempty"`
}
