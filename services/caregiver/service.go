package caregiver

import (
	"context"
	"errors"
	"fmt"

	availabilityRepo "github.com/msutyak/careconnect/database/repository/availability"
	caregiverRepo "github.com/msutyak/careconnect/database/repository/caregiver"
	"github.com/msutyak/careconnect/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrNotACaregiver = errors.New("caregiver record not found for this profile")

// UpdateInput carries the caregiver-editable fields of their listing.
// Pointers distinguish "leave unchanged" from explicit zero values.
type UpdateInput struct {
	Bio             *string  `json:"bio"`
	EducationLevel  *string  `json:"educationLevel"`
	Expertise       []string `json:"expertise"`
	Interests       []string `json:"interests"`
	HourlyRateCents *int64   `json:"hourlyRateCents"`
	LicenseNumber   *string  `json:"licenseNumber"`
	LicenseState    *string  `json:"licenseState"`
	YearsExperience *int     `json:"yearsExperience"`
	IsAvailable     *bool    `json:"isAvailable"`
}

// CaregiverService manages caregiver listings, discovery, and schedules.
type CaregiverService interface {
	GetByProfile(ctx context.Context, profileID string) (*models.Caregiver, error)
	Get(ctx context.Context, id string) (*models.Caregiver, error)
	Update(ctx context.Context, profileID string, input UpdateInput) (*models.Caregiver, error)
	Search(ctx context.Context, criteria caregiverRepo.SearchCriteria) ([]models.Caregiver, error)
	SetWeeklySchedule(ctx context.Context, profileID string, slots []models.AvailabilitySlot) error
	GetSchedule(ctx context.Context, caregiverID string) ([]models.AvailabilitySlot, error)
	SetDateOverride(ctx context.Context, profileID string, override models.AvailabilityOverride) error
	ListOverrides(ctx context.Context, caregiverID, fromDate string) ([]models.AvailabilityOverride, error)
}

// DefaultCaregiverService is the production CaregiverService.
type DefaultCaregiverService struct {
	Caregivers   caregiverRepo.CaregiverRepository
	Availability availabilityRepo.AvailabilityRepository
	Logger       *zap.Logger
}

func (s *DefaultCaregiverService) GetByProfile(ctx context.Context, profileID string) (*models.Caregiver, error) {
	caregiver, err := s.Caregivers.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotACaregiver, profileID)
	}
	return caregiver, nil
}

func (s *DefaultCaregiverService) Get(ctx context.Context, id string) (*models.Caregiver, error) {
	return s.Caregivers.GetByID(ctx, id)
}

func (s *DefaultCaregiverService) Update(ctx context.Context, profileID string, input UpdateInput) (*models.Caregiver, error) {
	caregiver, err := s.GetByProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	if input.Bio != nil {
		caregiver.Bio = *input.Bio
	}
	if input.EducationLevel != nil {
		caregiver.EducationLevel = *input.EducationLevel
	}
	if input.Expertise != nil {
		caregiver.Expertise = input.Expertise
	}
	if input.Interests != nil {
		caregiver.Interests = input.Interests
	}
	if input.HourlyRateCents != nil {
		caregiver.HourlyRateCents = *input.HourlyRateCents
	}
	if input.LicenseNumber != nil {
		caregiver.LicenseNumber = *input.LicenseNumber
	}
	if input.LicenseState != nil {
		caregiver.LicenseState = *input.LicenseState
	}
	if input.YearsExperience != nil {
		caregiver.YearsExperience = *input.YearsExperience
	}
	if input.IsAvailable != nil {
		caregiver.IsAvailable = *input.IsAvailable
	}

	if err := s.Caregivers.Update(ctx, *caregiver); err != nil {
		return nil, err
	}
	return caregiver, nil
}

func (s *DefaultCaregiverService) Search(ctx context.Context, criteria caregiverRepo.SearchCriteria) ([]models.Caregiver, error) {
	return s.Caregivers.Search(ctx, criteria)
}

// SetWeeklySchedule replaces the caregiver's recurring schedule wholesale.
// The client always sends the full week, so replace semantics keep server
// and client state trivially consistent.
func (s *DefaultCaregiverService) SetWeeklySchedule(ctx context.Context, profileID string, slots []models.AvailabilitySlot) error {
	caregiver, err := s.GetByProfile(ctx, profileID)
	if err != nil {
		return err
	}
	for i := range slots {
		slots[i].ID = uuid.NewString()
		slots[i].CaregiverID = caregiver.ID
	}
	return s.Availability.ReplaceSlots(ctx, caregiver.ID, slots)
}

func (s *DefaultCaregiverService) GetSchedule(ctx context.Context, caregiverID string) ([]models.AvailabilitySlot, error) {
	return s.Availability.ListSlots(ctx, caregiverID)
}

func (s *DefaultCaregiverService) SetDateOverride(ctx context.Context, profileID string, override models.AvailabilityOverride) error {
	caregiver, err := s.GetByProfile(ctx, profileID)
	if err != nil {
		return err
	}
	override.CaregiverID = caregiver.ID
	if override.ID == "" {
		override.ID = uuid.NewString()
	}
	return s.Availability.UpsertOverride(ctx, override)
}

func (s *DefaultCaregiverService) ListOverrides(ctx context.Context, caregiverID, fromDate string) ([]models.AvailabilityOverride, error) {
	return s.Availability.ListOverrides(ctx, caregiverID, fromDate)
}
