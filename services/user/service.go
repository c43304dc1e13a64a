package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	caregiverRepo "github.com/msutyak/careconnect/database/repository/caregiver"
	profileRepo "github.com/msutyak/careconnect/database/repository/profile"
	recipientRepo "github.com/msutyak/careconnect/database/repository/recipient"
	"github.com/msutyak/careconnect/models"
	"github.com/msutyak/careconnect/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Session tokens are long-lived; the mobile client refreshes by signing in
// again. The cached hash expires with the token so revocation and expiry
// stay in sync.
const tokenTTL = 72 * time.Hour

var (
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnknownRole        = errors.New("role must be caregiver or recipient")
)

// DefaultUserService is the production UserService.
type DefaultUserService struct {
	Profiles   profileRepo.ProfileRepository
	Caregivers caregiverRepo.CaregiverRepository
	Recipients recipientRepo.RecipientRepository
	Logger     *zap.Logger
}

// Register creates the shared profile plus the role-specific record and
// signs the new account in.
func (s *DefaultUserService) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if input.Role != models.RoleCaregiver && input.Role != models.RoleRecipient {
		return nil, ErrUnknownRole
	}

	if existing, err := s.Profiles.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check email availability: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := models.Profile{
		ID:           uuid.NewString(),
		Role:         input.Role,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
	}
	if _, err := s.Profiles.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	switch input.Role {
	case models.RoleCaregiver:
		_, err = s.Caregivers.Create(ctx, models.Caregiver{
			ID:        uuid.NewString(),
			ProfileID: profile.ID,
		})
	case models.RoleRecipient:
		_, err = s.Recipients.Create(ctx, models.CareRecipient{
			ID:        uuid.NewString(),
			ProfileID: profile.ID,
			CareFor:   models.CareForSelf,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("create %s record: %w", input.Role, err)
	}

	s.Logger.Info("account registered",
		zap.String("profile", profile.ID), zap.String("role", profile.Role))

	return s.issueSession(ctx, profile)
}

// Authenticate verifies credentials and issues a fresh session token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	profile, err := s.Profiles.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrInvalidCredentials
		}
		s.Logger.Error("profile lookup failed during sign-in", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueSession(ctx, *profile)
}

// issueSession mints a JWT and caches its hash so the auth middleware can
// reject tokens that were invalidated by a later sign-in or logout.
func (s *DefaultUserService) issueSession(ctx context.Context, profile models.Profile) (*AuthResponse, error) {
	token, err := utils.GenerateToken(profile.ID, profile.Email, profile.Role, tokenTTL)
	if err != nil {
		s.Logger.Error("token generation failed", zap.String("profile", profile.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	cacheKey := utils.AuthCachePrefix + profile.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, utils.HashToken(token), tokenTTL).Err(); err != nil {
		s.Logger.Error("auth cache write failed", zap.String("profile", profile.ID), zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{Token: token, Profile: profile}, nil
}

func (s *DefaultUserService) GetProfile(ctx context.Context, profileID string) (*models.Profile, error) {
	return s.Profiles.GetByID(ctx, profileID)
}

// UpdateProfile writes the mutable profile fields. Role, email and password
// hash are not updatable through this path.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	current, err := s.Profiles.GetByID(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	current.FirstName = orKeep(profile.FirstName, current.FirstName)
	current.LastName = orKeep(profile.LastName, current.LastName)
	current.Phone = orKeep(profile.Phone, current.Phone)
	current.State = orKeep(profile.State, current.State)
	current.City = orKeep(profile.City, current.City)
	current.Address = orKeep(profile.Address, current.Address)
	current.AvatarURL = orKeep(profile.AvatarURL, current.AvatarURL)
	if profile.OnboardingCompleted {
		current.OnboardingCompleted = true
	}
	if err := s.Profiles.Update(ctx, *current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *DefaultUserService) SetPushToken(ctx context.Context, profileID, token string) error {
	return s.Profiles.SetFCMToken(ctx, profileID, token)
}

// Logout drops the cached token hash; the middleware then rejects the JWT
// even though it has not expired.
func (s *DefaultUserService) Logout(ctx context.Context, profileID string) error {
	return utils.GetAuthCacheClient().Del(ctx, utils.AuthCachePrefix+profileID).Err()
}

func orKeep(next, current string) string {
	if next == "" {
		return current
	}
	return next
}
