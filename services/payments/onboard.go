package payments

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Default deep links back into the mobile app when the caller does not
// supply its own return targets.
const (
	defaultOnboardReturnURL  = "careconnect://stripe-onboard-complete"
	defaultOnboardRefreshURL = "careconnect://stripe-onboard-refresh"
)

// CreateOnboardingLink ensures the caregiver has a Stripe Express account and
// returns a fresh hosted-onboarding URL for it. Account creation happens at
// most once per caregiver; subsequent calls mint a new link for the existing
// account, since links are single use and expire.
func (s *DefaultPaymentService) CreateOnboardingLink(ctx context.Context, profileID, returnURL, refreshURL string) (*OnboardingLink, error) {
	caregiver, err := s.Caregivers.GetByProfileID(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: profile %s: %v", ErrNotACaregiver, profileID, err)
	}

	accountID := caregiver.StripeAccountID
	if accountID == "" {
		profile, err := s.Profiles.GetByID(ctx, profileID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrProfileNotFound, err)
		}

		accountID, err = s.Gateway.CreateExpressAccount(ctx, AccountSpec{
			Email:     profile.Email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Metadata: map[string]string{
				"careconnect_user_id":      profile.ID,
				"careconnect_caregiver_id": caregiver.ID,
			},
		})
		if err != nil {
			return nil, err
		}

		// The account now exists at Stripe. Losing this write would orphan
		// it and a retry would create a second account, so the failure is
		// surfaced as fatal rather than swallowed.
		if err := s.Caregivers.SetStripeAccountID(ctx, caregiver.ID, accountID); err != nil {
			s.Logger.Error("stripe account created but not persisted",
				zap.String("caregiver", caregiver.ID),
				zap.String("stripe_account", accountID),
				zap.Error(err))
			return nil, fmt.Errorf("%w: account %s for caregiver %s: %v", ErrFailedToPersist, accountID, caregiver.ID, err)
		}

		s.Logger.Info("stripe express account created",
			zap.String("caregiver", caregiver.ID),
			zap.String("stripe_account", accountID))
	}

	if returnURL == "" {
		returnURL = defaultOnboardReturnURL
	}
	if refreshURL == "" {
		refreshURL = defaultOnboardRefreshURL
	}

	url, err := s.Gateway.CreateAccountLink(ctx, accountID, returnURL, refreshURL)
	if err != nil {
		return nil, err
	}

	return &OnboardingLink{URL: url, StripeAccountID: accountID}, nil
}
