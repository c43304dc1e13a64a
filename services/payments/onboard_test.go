package payments

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/msutyak/careconnect/models"

	"go.uber.org/zap"
)

type onboardFixture struct {
	svc        *DefaultPaymentService
	caregivers *fakeCaregivers
	gateway    *fakeGateway
}

func newOnboardFixture() *onboardFixture {
	f := &onboardFixture{
		caregivers: newFakeCaregivers(&models.Caregiver{ID: "cg_1", ProfileID: "prof_cg"}),
		gateway:    newFakeGateway(),
	}
	f.svc = &DefaultPaymentService{
		Gateway:    f.gateway,
		Caregivers: f.caregivers,
		Profiles: newFakeProfiles(
			&models.Profile{ID: "prof_cg", FirstName: "Sam", LastName: "Okafor", Email: "sam@example.com"},
		),
		Logger: zap.NewNop(),
	}
	return f
}

func TestCreateOnboardingLink(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and persists id", func(t *testing.T) {
		f := newOnboardFixture()

		link, err := f.svc.CreateOnboardingLink(ctx, "prof_cg", "", "")
		if err != nil {
			t.Fatalf("CreateOnboardingLink: %v", err)
		}
		if link.StripeAccountID != "acct_test_1" {
			t.Errorf("account id = %q", link.StripeAccountID)
		}
		if !strings.Contains(link.URL, "acct_test_1") {
			t.Errorf("link url = %q, want it to reference the account", link.URL)
		}
		if got := f.caregivers.caregivers["cg_1"].StripeAccountID; got != "acct_test_1" {
			t.Errorf("persisted account id = %q", got)
		}
	})

	t.Run("repeated calls reuse the account", func(t *testing.T) {
		f := newOnboardFixture()

		first, err := f.svc.CreateOnboardingLink(ctx, "prof_cg", "", "")
		if err != nil {
			t.Fatal(err)
		}
		second, err := f.svc.CreateOnboardingLink(ctx, "prof_cg", "", "")
		if err != nil {
			t.Fatal(err)
		}
		if f.gateway.createdAccounts != 1 {
			t.Fatalf("created %d accounts, want 1", f.gateway.createdAccounts)
		}
		if first.StripeAccountID != second.StripeAccountID {
			t.Errorf("account ids differ: %q vs %q", first.StripeAccountID, second.StripeAccountID)
		}
	})

	t.Run("profile without caregiver record", func(t *testing.T) {
		f := newOnboardFixture()

		_, err := f.svc.CreateOnboardingLink(ctx, "prof_rcp", "", "")
		if !errors.Is(err, ErrNotACaregiver) {
			t.Fatalf("error = %v, want ErrNotACaregiver", err)
		}
	})

	t.Run("persistence failure after account creation is fatal", func(t *testing.T) {
		f := newOnboardFixture()
		f.caregivers.setAccountErr = errStorageDown

		_, err := f.svc.CreateOnboardingLink(ctx, "prof_cg", "", "")
		if !errors.Is(err, ErrFailedToPersist) {
			t.Fatalf("error = %v, want ErrFailedToPersist", err)
		}
		// The error must name the orphaned account so operators can recover it.
		if !strings.Contains(err.Error(), "acct_test_1") {
			t.Errorf("error does not reference the orphaned account: %v", err)
		}
	})
}
