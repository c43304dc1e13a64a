package payments

import "context"

// CustomerSpec describes the payer-side billing identity to create.
type CustomerSpec struct {
	Email     string
	Name      string
	ProfileID string
}

// IntentSpec describes a destination charge: the full amount is collected
// from the customer, the application fee is retained by the platform, and
// the remainder transfers to the caregiver's connected account.
type IntentSpec struct {
	AmountCents          int64
	ApplicationFeeCents  int64
	CustomerID           string
	DestinationAccountID string
	Metadata             map[string]string
}

// Intent is the provider-side charge authorization, confirmable client-side
// with the secret.
type Intent struct {
	ID           string
	ClientSecret string
}

// AccountSpec describes the payee-side connected account to create.
type AccountSpec struct {
	Email     string
	FirstName string
	LastName  string
	Metadata  map[string]string
}

// Gateway is the slice of the Stripe API the payment flows consume. The
// production implementation wraps stripe-go; tests substitute fakes.
type Gateway interface {
	// FindCustomerByEmail returns the id of an existing customer with the
	// given email, or "" when none exists.
	FindCustomerByEmail(ctx context.Context, email string) (string, error)
	CreateCustomer(ctx context.Context, spec CustomerSpec) (string, error)
	CreateEphemeralKey(ctx context.Context, customerID string) (string, error)
	CreatePaymentIntent(ctx context.Context, spec IntentSpec) (*Intent, error)
	CreateExpressAccount(ctx context.Context, spec AccountSpec) (string, error)
	CreateAccountLink(ctx context.Context, accountID, returnURL, refreshURL string) (string, error)
}
