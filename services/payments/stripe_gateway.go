package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/account"
	"github.com/stripe/stripe-go/v76/accountlink"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/ephemeralkey"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// stripeAPIVersion pins the version ephemeral keys are minted against; it
// must match the version the mobile SDK initializes with.
const stripeAPIVersion = "2023-10-16"

// StripeGateway implements Gateway against the live Stripe API. The secret
// key is installed process-wide (stripe.Key) at startup.
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func (g *StripeGateway) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	params := &stripe.CustomerListParams{Email: stripe.String(email)}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	it := customer.List(params)
	if it.Next() {
		return it.Customer().ID, nil
	}
	if err := it.Err(); err != nil {
		return "", fmt.Errorf("list customers: %w", err)
	}
	return "", nil
}

func (g *StripeGateway) CreateCustomer(ctx context.Context, spec CustomerSpec) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(spec.Email),
		Name:  stripe.String(spec.Name),
	}
	params.Context = ctx
	params.AddMetadata("careconnect_user_id", spec.ProfileID)

	c, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("create customer: %w", err)
	}
	return c.ID, nil
}

func (g *StripeGateway) CreateEphemeralKey(ctx context.Context, customerID string) (string, error) {
	params := &stripe.EphemeralKeyParams{
		Customer:      stripe.String(customerID),
		StripeVersion: stripe.String(stripeAPIVersion),
	}
	params.Context = ctx

	key, err := ephemeralkey.New(params)
	if err != nil {
		return "", fmt.Errorf("create ephemeral key: %w", err)
	}
	return key.Secret, nil
}

func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, spec IntentSpec) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:               stripe.Int64(spec.AmountCents),
		Currency:             stripe.String(string(stripe.CurrencyUSD)),
		Customer:             stripe.String(spec.CustomerID),
		ApplicationFeeAmount: stripe.Int64(spec.ApplicationFeeCents),
		TransferData: &stripe.PaymentIntentTransferDataParams{
			Destination: stripe.String(spec.DestinationAccountID),
		},
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range spec.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}

func (g *StripeGateway) CreateExpressAccount(ctx context.Context, spec AccountSpec) (string, error) {
	params := &stripe.AccountParams{
		Type:  stripe.String(string(stripe.AccountTypeExpress)),
		Email: stripe.String(spec.Email),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
				Requested: stripe.Bool(true),
			},
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
		BusinessType: stripe.String("individual"),
		Individual: &stripe.PersonParams{
			FirstName: stripe.String(spec.FirstName),
			LastName:  stripe.String(spec.LastName),
			Email:     stripe.String(spec.Email),
		},
	}
	params.Context = ctx
	for k, v := range spec.Metadata {
		params.AddMetadata(k, v)
	}

	acct, err := account.New(params)
	if err != nil {
		return "", fmt.Errorf("create express account: %w", err)
	}
	return acct.ID, nil
}

func (g *StripeGateway) CreateAccountLink(ctx context.Context, accountID, returnURL, refreshURL string) (string, error) {
	params := &stripe.AccountLinkParams{
		Account:    stripe.String(accountID),
		ReturnURL:  stripe.String(returnURL),
		RefreshURL: stripe.String(refreshURL),
		Type:       stripe.String("account_onboarding"),
	}
	params.Context = ctx

	link, err := accountlink.New(params)
	if err != nil {
		return "", fmt.Errorf("create account link: %w", err)
	}
	return link.URL, nil
}
