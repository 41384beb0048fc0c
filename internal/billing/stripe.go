package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider implements Provider against the Stripe API.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider returns a provider authenticated with secretKey.
func NewStripeProvider(secretKey string) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &StripeProvider{api: api}
}

// CreateCustomer creates a Stripe customer named name and returns its id.
func (p *StripeProvider) CreateCustomer(ctx context.Context, name string) (string, error) {
	params := &stripe.CustomerParams{Name: stripe.String(name)}
	params.Context = ctx
	c, err := p.api.Customers.New(params)
	if err != nil {
		return "", wrapStripe("create customer", err)
	}
	return c.ID, nil
}

// CreateSubscription subscribes customerID to priceID with payment left
// incomplete, so the caller can confirm it with the returned client secret.
func (p *StripeProvider) CreateSubscription(ctx context.Context, customerID, priceID string) (*ProviderSubscription, error) {
	params := &stripe.SubscriptionParams{
		Customer:        stripe.String(customerID),
		Items:           []*stripe.SubscriptionItemsParams{{Price: stripe.String(priceID)}},
		PaymentBehavior: stripe.String("default_incomplete"),
	}
	params.Context = ctx
	params.AddExpand("latest_invoice.payment_intent")

	sub, err := p.api.Subscriptions.New(params)
	if err != nil {
		return nil, wrapStripe("create subscription", err)
	}
	return &ProviderSubscription{ID: sub.ID, ClientSecret: clientSecret(sub)}, nil
}

func clientSecret(sub *stripe.Subscription) string {
	if sub.LatestInvoice == nil || sub.LatestInvoice.PaymentIntent == nil {
		return ""
	}
	return sub.LatestInvoice.PaymentIntent.ClientSecret
}

// ProviderError carries the message Stripe reported for a failed call.
type ProviderError struct {
	Code string
	Msg  string
}

func (e *ProviderError) Error() string { return e.Msg }

func wrapStripe(op string, err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return fmt.Errorf("%s: %w", op, &ProviderError{Code: string(se.Code), Msg: se.Msg})
	}
	return fmt.Errorf("%s: %w", op, err)
}
