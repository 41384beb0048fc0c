// Package billing creates provider-side subscriptions for the calling user.
package billing

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/subscriptions"
)

const fallback = "Failed to create subscription"

// Provider is the subset of a payment provider the gateway drives.
type Provider interface {
	CreateCustomer(ctx context.Context, name string) (customerID string, err error)
	CreateSubscription(ctx context.Context, customerID, priceID string) (*ProviderSubscription, error)
}

// ProviderSubscription is what the provider reports for a new subscription.
// ClientSecret is empty when no payment intent was returned.
type ProviderSubscription struct {
	ID           string
	ClientSecret string
}

// PlanSubscription is the planSubscriptionCreate result.
type PlanSubscription struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret,omitempty"`
}

// Prices maps each plan to its provider price id.
type Prices map[subscriptions.Plan]string

// NewPrices builds the plan table.
func NewPrices(starter, pro, partner string) Prices {
	return Prices{
		subscriptions.PlanStarter: starter,
		subscriptions.PlanPro:     pro,
		subscriptions.PlanPartner: partner,
	}
}

// Gateway creates subscriptions through a Provider.
type Gateway struct {
	provider Provider
	prices   Prices
	logger   *zap.Logger
}

// NewGateway returns a Gateway charging plans at prices.
func NewGateway(provider Provider, prices Prices) *Gateway {
	return &Gateway{provider: provider, prices: prices, logger: zap.NewNop()}
}

// WithLogger sets the logger used for billing events.
func (g *Gateway) WithLogger(l *zap.Logger) *Gateway {
	g.logger = l
	return g
}

// CreateSubscriptionForCaller creates a customer named after the caller and
// an incomplete subscription to plan, returning the client secret the
// frontend needs to confirm the first payment.
//
// The plan is checked before any provider call. Calls are not idempotent: a
// retry creates another customer and subscription.
func (g *Gateway) CreateSubscriptionForCaller(ctx context.Context, identity *events.AppSyncCognitoIdentity, plan subscriptions.Plan) (*PlanSubscription, error) {
	price, ok := g.prices[plan]
	if !ok || price == "" {
		return nil, apperr.Invalid("Invalid plan: %s", plan)
	}
	if identity == nil || identity.Username == "" {
		return nil, apperr.Invalid("Missing caller identity")
	}

	customerID, err := g.provider.CreateCustomer(ctx, identity.Username)
	if err != nil {
		g.logger.Error("create customer failed", zap.String("username", identity.Username), zap.Error(err))
		return nil, apperr.Upstream(fallback, err)
	}

	sub, err := g.provider.CreateSubscription(ctx, customerID, price)
	if err != nil {
		g.logger.Error("create subscription failed", zap.String("customerId", customerID), zap.Error(err))
		return nil, apperr.Upstream(fallback, err)
	}

	g.logger.Info("subscription created",
		zap.String("subscriptionId", sub.ID),
		zap.String("customerId", customerID),
		zap.String("plan", string(plan)),
		zap.Bool("clientSecret", sub.ClientSecret != ""),
	)
	return &PlanSubscription{ID: sub.ID, ClientSecret: sub.ClientSecret}, nil
}
