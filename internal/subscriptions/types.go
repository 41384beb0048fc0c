package subscriptions

import "time"

// TypeSubscription is the discriminator indexed by TypeIndex.
const TypeSubscription = "subscription"

// Plan is a billing tier.
type Plan string

const (
	PlanStarter Plan = "STARTER"
	PlanPro     Plan = "PRO"
	PlanPartner Plan = "PARTNER"
)

// Status is the lifecycle state of a subscription.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
	StatusTrial     Status = "TRIAL"
)

// Subscription is the item stored in the subscriptions table, keyed by id.
type Subscription struct {
	ID                   string    `dynamodbav:"id" json:"id"`
	UserID               string    `dynamodbav:"userId" json:"userId"`
	Plan                 Plan      `dynamodbav:"plan" json:"plan"`
	Status               Status    `dynamodbav:"status" json:"status"`
	StripeSubscriptionID string    `dynamodbav:"stripeSubscriptionId,omitempty" json:"stripeSubscriptionId,omitempty"`
	StripeCustomerID     string    `dynamodbav:"stripeCustomerId,omitempty" json:"stripeCustomerId,omitempty"`
	StartDate            string    `dynamodbav:"startDate" json:"startDate"`
	EndDate              string    `dynamodbav:"endDate,omitempty" json:"endDate,omitempty"`
	CreatedAt            time.Time `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time `dynamodbav:"updatedAt" json:"updatedAt"`
	Type                 string    `dynamodbav:"type" json:"type"`
}

// CreateInput is the createSubscription mutation input.
type CreateInput struct {
	UserID               string `json:"userId" validate:"required"`
	Plan                 Plan   `json:"plan" validate:"required,oneof=STARTER PRO PARTNER"`
	Status               Status `json:"status" validate:"required,oneof=ACTIVE CANCELLED EXPIRED TRIAL"`
	StripeSubscriptionID string `json:"stripeSubscriptionId,omitempty"`
	StripeCustomerID     string `json:"stripeCustomerId,omitempty"`
	StartDate            string `json:"startDate" validate:"required"`
	EndDate              string `json:"endDate,omitempty"`
}

// UpdateInput is the updateSubscription mutation input. Nil fields are left
// unchanged.
type UpdateInput struct {
	ID                   string  `json:"id" validate:"required"`
	Plan                 *Plan   `json:"plan,omitempty" validate:"omitempty,oneof=STARTER PRO PARTNER"`
	Status               *Status `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE CANCELLED EXPIRED TRIAL"`
	StripeSubscriptionID *string `json:"stripeSubscriptionId,omitempty"`
	EndDate              *string `json:"endDate,omitempty"`
}
