package payments

import "time"

// KeyPrefix is the partition key prefix, as in PK=PAYMENT#<paymentId>.
const KeyPrefix = "PAYMENT"

// Status is the settlement state of a payment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// Payment represents the item stored in the payments table. Payments carry
// no type discriminator and are only reachable by key, order or status.
type Payment struct {
	PK             string         `dynamodbav:"PK" json:"PK"`
	SK             string         `dynamodbav:"SK" json:"SK"`
	PaymentID      string         `dynamodbav:"paymentId" json:"paymentId"`
	OrderID        string         `dynamodbav:"orderId" json:"orderId"`
	StripeChargeID string         `dynamodbav:"stripeChargeId" json:"stripeChargeId"`
	Amount         float64        `dynamodbav:"amount" json:"amount"`
	Currency       string         `dynamodbav:"currency" json:"currency"`
	Status         Status         `dynamodbav:"status" json:"status"`
	FailureReason  string         `dynamodbav:"failureReason,omitempty" json:"failureReason,omitempty"`
	RetryCount     int            `dynamodbav:"retryCount" json:"retryCount"`
	Metadata       map[string]any `dynamodbav:"metadata" json:"metadata"`
	CreatedAt      time.Time      `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time      `dynamodbav:"updatedAt" json:"updatedAt"`
}

// CreateInput is the createPayment mutation input.
type CreateInput struct {
	OrderID        string         `json:"orderId" validate:"required"`
	StripeChargeID string         `json:"stripeChargeId" validate:"required"`
	Amount         float64        `json:"amount" validate:"gte=0"`
	Currency       string         `json:"currency" validate:"required"`
	Status         Status         `json:"status" validate:"required,oneof=pending succeeded failed refunded"`
	FailureReason  string         `json:"failureReason,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}
