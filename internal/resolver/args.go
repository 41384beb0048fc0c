package resolver

import (
	"encoding/json"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/orders"
	"github.com/imrishuroy/stripe-graphql-api/internal/payments"
	"github.com/imrishuroy/stripe-graphql-api/internal/products"
	"github.com/imrishuroy/stripe-graphql-api/internal/subscriptions"
	"github.com/imrishuroy/stripe-graphql-api/internal/users"
)

type idArgs struct {
	ID string `json:"id" validate:"required"`
}

type userIDArgs struct {
	UserID string `json:"userId" validate:"required"`
}

type orderIDArgs struct {
	OrderID string `json:"orderId" validate:"required"`
}

type customerIDArgs struct {
	CustomerID string `json:"customerId" validate:"required"`
}

type productIDArgs struct {
	ProductID string `json:"productId" validate:"required"`
}

type categoryArgs struct {
	Category string `json:"category" validate:"required"`
}

type paymentIDArgs struct {
	PaymentID string `json:"paymentId" validate:"required"`
}

// planArgs leaves the plan unchecked; the billing gateway owns that check.
type planArgs struct {
	Plan subscriptions.Plan `json:"plan"`
}

type orderStatusArgs struct {
	OrderID string        `json:"orderId" validate:"required"`
	Status  orders.Status `json:"status" validate:"required,oneof=pending paid fulfilled failed"`
}

type createUserArgs struct {
	Input *users.CreateInput `json:"input" validate:"required"`
}

type createSubscriptionArgs struct {
	Input *subscriptions.CreateInput `json:"input" validate:"required"`
}

type updateSubscriptionArgs struct {
	Input *subscriptions.UpdateInput `json:"input" validate:"required"`
}

type createOrderArgs struct {
	Input *orders.CreateInput `json:"input" validate:"required"`
}

type createProductArgs struct {
	Input *products.CreateInput `json:"input" validate:"required"`
}

type updateProductArgs struct {
	Input *products.UpdateInput `json:"input" validate:"required"`
}

type createPaymentArgs struct {
	Input *payments.CreateInput `json:"input" validate:"required"`
}

// bind decodes the request arguments into T and validates them.
func bind[T any](r *Router, req Request) (*T, error) {
	var args T
	if raw := req.Arguments; len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &args); err != nil {
			return nil, apperr.Invalid("Invalid arguments: %s", err.Error())
		}
	}
	if err := r.validator.Struct(&args); err != nil {
		return nil, err
	}
	return &args, nil
}
