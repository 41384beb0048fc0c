package orders

import "time"

// TypeOrder is the discriminator indexed by TypeIndex.
const TypeOrder = "order"

// KeyPrefix is the partition key prefix, as in PK=ORDER#<orderId>.
const KeyPrefix = "ORDER"

// Status is the fulfilment state of an order.
type Status string

// Order statuses
const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusFulfilled Status = "fulfilled"
	StatusFailed    Status = "failed"
)

// Item is a single order line.
type Item struct {
	ProductID   string  `dynamodbav:"productId" json:"productId"`
	ProductName string  `dynamodbav:"productName" json:"productName"`
	Quantity    int     `dynamodbav:"quantity" json:"quantity"`
	UnitPrice   float64 `dynamodbav:"unitPrice" json:"unitPrice"`
	TotalPrice  float64 `dynamodbav:"totalPrice" json:"totalPrice"`
}

// Order represents the item stored in the orders table.
type Order struct {
	PK          string    `dynamodbav:"PK" json:"PK"` // ORDER#<orderId>
	SK          string    `dynamodbav:"SK" json:"SK"` // METADATA
	OrderID     string    `dynamodbav:"orderId" json:"orderId"`
	CustomerID  string    `dynamodbav:"customerId" json:"customerId"`
	Items       []Item    `dynamodbav:"items" json:"items"`
	TotalAmount float64   `dynamodbav:"totalAmount" json:"totalAmount"`
	Status      Status    `dynamodbav:"status" json:"status"`
	CreatedAt   time.Time `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `dynamodbav:"updatedAt" json:"updatedAt"`
	Type        string    `dynamodbav:"type" json:"type"`
}

// ItemInput is an order line as submitted. TotalPrice is recomputed.
type ItemInput struct {
	ProductID   string  `json:"productId" validate:"required"`
	ProductName string  `json:"productName" validate:"required"`
	Quantity    int     `json:"quantity" validate:"required,min=1"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
	TotalPrice  float64 `json:"totalPrice,omitempty"`
}

// CreateInput is the createOrder mutation input.
type CreateInput struct {
	CustomerID  string      `json:"customerId" validate:"required"`
	Items       []ItemInput `json:"items" validate:"required,min=1,dive"`
	TotalAmount float64     `json:"totalAmount" validate:"gte=0"`
}
