// Package orders stores customer orders under composite PK/SK keys.
package orders

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/aws"
	"github.com/imrishuroy/stripe-graphql-api/internal/dynamo"
)

const notFound = "Order not found"

// Store encapsulates operations on the orders table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
	logger    *zap.Logger
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		nowFunc:   func() time.Time { return time.Now().UTC() },
		logger:    zap.NewNop(),
	}
}

// WithLogger sets the logger used for store events.
func (s *Store) WithLogger(l *zap.Logger) *Store {
	s.logger = l.With(zap.String("table", s.tableName))
	return s
}

// LineTotal is quantity × unitPrice rounded to cents.
func LineTotal(quantity int, unitPrice float64) float64 {
	return math.Round(float64(quantity)*unitPrice*100) / 100
}

// Create persists a new pending order. Each line's totalPrice is derived
// from its quantity and unit price.
func (s *Store) Create(ctx context.Context, in CreateInput) (*Order, error) {
	orderID := uuid.NewString()
	now := s.nowFunc()

	items := make([]Item, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, Item{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  LineTotal(it.Quantity, it.UnitPrice),
		})
	}

	o := Order{
		PK:          dynamo.PartitionKey(KeyPrefix, orderID),
		SK:          dynamo.MetadataSK,
		OrderID:     orderID,
		CustomerID:  in.CustomerID,
		Items:       items,
		TotalAmount: in.TotalAmount,
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
		Type:        TypeOrder,
	}

	s.logger.Debug("creating order", zap.Any("order", o))
	if err := dynamo.Put(ctx, s.client, s.tableName, o); err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to create order", err)
	}
	s.logger.Info("order created", zap.String("orderId", orderID), zap.Float64("totalAmount", o.TotalAmount))
	return &o, nil
}

// Get fetches an order by orderId. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	found, err := dynamo.Get(ctx, s.client, s.tableName, dynamo.EntityKey(KeyPrefix, orderID), &o)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to get order", err)
	}
	if !found {
		s.logger.Debug("order not found", zap.String("orderId", orderID))
		return nil, nil
	}
	return &o, nil
}

// List returns every order.
func (s *Store) List(ctx context.Context) ([]Order, error) {
	out, err := dynamo.List[Order](ctx, s.client, s.tableName, dynamo.IndexType, "type", TypeOrder)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to list orders", err)
	}
	return out, nil
}

// ListByCustomer returns the orders placed by customerID.
func (s *Store) ListByCustomer(ctx context.Context, customerID string) ([]Order, error) {
	out, err := dynamo.List[Order](ctx, s.client, s.tableName, dynamo.IndexCustomerID, "customerId", customerID)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to get customer orders", err)
	}
	return out, nil
}

// UpdateStatus sets status and updatedAt, leaving every other attribute as is.
func (s *Store) UpdateStatus(ctx context.Context, orderID string, status Status) (*Order, error) {
	u := dynamo.NewUpdate().
		Set("status", status).
		Set("updatedAt", s.nowFunc()).
		RequireExists(dynamo.AttrPK)

	var o Order
	found, err := dynamo.Apply(ctx, s.client, s.tableName, dynamo.EntityKey(KeyPrefix, orderID), u, &o)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to update order status", err)
	}
	if !found {
		return nil, apperr.NotFound(notFound)
	}
	s.logger.Info("order status updated", zap.String("orderId", orderID), zap.String("status", string(status)))
	return &o, nil
}
