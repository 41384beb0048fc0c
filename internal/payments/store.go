// Package payments records charge attempts against orders.
package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imrishuroy/stripe-graphql-api/internal/aws"
	"github.com/imrishuroy/stripe-graphql-api/internal/dynamo"
)

// Store encapsulates operations on the payments table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
	logger    *zap.Logger
}

// NewStore creates a new payments Store.
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

// Create persists a new payment with retryCount 0.
func (s *Store) Create(ctx context.Context, in CreateInput) (*Payment, error) {
	paymentID := uuid.NewString()
	now := s.nowFunc()

	metadata := in.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	p := Payment{
		PK:             dynamo.PartitionKey(KeyPrefix, paymentID),
		SK:             dynamo.MetadataSK,
		PaymentID:      paymentID,
		OrderID:        in.OrderID,
		StripeChargeID: in.StripeChargeID,
		Amount:         in.Amount,
		Currency:       in.Currency,
		Status:         in.Status,
		FailureReason:  in.FailureReason,
		RetryCount:     0,
		Metadata:       metadata,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	s.logger.Debug("creating payment", zap.Any("payment", p))
	if err := dynamo.Put(ctx, s.client, s.tableName, p); err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to create payment", err)
	}
	s.logger.Info("payment created",
		zap.String("paymentId", paymentID),
		zap.String("orderId", p.OrderID),
		zap.String("status", string(p.Status)),
	)
	return &p, nil
}

// Get fetches a payment by paymentId. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, paymentID string) (*Payment, error) {
	var p Payment
	found, err := dynamo.Get(ctx, s.client, s.tableName, dynamo.EntityKey(KeyPrefix, paymentID), &p)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to get payment", err)
	}
	if !found {
		s.logger.Debug("payment not found", zap.String("paymentId", paymentID))
		return nil, nil
	}
	normalize(&p)
	return &p, nil
}

// ListByOrder returns the payments recorded against orderID.
func (s *Store) ListByOrder(ctx context.Context, orderID string) ([]Payment, error) {
	out, err := dynamo.List[Payment](ctx, s.client, s.tableName, dynamo.IndexOrderID, "orderId", orderID)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to get order payments", err)
	}
	for i := range out {
		normalize(&out[i])
	}
	return out, nil
}

// ListFailed returns every payment in the failed state.
func (s *Store) ListFailed(ctx context.Context) ([]Payment, error) {
	out, err := dynamo.List[Payment](ctx, s.client, s.tableName, dynamo.IndexStatus, "status", StatusFailed)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to get failed payments", err)
	}
	for i := range out {
		normalize(&out[i])
	}
	return out, nil
}

// normalize restores the empty metadata map that an encoder may have
// written as an absent attribute.
func normalize(p *Payment) {
	if p.Metadata == nil {
		p.Metadata = map[string]any{}
	}
}
