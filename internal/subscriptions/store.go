// Package subscriptions stores plan subscriptions.
package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/aws"
	"github.com/imrishuroy/stripe-graphql-api/internal/dynamo"
)

const notFound = "Subscription not found"

// Store encapsulates operations on the subscriptions table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
	logger    *zap.Logger
}

// NewStore creates a new subscriptions Store.
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

// Create persists a new subscription with a fresh id.
func (s *Store) Create(ctx context.Context, in CreateInput) (*Subscription, error) {
	now := s.nowFunc()
	sub := Subscription{
		ID:                   uuid.NewString(),
		UserID:               in.UserID,
		Plan:                 in.Plan,
		Status:               in.Status,
		StripeSubscriptionID: in.StripeSubscriptionID,
		StripeCustomerID:     in.StripeCustomerID,
		StartDate:            in.StartDate,
		EndDate:              in.EndDate,
		CreatedAt:            now,
		UpdatedAt:            now,
		Type:                 TypeSubscription,
	}

	s.logger.Debug("creating subscription", zap.Any("subscription", sub))
	if err := dynamo.Put(ctx, s.client, s.tableName, sub); err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to create subscription", err)
	}
	s.logger.Info("subscription created", zap.String("id", sub.ID), zap.String("userId", sub.UserID))
	return &sub, nil
}

// Get fetches a subscription by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, id string) (*Subscription, error) {
	return s.read(ctx, id, "Failed to get subscription")
}

func (s *Store) read(ctx context.Context, id, fallback string) (*Subscription, error) {
	var sub Subscription
	found, err := dynamo.Get(ctx, s.client, s.tableName, dynamo.IDKey(id), &sub)
	if err != nil {
		return nil, dynamo.Failure(s.logger, fallback, err)
	}
	if !found {
		s.logger.Debug("subscription not found", zap.String("id", id))
		return nil, nil
	}
	return &sub, nil
}

// List returns every subscription.
func (s *Store) List(ctx context.Context) ([]Subscription, error) {
	out, err := dynamo.List[Subscription](ctx, s.client, s.tableName, dynamo.IndexType, "type", TypeSubscription)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to list subscriptions", err)
	}
	return out, nil
}

// ListByUser returns the subscriptions owned by userID.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]Subscription, error) {
	out, err := dynamo.List[Subscription](ctx, s.client, s.tableName, dynamo.IndexUserID, "userId", userID)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to get user subscriptions", err)
	}
	return out, nil
}

// Update applies the non-nil fields of in and refreshes updatedAt.
func (s *Store) Update(ctx context.Context, in UpdateInput) (*Subscription, error) {
	u := dynamo.NewUpdate().Set("updatedAt", s.nowFunc())
	if in.Plan != nil {
		u.Set("plan", *in.Plan)
	}
	if in.Status != nil {
		u.Set("status", *in.Status)
	}
	if in.StripeSubscriptionID != nil {
		u.Set("stripeSubscriptionId", *in.StripeSubscriptionID)
	}
	if in.EndDate != nil {
		u.Set("endDate", *in.EndDate)
	}
	u.RequireExists(dynamo.AttrID)

	var sub Subscription
	found, err := dynamo.Apply(ctx, s.client, s.tableName, dynamo.IDKey(in.ID), u, &sub)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to update subscription", err)
	}
	if !found {
		return nil, apperr.NotFound(notFound)
	}
	s.logger.Info("subscription updated", zap.String("id", in.ID), zap.Strings("attributes", u.Attributes()))
	return &sub, nil
}

// Delete removes a subscription and returns its last state.
func (s *Store) Delete(ctx context.Context, id string) (*Subscription, error) {
	existing, err := s.read(ctx, id, "Failed to delete subscription")
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound(notFound)
	}
	if err := dynamo.Delete(ctx, s.client, s.tableName, dynamo.IDKey(id)); err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to delete subscription", err)
	}
	s.logger.Info("subscription deleted", zap.String("id", id))
	return existing, nil
}
