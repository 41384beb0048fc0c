// Package users stores user profiles.
package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imrishuroy/stripe-graphql-api/internal/aws"
	"github.com/imrishuroy/stripe-graphql-api/internal/dynamo"
)

// Store encapsulates operations on the users table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
	logger    *zap.Logger
}

// NewStore creates a new users Store.
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

// Create persists a new user with a fresh id.
func (s *Store) Create(ctx context.Context, in CreateInput) (*User, error) {
	now := s.nowFunc()
	u := User{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Username:  in.Username,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
		Type:      TypeUser,
	}

	s.logger.Debug("creating user", zap.Any("user", u))
	if err := dynamo.Put(ctx, s.client, s.tableName, u); err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to create user", err)
	}
	s.logger.Info("user created", zap.String("id", u.ID))
	return &u, nil
}

// Get fetches a user by id. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, id string) (*User, error) {
	var u User
	found, err := dynamo.Get(ctx, s.client, s.tableName, dynamo.IDKey(id), &u)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to get user", err)
	}
	if !found {
		s.logger.Debug("user not found", zap.String("id", id))
		return nil, nil
	}
	return &u, nil
}

// List returns every user.
func (s *Store) List(ctx context.Context) ([]User, error) {
	out, err := dynamo.List[User](ctx, s.client, s.tableName, dynamo.IndexType, "type", TypeUser)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to fetch users", err)
	}
	s.logger.Debug("listed users", zap.Int("count", len(out)))
	return out, nil
}
