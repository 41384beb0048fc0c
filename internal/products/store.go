// Package products stores the product catalogue and maintains the sparse
// low-stock marker.
package products

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
	"github.com/imrishuroy/stripe-graphql-api/internal/aws"
	"github.com/imrishuroy/stripe-graphql-api/internal/dynamo"
)

const notFound = "Product not found"

// Store encapsulates operations on the products table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
	logger    *zap.Logger
}

// NewStore creates a new products Store.
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

// Create persists a new active product, flagged when it starts below its
// threshold.
func (s *Store) Create(ctx context.Context, in CreateInput) (*Product, error) {
	productID := uuid.NewString()
	now := s.nowFunc()
	p := Product{
		PK:                dynamo.PartitionKey(KeyPrefix, productID),
		SK:                dynamo.MetadataSK,
		ProductID:         productID,
		Name:              in.Name,
		Description:       in.Description,
		Price:             in.Price,
		StockCount:        in.StockCount,
		LowStockThreshold: in.LowStockThreshold,
		Category:          in.Category,
		IsActive:          true,
		LowStock:          FlagFor(in.StockCount, in.LowStockThreshold),
		CreatedAt:         now,
		UpdatedAt:         now,
		Type:              TypeProduct,
	}

	s.logger.Debug("creating product", zap.Any("product", p))
	if err := dynamo.Put(ctx, s.client, s.tableName, p); err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to create product", err)
	}
	s.logger.Info("product created", zap.String("productId", productID), zap.Bool("lowStock", p.LowStock == LowStock))
	return &p, nil
}

// Get fetches a product by productId. Returns (nil, nil) if not found.
func (s *Store) Get(ctx context.Context, productID string) (*Product, error) {
	return s.read(ctx, productID, "Failed to get product")
}

// read fetches a product, reporting a store failure under fallback.
func (s *Store) read(ctx context.Context, productID, fallback string) (*Product, error) {
	var p Product
	found, err := dynamo.Get(ctx, s.client, s.tableName, dynamo.EntityKey(KeyPrefix, productID), &p)
	if err != nil {
		return nil, dynamo.Failure(s.logger, fallback, err)
	}
	if !found {
		s.logger.Debug("product not found", zap.String("productId", productID))
		return nil, nil
	}
	return &p, nil
}

// List returns every product.
func (s *Store) List(ctx context.Context) ([]Product, error) {
	out, err := dynamo.List[Product](ctx, s.client, s.tableName, dynamo.IndexType, "type", TypeProduct)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to list products", err)
	}
	return out, nil
}

// ListByCategory returns the products in category.
func (s *Store) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	out, err := dynamo.List[Product](ctx, s.client, s.tableName, dynamo.IndexCategory, "category", category)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to get products by category", err)
	}
	return out, nil
}

// ListLowStock returns the flagged products.
func (s *Store) ListLowStock(ctx context.Context) ([]Product, error) {
	out, err := dynamo.List[Product](ctx, s.client, s.tableName, dynamo.IndexLowStock, "lowStock", LowStock)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to get low stock products", err)
	}
	return out, nil
}

// Update applies the non-nil fields of in and recomputes the low-stock
// marker from the effective stock count and threshold.
//
// The marker is derived from a read taken before the write. The two calls
// are not atomic: a concurrent stock change landing between them leaves the
// marker reflecting whichever write commits last.
func (s *Store) Update(ctx context.Context, in UpdateInput) (*Product, error) {
	current, err := s.read(ctx, in.ProductID, "Failed to update product")
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperr.NotFound(notFound)
	}

	u := dynamo.NewUpdate().Set("updatedAt", s.nowFunc())
	if in.Name != nil {
		u.Set("name", *in.Name)
	}
	if in.Description != nil {
		u.Set("description", *in.Description)
	}
	if in.Price != nil {
		u.Set("price", *in.Price)
	}
	if in.StockCount != nil {
		u.Set("stockCount", *in.StockCount)
	}
	if in.LowStockThreshold != nil {
		u.Set("lowStockThreshold", *in.LowStockThreshold)
	}
	if in.Category != nil {
		u.Set("category", *in.Category)
	}
	if in.IsActive != nil {
		u.Set("isActive", *in.IsActive)
	}

	stock, threshold := current.StockCount, current.LowStockThreshold
	if in.StockCount != nil {
		stock = *in.StockCount
	}
	if in.LowStockThreshold != nil {
		threshold = *in.LowStockThreshold
	}
	if flag := FlagFor(stock, threshold); flag == LowStock {
		u.Set("lowStock", flag)
	} else {
		u.Remove("lowStock")
	}
	u.RequireExists(dynamo.AttrPK)

	var p Product
	found, err := dynamo.Apply(ctx, s.client, s.tableName, dynamo.EntityKey(KeyPrefix, in.ProductID), u, &p)
	if err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to update product", err)
	}
	if !found {
		return nil, apperr.NotFound(notFound)
	}
	s.logger.Info("product updated",
		zap.String("productId", in.ProductID),
		zap.Int("stockCount", p.StockCount),
		zap.Bool("lowStock", p.LowStock == LowStock),
	)
	return &p, nil
}

// Delete removes a product and returns its last state.
func (s *Store) Delete(ctx context.Context, productID string) (*Product, error) {
	existing, err := s.read(ctx, productID, "Failed to delete product")
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, apperr.NotFound(notFound)
	}
	if err := dynamo.Delete(ctx, s.client, s.tableName, dynamo.EntityKey(KeyPrefix, productID)); err != nil {
		return nil, dynamo.Failure(s.logger, "Failed to delete product", err)
	}
	s.logger.Info("product deleted", zap.String("productId", productID))
	return existing, nil
}
