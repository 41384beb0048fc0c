package products

import "time"

// TypeProduct is the discriminator indexed by TypeIndex.
const TypeProduct = "product"

// KeyPrefix is the partition key prefix, as in PK=PRODUCT#<productId>.
const KeyPrefix = "PRODUCT"

// StockFlag marks a product whose stock has fallen below its threshold.
// It is either LowStock or empty; the empty value is never written, so
// LowStockIndex only contains flagged products.
type StockFlag string

// LowStock is the only value StockFlag takes when present.
const LowStock StockFlag = "true"

// FlagFor returns LowStock when stockCount < threshold, and "" otherwise.
func FlagFor(stockCount, threshold int) StockFlag {
	if stockCount < threshold {
		return LowStock
	}
	return ""
}

// Product represents the item stored in the products table.
type Product struct {
	PK                string    `dynamodbav:"PK" json:"PK"`
	SK                string    `dynamodbav:"SK" json:"SK"`
	ProductID         string    `dynamodbav:"productId" json:"productId"`
	Name              string    `dynamodbav:"name" json:"name"`
	Description       string    `dynamodbav:"description" json:"description"`
	Price             float64   `dynamodbav:"price" json:"price"`
	StockCount        int       `dynamodbav:"stockCount" json:"stockCount"`
	LowStockThreshold int       `dynamodbav:"lowStockThreshold" json:"lowStockThreshold"`
	Category          string    `dynamodbav:"category" json:"category"`
	IsActive          bool      `dynamodbav:"isActive" json:"isActive"`
	LowStock          StockFlag `dynamodbav:"lowStock,omitempty" json:"lowStock,omitempty"`
	CreatedAt         time.Time `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time `dynamodbav:"updatedAt" json:"updatedAt"`
	Type              string    `dynamodbav:"type" json:"type"`
}

// CreateInput is the createProduct mutation input.
type CreateInput struct {
	Name              string  `json:"name" validate:"required"`
	Description       string  `json:"description"`
	Price             float64 `json:"price" validate:"gte=0"`
	StockCount        int     `json:"stockCount" validate:"gte=0"`
	LowStockThreshold int     `json:"lowStockThreshold" validate:"gte=0"`
	Category          string  `json:"category" validate:"required"`
}

// UpdateInput is the updateProduct mutation input. Nil fields are left
// unchanged.
type UpdateInput struct {
	ProductID         string   `json:"productId" validate:"required"`
	Name              *string  `json:"name,omitempty" validate:"omitempty,min=1"`
	Description       *string  `json:"description,omitempty"`
	Price             *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	StockCount        *int     `json:"stockCount,omitempty" validate:"omitempty,gte=0"`
	LowStockThreshold *int     `json:"lowStockThreshold,omitempty" validate:"omitempty,gte=0"`
	Category          *string  `json:"category,omitempty" validate:"omitempty,min=1"`
	IsActive          *bool    `json:"isActive,omitempty"`
}
