package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Product is a merchandise item offered on the platform
type Product struct {
	ID            uuid.UUID `json:"id" db:"id"`
	SellerID      uuid.UUID `json:"seller_id" db:"seller_id"`
	Name          string    `json:"name" db:"name"`
	Description   string    `json:"description" db:"description"`
	Price         float64   `json:"price" db:"price"`
	StockQuantity int       `json:"stock_quantity" db:"stock_quantity"`
	Category      *string   `json:"category" db:"category"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

var (
	ErrProductNotFound = errors.New("product not found")
	ErrValidation      = errors.New("validation failed")
)

// ProductRepository defines the contract for merchandise data access
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context) ([]Product, error)
}
