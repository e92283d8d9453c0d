package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/merch/domain"
)

type PgProductRepository struct {
	db *sqlx.DB
}

func NewPgProductRepository(db *sqlx.DB) *PgProductRepository {
	return &PgProductRepository{db: db}
}

func (r *PgProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO merch_products (id, seller_id, name, description, price, stock_quantity, category, created_at)
		VALUES (:id, :seller_id, :name, :description, :price, :stock_quantity, :category, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *PgProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var product domain.Product
	query := `
		SELECT id, seller_id, name, description, price, stock_quantity, category, created_at
		FROM merch_products WHERE id = $1`

	if err := r.db.GetContext(ctx, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &product, nil
}

func (r *PgProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	query := `
		SELECT id, seller_id, name, description, price, stock_quantity, category, created_at
		FROM merch_products
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
