package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/subscription/domain"
)

type PgOrderRepository struct {
	db *sqlx.DB
}

func NewPgOrderRepository(db *sqlx.DB) *PgOrderRepository {
	return &PgOrderRepository{db: db}
}

func (r *PgOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	query := `
		INSERT INTO subscription_orders (id, user_id, plan, amount, currency, razorpay_order_id, status, expires_at, created_at)
		VALUES (:id, :user_id, :plan, :amount, :currency, :razorpay_order_id, :status, :expires_at, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, order); err != nil {
		return fmt.Errorf("failed to create subscription order: %w", err)
	}
	return nil
}

func (r *PgOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	query := `
		SELECT id, user_id, plan, amount, currency, razorpay_order_id, status, expires_at, created_at
		FROM subscription_orders WHERE id = $1`

	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get subscription order: %w", err)
	}
	return &order, nil
}

func (r *PgOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	query := `UPDATE subscription_orders SET status = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, status, id); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (r *PgOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	orders := []domain.Order{}
	query := `
		SELECT id, user_id, plan, amount, currency, razorpay_order_id, status, expires_at, created_at
		FROM subscription_orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	if err := r.db.SelectContext(ctx, &orders, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list subscription orders: %w", err)
	}
	return orders, nil
}
