package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Plan is a paid subscription tier
type Plan string

const (
	PlanMonthly Plan = "premium_monthly"
	PlanYearly  Plan = "premium_yearly"
)

// PriceInPaise returns the charge amount for a plan in the smallest
// currency unit.
func (p Plan) PriceInPaise() (int, bool) {
	switch p {
	case PlanMonthly:
		return 19900, true
	case PlanYearly:
		return 199900, true
	default:
		return 0, false
	}
}

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// Order is one subscription purchase attempt tracked against the payment
// gateway.
type Order struct {
	ID              uuid.UUID   `json:"id" db:"id"`
	UserID          uuid.UUID   `json:"user_id" db:"user_id"`
	Plan            Plan        `json:"plan" db:"plan"`
	Amount          int         `json:"amount" db:"amount"`
	Currency        string      `json:"currency" db:"currency"`
	RazorpayOrderID *string     `json:"razorpay_order_id" db:"razorpay_order_id"`
	Status          OrderStatus `json:"status" db:"status"`
	ExpiresAt       time.Time   `json:"expires_at" db:"expires_at"`
	CreatedAt       time.Time   `json:"created_at" db:"created_at"`
}

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrOrderProcessed   = errors.New("order already processed")
	ErrOrderExpired     = errors.New("order expired")
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrUnknownPlan      = errors.New("unknown subscription plan")
)

type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Order, error)
}
