package application

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/razorpay/razorpay-go"

	accountDomain "github.com/soundstage/soundstage/internal/modules/account/domain"
	notificationDomain "github.com/soundstage/soundstage/internal/modules/notification/domain"
	"github.com/soundstage/soundstage/internal/modules/subscription/domain"
)

// ProfileStore is the slice of the account repository needed to activate a
// subscription on a listener profile.
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*accountDomain.User, error)
	GetProfile(ctx context.Context, user *accountDomain.User) (accountDomain.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, profile accountDomain.Profile) error
}

// Notifier pushes a notification to the user after activation
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, kind notificationDomain.NotificationType) error
}

type gatewayClient interface {
	CreateOrder(amount int, currency, receipt string) (string, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

func (g *razorpayGateway) CreateOrder(amount int, currency, receipt string) (string, error) {
	order, err := g.client.Order.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order creation failed: %w", err)
	}
	id, ok := order["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return id, nil
}

type SubscriptionService struct {
	repo     domain.OrderRepository
	profiles ProfileStore
	notifier Notifier
	gateway  gatewayClient
	secret   string
}

func NewSubscriptionService(repo domain.OrderRepository, profiles ProfileStore, notifier Notifier, keyID, keySecret string) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		profiles: profiles,
		notifier: notifier,
		gateway:  &razorpayGateway{client: razorpay.NewClient(keyID, keySecret)},
		secret:   keySecret,
	}
}

// CreateOrder opens a pending order with the payment gateway for the given
// plan. The order expires if not verified within 30 minutes.
func (s *SubscriptionService) CreateOrder(ctx context.Context, userID uuid.UUID, plan domain.Plan) (*domain.Order, error) {
	amount, ok := plan.PriceInPaise()
	if !ok {
		return nil, domain.ErrUnknownPlan
	}

	receipt := fmt.Sprintf("sub_%s", uuid.New().String()[:8])
	razorpayOrderID, err := s.gateway.CreateOrder(amount, "INR", receipt)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Plan:            plan,
		Amount:          amount,
		Currency:        "INR",
		RazorpayOrderID: &razorpayOrderID,
		Status:          domain.OrderStatusPending,
		ExpiresAt:       time.Now().Add(30 * time.Minute),
		CreatedAt:       time.Now(),
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// VerifyPayment checks the gateway signature and, on success, marks the
// order paid and stamps the subscription onto the listener profile.
func (s *SubscriptionService) VerifyPayment(ctx context.Context, userID, orderID uuid.UUID, razorpayPaymentID, razorpaySignature string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	if order.Status != domain.OrderStatusPending {
		return nil, domain.ErrOrderProcessed
	}
	if time.Now().After(order.ExpiresAt) {
		s.repo.UpdateStatus(ctx, orderID, domain.OrderStatusFailed)
		return nil, domain.ErrOrderExpired
	}

	expected := s.generateSignature(*order.RazorpayOrderID, razorpayPaymentID)
	if !hmac.Equal([]byte(expected), []byte(razorpaySignature)) {
		s.repo.UpdateStatus(ctx, orderID, domain.OrderStatusFailed)
		return nil, domain.ErrInvalidSignature
	}

	if err := s.repo.UpdateStatus(ctx, orderID, domain.OrderStatusPaid); err != nil {
		return nil, err
	}
	order.Status = domain.OrderStatusPaid

	if err := s.activate(ctx, order); err != nil {
		return nil, fmt.Errorf("payment ok but activation failed: %w", err)
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, order.UserID, "Subscription active",
			fmt.Sprintf("Your %s subscription is now active.", order.Plan),
			notificationDomain.NotificationTypeSuccess); err != nil {
			log.Printf("failed to notify user %s: %v", order.UserID, err)
		}
	}
	return order, nil
}

func (s *SubscriptionService) ListOrders(ctx context.Context, userID uuid.UUID, page int) ([]domain.Order, error) {
	limit := 20
	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

// activate writes the subscription metadata onto the basic profile
func (s *SubscriptionService) activate(ctx context.Context, order *domain.Order) error {
	user, err := s.profiles.GetByID(ctx, order.UserID)
	if err != nil {
		return err
	}
	profile, err := s.profiles.GetProfile(ctx, user)
	if err != nil {
		return err
	}
	basic, ok := profile.(*accountDomain.BasicProfile)
	if !ok {
		return fmt.Errorf("subscription requires a listener profile")
	}

	planName := string(order.Plan)
	price := float64(order.Amount) / 100
	now := time.Now()
	basic.SubscriptionType = &planName
	basic.SubscriptionPrice = &price
	basic.SubscriptionDate = &now

	return s.profiles.UpdateProfile(ctx, order.UserID, basic)
}

func (s *SubscriptionService) generateSignature(orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(s.secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}
