package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/soundstage/soundstage/internal/modules/account/domain"
	notificationDomain "github.com/soundstage/soundstage/internal/modules/notification/domain"
	"github.com/soundstage/soundstage/internal/modules/subscription/domain"
)

type orderRepoMock struct {
	orders   map[uuid.UUID]*domain.Order
	statuses []domain.OrderStatus
}

func newOrderRepoMock() *orderRepoMock {
	return &orderRepoMock{orders: map[uuid.UUID]*domain.Order{}}
}

func (m *orderRepoMock) Create(ctx context.Context, order *domain.Order) error {
	m.orders[order.ID] = order
	return nil
}

func (m *orderRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *orderRepoMock) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	m.statuses = append(m.statuses, status)
	if order, ok := m.orders[id]; ok {
		order.Status = status
	}
	return nil
}

func (m *orderRepoMock) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Order, error) {
	return nil, nil
}

type profileStoreMock struct {
	user    *accountDomain.User
	profile accountDomain.Profile
	updated accountDomain.Profile
}

func (m *profileStoreMock) GetByID(ctx context.Context, id uuid.UUID) (*accountDomain.User, error) {
	return m.user, nil
}

func (m *profileStoreMock) GetProfile(ctx context.Context, user *accountDomain.User) (accountDomain.Profile, error) {
	return m.profile, nil
}

func (m *profileStoreMock) UpdateProfile(ctx context.Context, id uuid.UUID, profile accountDomain.Profile) error {
	m.updated = profile
	return nil
}

type notifierMock struct {
	titles []string
}

func (m *notifierMock) Notify(ctx context.Context, userID uuid.UUID, title, message string, kind notificationDomain.NotificationType) error {
	m.titles = append(m.titles, title)
	return nil
}

type gatewayMock struct {
	orderID string
}

func (m *gatewayMock) CreateOrder(amount int, currency, receipt string) (string, error) {
	return m.orderID, nil
}

func newTestService(repo *orderRepoMock, profiles *profileStoreMock, notifier *notifierMock) *SubscriptionService {
	return &SubscriptionService{
		repo:     repo,
		profiles: profiles,
		notifier: notifier,
		gateway:  &gatewayMock{orderID: "order_rzp_123"},
		secret:   "test-key-secret",
	}
}

func pendingOrder(userID uuid.UUID) *domain.Order {
	rzpID := "order_rzp_123"
	return &domain.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Plan:            domain.PlanMonthly,
		Amount:          19900,
		Currency:        "INR",
		RazorpayOrderID: &rzpID,
		Status:          domain.OrderStatusPending,
		ExpiresAt:       time.Now().Add(30 * time.Minute),
		CreatedAt:       time.Now(),
	}
}

func TestSubscriptionService_CreateOrder(t *testing.T) {
	repo := newOrderRepoMock()
	svc := newTestService(repo, &profileStoreMock{}, nil)

	t.Run("unknown plan", func(t *testing.T) {
		_, err := svc.CreateOrder(context.Background(), uuid.New(), domain.Plan("premium_weekly"))
		assert.ErrorIs(t, err, domain.ErrUnknownPlan)
		assert.Empty(t, repo.orders)
	})

	t.Run("pending order is stored with gateway reference", func(t *testing.T) {
		userID := uuid.New()
		order, err := svc.CreateOrder(context.Background(), userID, domain.PlanYearly)
		require.NoError(t, err)

		assert.Equal(t, domain.OrderStatusPending, order.Status)
		assert.Equal(t, 199900, order.Amount)
		require.NotNil(t, order.RazorpayOrderID)
		assert.Equal(t, "order_rzp_123", *order.RazorpayOrderID)
		assert.True(t, order.ExpiresAt.After(time.Now()))
		assert.Contains(t, repo.orders, order.ID)
	})
}

func TestSubscriptionService_VerifyPayment(t *testing.T) {
	t.Run("valid signature pays the order and activates the profile", func(t *testing.T) {
		userID := uuid.New()
		repo := newOrderRepoMock()
		order := pendingOrder(userID)
		repo.orders[order.ID] = order

		profiles := &profileStoreMock{
			user:    &accountDomain.User{ID: userID, Role: accountDomain.RoleBasic},
			profile: &accountDomain.BasicProfile{UserID: userID},
		}
		notifier := &notifierMock{}
		svc := newTestService(repo, profiles, notifier)

		signature := svc.generateSignature(*order.RazorpayOrderID, "pay_42")
		got, err := svc.VerifyPayment(context.Background(), userID, order.ID, "pay_42", signature)
		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPaid, got.Status)

		basic, ok := profiles.updated.(*accountDomain.BasicProfile)
		require.True(t, ok)
		require.NotNil(t, basic.SubscriptionType)
		assert.Equal(t, string(domain.PlanMonthly), *basic.SubscriptionType)
		require.NotNil(t, basic.SubscriptionPrice)
		assert.InDelta(t, 199.0, *basic.SubscriptionPrice, 0.001)
		assert.Equal(t, []string{"Subscription active"}, notifier.titles)
	})

	t.Run("bad signature fails the order", func(t *testing.T) {
		userID := uuid.New()
		repo := newOrderRepoMock()
		order := pendingOrder(userID)
		repo.orders[order.ID] = order
		svc := newTestService(repo, &profileStoreMock{}, nil)

		_, err := svc.VerifyPayment(context.Background(), userID, order.ID, "pay_42", "deadbeef")
		assert.ErrorIs(t, err, domain.ErrInvalidSignature)
		assert.Equal(t, domain.OrderStatusFailed, repo.orders[order.ID].Status)
	})

	t.Run("someone else's order reads as missing", func(t *testing.T) {
		repo := newOrderRepoMock()
		order := pendingOrder(uuid.New())
		repo.orders[order.ID] = order
		svc := newTestService(repo, &profileStoreMock{}, nil)

		_, err := svc.VerifyPayment(context.Background(), uuid.New(), order.ID, "pay_42", "sig")
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
		assert.Equal(t, domain.OrderStatusPending, repo.orders[order.ID].Status)
	})

	t.Run("already processed order is rejected", func(t *testing.T) {
		userID := uuid.New()
		repo := newOrderRepoMock()
		order := pendingOrder(userID)
		order.Status = domain.OrderStatusPaid
		repo.orders[order.ID] = order
		svc := newTestService(repo, &profileStoreMock{}, nil)

		_, err := svc.VerifyPayment(context.Background(), userID, order.ID, "pay_42", "sig")
		assert.ErrorIs(t, err, domain.ErrOrderProcessed)
	})

	t.Run("expired order fails even with a valid signature", func(t *testing.T) {
		userID := uuid.New()
		repo := newOrderRepoMock()
		order := pendingOrder(userID)
		order.ExpiresAt = time.Now().Add(-time.Minute)
		repo.orders[order.ID] = order
		svc := newTestService(repo, &profileStoreMock{}, nil)

		signature := svc.generateSignature(*order.RazorpayOrderID, "pay_42")
		_, err := svc.VerifyPayment(context.Background(), userID, order.ID, "pay_42", signature)
		assert.ErrorIs(t, err, domain.ErrOrderExpired)
		assert.Equal(t, domain.OrderStatusFailed, repo.orders[order.ID].Status)
	})
}
