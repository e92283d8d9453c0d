package subscription

import (
	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/subscription/application"
	"github.com/soundstage/soundstage/internal/modules/subscription/infrastructure/persistence/postgres"
	subscriptionHttp "github.com/soundstage/soundstage/internal/modules/subscription/interfaces/http"
)

type Module struct {
	service *application.SubscriptionService
	handler *subscriptionHttp.SubscriptionHandler
}

func NewModule(db *sqlx.DB, profiles application.ProfileStore, notifier application.Notifier, razorpayKeyID, razorpayKeySecret string) *Module {
	repo := postgres.NewPgOrderRepository(db)
	service := application.NewSubscriptionService(repo, profiles, notifier, razorpayKeyID, razorpayKeySecret)
	handler := subscriptionHttp.NewSubscriptionHandler(service)

	return &Module{service: service, handler: handler}
}

func (m *Module) Service() *application.SubscriptionService {
	return m.service
}

func (m *Module) HTTPHandler() *subscriptionHttp.SubscriptionHandler {
	return m.handler
}
