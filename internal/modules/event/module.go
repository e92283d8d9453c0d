package event

import (
	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/event/application"
	"github.com/soundstage/soundstage/internal/modules/event/infrastructure/persistence/postgres"
	eventHttp "github.com/soundstage/soundstage/internal/modules/event/interfaces/http"
)

// Module wires the event feature: repository, service and HTTP handlers.
type Module struct {
	service *application.EventService
	handler *eventHttp.EventHandler
}

func NewModule(db *sqlx.DB, notifier application.Notifier) *Module {
	repo := postgres.NewPgEventRepository(db)
	service := application.NewEventService(repo, notifier)
	handler := eventHttp.NewEventHandler(service)

	return &Module{service: service, handler: handler}
}

func (m *Module) Service() *application.EventService {
	return m.service
}

func (m *Module) HTTPHandler() *eventHttp.EventHandler {
	return m.handler
}
