package merch

import (
	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/merch/application"
	"github.com/soundstage/soundstage/internal/modules/merch/infrastructure/persistence/postgres"
	merchHttp "github.com/soundstage/soundstage/internal/modules/merch/interfaces/http"
)

type Module struct {
	service *application.MerchService
	handler *merchHttp.MerchHandler
}

func NewModule(db *sqlx.DB) *Module {
	repo := postgres.NewPgProductRepository(db)
	service := application.NewMerchService(repo)
	handler := merchHttp.NewMerchHandler(service)

	return &Module{service: service, handler: handler}
}

func (m *Module) Service() *application.MerchService {
	return m.service
}

func (m *Module) HTTPHandler() *merchHttp.MerchHandler {
	return m.handler
}
