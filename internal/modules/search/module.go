package search

import (
	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/search/application"
	"github.com/soundstage/soundstage/internal/modules/search/infrastructure/persistence/postgres"
	searchHttp "github.com/soundstage/soundstage/internal/modules/search/interfaces/http"
)

type Module struct {
	service *application.SearchService
	handler *searchHttp.SearchHandler
}

func NewModule(db *sqlx.DB) *Module {
	repo := postgres.NewPgSearchRepository(db)
	service := application.NewSearchService(repo)
	handler := searchHttp.NewSearchHandler(service)

	return &Module{service: service, handler: handler}
}

func (m *Module) Service() *application.SearchService {
	return m.service
}

func (m *Module) HTTPHandler() *searchHttp.SearchHandler {
	return m.handler
}
