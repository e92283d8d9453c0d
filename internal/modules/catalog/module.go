package catalog

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/soundstage/soundstage/internal/modules/catalog/application"
	"github.com/soundstage/soundstage/internal/modules/catalog/domain"
	persistence "github.com/soundstage/soundstage/internal/modules/catalog/infrastructure/persistence/postgres"
	catalogHttp "github.com/soundstage/soundstage/internal/modules/catalog/interfaces/http"
)

// Module represents the Catalog module
type Module struct {
	repository *persistence.PgSongRepository
	service    *application.SongService
	handler    *catalogHttp.SongHandler
}

// NewModule creates and initializes the Catalog module
func NewModule(db *sqlx.DB, eventFinder catalogHttp.EventFinder, redisClient *redis.Client) *Module {
	repository := persistence.NewSongRepository(db)
	service := application.NewSongService(repository)
	handler := catalogHttp.NewSongHandler(service, eventFinder, redisClient)

	return &Module{
		repository: repository,
		service:    service,
		handler:    handler,
	}
}

// SongFinder returns the song finder interface for use by other modules
func (m *Module) SongFinder() domain.SongFinder {
	return m.repository
}

// Service returns the song service
func (m *Module) Service() *application.SongService {
	return m.service
}

// HTTPHandler returns the HTTP handler
func (m *Module) HTTPHandler() *catalogHttp.SongHandler {
	return m.handler
}
