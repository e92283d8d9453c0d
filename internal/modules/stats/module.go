package stats

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/soundstage/soundstage/internal/modules/stats/application"
	"github.com/soundstage/soundstage/internal/modules/stats/infrastructure/persistence/postgres"
	statsHttp "github.com/soundstage/soundstage/internal/modules/stats/interfaces/http"
)

type Module struct {
	service *application.StatsService
	handler *statsHttp.StatsHandler
}

func NewModule(db *sqlx.DB, playlists application.PlaylistLister, events application.EventLister, redisClient *redis.Client) *Module {
	repo := postgres.NewPgStatsRepository(db)
	service := application.NewStatsService(repo, playlists, events)
	handler := statsHttp.NewStatsHandler(service, redisClient)

	return &Module{service: service, handler: handler}
}

func (m *Module) Service() *application.StatsService {
	return m.service
}

func (m *Module) HTTPHandler() *statsHttp.StatsHandler {
	return m.handler
}
