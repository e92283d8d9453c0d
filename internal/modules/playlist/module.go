package playlist

import (
	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/playlist/application"
	"github.com/soundstage/soundstage/internal/modules/playlist/infrastructure/persistence/postgres"
	playlistHttp "github.com/soundstage/soundstage/internal/modules/playlist/interfaces/http"
)

// Module wires the playlist feature: repository, service and HTTP handlers.
type Module struct {
	service *application.PlaylistService
	handler *playlistHttp.PlaylistHandler
}

func NewModule(db *sqlx.DB, songs application.SongFinder) *Module {
	repo := postgres.NewPgPlaylistRepository(db)
	service := application.NewPlaylistService(repo, songs)
	handler := playlistHttp.NewPlaylistHandler(service)

	return &Module{service: service, handler: handler}
}

func (m *Module) Service() *application.PlaylistService {
	return m.service
}

func (m *Module) HTTPHandler() *playlistHttp.PlaylistHandler {
	return m.handler
}
