package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/soundstage/soundstage/internal/modules/account/domain"
	eventDomain "github.com/soundstage/soundstage/internal/modules/event/domain"
	playlistDomain "github.com/soundstage/soundstage/internal/modules/playlist/domain"
	"github.com/soundstage/soundstage/internal/modules/stats/domain"
)

// PlaylistLister and EventLister are the slices of other modules the
// dashboard composes from.
type PlaylistLister interface {
	ListOwned(ctx context.Context, ownerID uuid.UUID) ([]playlistDomain.Playlist, error)
}

type EventLister interface {
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]eventDomain.Event, error)
}

// Dashboard is the signed-in user's personal overview
type Dashboard struct {
	Role      accountDomain.Role        `json:"role"`
	Playlists []playlistDomain.Playlist `json:"playlists"`
	Events    []eventDomain.Event       `json:"events,omitempty"`
}

type StatsService struct {
	repo      domain.StatsRepository
	playlists PlaylistLister
	events    EventLister
}

func NewStatsService(repo domain.StatsRepository, playlists PlaylistLister, events EventLister) *StatsService {
	return &StatsService{repo: repo, playlists: playlists, events: events}
}

func (s *StatsService) Overview(ctx context.Context) (*domain.Overview, error) {
	overview, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.RecentEvents(ctx, 5)
	if err != nil {
		return nil, err
	}
	overview.RecentEvents = recent
	overview.GeneratedAt = time.Now()
	return overview, nil
}

// Dashboard assembles the caller's playlists and, for artists, their
// scheduled events.
func (s *StatsService) Dashboard(ctx context.Context, userID uuid.UUID, role accountDomain.Role) (*Dashboard, error) {
	playlists, err := s.playlists.ListOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{Role: role, Playlists: playlists}
	if role == accountDomain.RoleArtist {
		events, err := s.events.ListByArtist(ctx, userID)
		if err != nil {
			return nil, err
		}
		dashboard.Events = events
	}
	return dashboard, nil
}
