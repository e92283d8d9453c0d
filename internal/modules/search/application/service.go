package application

import (
	"context"
	"errors"
	"strings"

	"github.com/soundstage/soundstage/internal/modules/search/domain"
)

var ErrEmptyQuery = errors.New("search query is empty")

type SearchService struct {
	repo domain.SearchRepository
}

func NewSearchService(repo domain.SearchRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search runs the query against every category. A category failing does not
// fail the whole search; its results are just empty.
func (s *SearchService) Search(ctx context.Context, query string) (*domain.Results, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	pattern := "%" + query + "%"

	results := &domain.Results{
		Query:     query,
		Artists:   []domain.ArtistMatch{},
		Songs:     []domain.SongMatch{},
		Events:    []domain.EventMatch{},
		Playlists: []domain.PlaylistMatch{},
	}

	if artists, err := s.repo.Artists(ctx, pattern); err == nil {
		results.Artists = artists
	}
	if songs, err := s.repo.Songs(ctx, pattern); err == nil {
		results.Songs = songs
	}
	if events, err := s.repo.Events(ctx, pattern); err == nil {
		results.Events = events
	}
	if playlists, err := s.repo.PublicPlaylists(ctx, pattern); err == nil {
		results.Playlists = playlists
	}

	return results, nil
}
