package application

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/soundstage/soundstage/internal/modules/catalog/domain"
)

type CreateSongRequest struct {
	Name   string `json:"name"`
	Lyrics string `json:"lyrics"`
}

// SongService provides catalog operations
type SongService struct {
	repo domain.SongRepository
}

func NewSongService(repo domain.SongRepository) *SongService {
	return &SongService{repo: repo}
}

// CreateSong adds a song to the catalog, crediting the calling artist.
func (s *SongService) CreateSong(ctx context.Context, req CreateSongRequest, artistID uuid.UUID) (*domain.Song, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrValidation
	}

	song := &domain.Song{
		ID:     uuid.New(),
		Name:   strings.TrimSpace(req.Name),
		Lyrics: req.Lyrics,
	}

	if err := s.repo.Create(ctx, song, &artistID); err != nil {
		return nil, err
	}
	return song, nil
}

func (s *SongService) GetSong(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SongService) ListSongs(ctx context.Context, filter domain.SongFilter) ([]domain.Song, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *SongService) ListArtists(ctx context.Context) ([]domain.ArtistSummary, error) {
	return s.repo.ListArtists(ctx)
}

func (s *SongService) GetArtist(ctx context.Context, username string) (*domain.ArtistDetail, error) {
	return s.repo.GetArtistByUsername(ctx, username)
}
