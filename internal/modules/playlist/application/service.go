package application

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/soundstage/soundstage/internal/modules/playlist/domain"
)

// SongFinder lets the playlist module check song existence without
// depending on the catalog module directly.
type SongFinder interface {
	Exists(ctx context.Context, songID uuid.UUID) (bool, error)
}

type CreatePlaylistRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Link        *string `json:"link"`
	IsPublic    bool    `json:"is_public"`
}

type PlaylistService struct {
	repo  domain.PlaylistRepository
	songs SongFinder
}

func NewPlaylistService(repo domain.PlaylistRepository, songs SongFinder) *PlaylistService {
	return &PlaylistService{repo: repo, songs: songs}
}

func (s *PlaylistService) CreatePlaylist(ctx context.Context, ownerID uuid.UUID, req CreatePlaylistRequest) (*domain.Playlist, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrValidation
	}

	playlist := &domain.Playlist{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Link:        req.Link,
		IsPublic:    req.IsPublic,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, playlist); err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) GetPlaylist(ctx context.Context, callerID *uuid.UUID, id uuid.UUID) (*domain.Playlist, error) {
	playlist, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !playlist.IsPublic && (callerID == nil || *callerID != playlist.OwnerID) {
		return nil, domain.ErrPlaylistNotFound
	}
	return playlist, nil
}

func (s *PlaylistService) ListPlaylists(ctx context.Context, viewer *uuid.UUID) ([]domain.Playlist, error) {
	return s.repo.ListVisible(ctx, viewer)
}

// AddSong puts a song into a caller-owned playlist. Adding a song that is
// already present reports the fact instead of creating a duplicate.
func (s *PlaylistService) AddSong(ctx context.Context, callerID, playlistID, songID uuid.UUID) (domain.AddOutcome, error) {
	playlist, err := s.repo.GetByID(ctx, playlistID)
	if err != nil {
		return "", err
	}
	if playlist.OwnerID != callerID {
		return "", domain.ErrNotOwner
	}

	exists, err := s.songs.Exists(ctx, songID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domain.ErrSongNotFound
	}

	return s.repo.AddSong(ctx, playlistID, songID)
}

// ListOwned returns the caller's playlists only. Used by the dashboard.
func (s *PlaylistService) ListOwned(ctx context.Context, ownerID uuid.UUID) ([]domain.Playlist, error) {
	all, err := s.repo.ListVisible(ctx, &ownerID)
	if err != nil {
		return nil, err
	}
	owned := []domain.Playlist{}
	for _, p := range all {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}
