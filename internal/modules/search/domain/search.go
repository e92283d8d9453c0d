package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Results groups per-category matches for one search query
type Results struct {
	Query     string          `json:"query"`
	Artists   []ArtistMatch   `json:"artists"`
	Songs     []SongMatch     `json:"songs"`
	Events    []EventMatch    `json:"events"`
	Playlists []PlaylistMatch `json:"playlists"`
}

type ArtistMatch struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Username string    `json:"username" db:"username"`
	FullName string    `json:"full_name" db:"full_name"`
	Genre    *string   `json:"genre" db:"genre"`
}

type SongMatch struct {
	ID   uuid.UUID `json:"id" db:"id"`
	Name string    `json:"name" db:"name"`
}

type EventMatch struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	City        *string   `json:"city" db:"city"`
}

type PlaylistMatch struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	OwnerName string    `json:"owner_name" db:"owner_name"`
}

// SearchRepository runs the per-category lookups for a query
type SearchRepository interface {
	Artists(ctx context.Context, pattern string) ([]ArtistMatch, error)
	Songs(ctx context.Context, pattern string) ([]SongMatch, error)
	Events(ctx context.Context, pattern string) ([]EventMatch, error)
	PublicPlaylists(ctx context.Context, pattern string) ([]PlaylistMatch, error)
}
