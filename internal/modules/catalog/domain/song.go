package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Song represents a track in the catalog. Credits are a many-to-many
// relation: one song may credit several artists.
type Song struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Lyrics    string    `json:"lyrics" db:"lyrics"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Artists []ArtistCredit `json:"artists,omitempty"`
}

// ArtistCredit is one credited artist on a song
type ArtistCredit struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Username string    `json:"username" db:"username"`
	FullName string    `json:"full_name" db:"full_name"`
}

// ArtistSummary is the browsing row for the artist listing
type ArtistSummary struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Username string    `json:"username" db:"username"`
	FullName string    `json:"full_name" db:"full_name"`
	Email    string    `json:"email" db:"email"`
	Genre    *string   `json:"genre" db:"genre"`
}

// ArtistDetail is the full public artist page
type ArtistDetail struct {
	ArtistSummary
	Biography   *string `json:"biography" db:"biography"`
	Discography *string `json:"discography" db:"discography"`
	PhotoURL    *string `json:"photo_url" db:"photo_url"`

	Songs []Song `json:"songs"`
}

// SongFilter narrows song listings
type SongFilter struct {
	Search string
	Limit  int
	Offset int
}

// SongRepository defines the contract for catalog data access
type SongRepository interface {
	Create(ctx context.Context, song *Song, creditedArtist *uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Song, error)
	List(ctx context.Context, filter SongFilter) ([]Song, int, error)
	ListArtists(ctx context.Context) ([]ArtistSummary, error)
	GetArtistByUsername(ctx context.Context, username string) (*ArtistDetail, error)
}

// SongFinder provides song lookups for other modules (playlist)
type SongFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
