package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Playlist is owned by exactly one basic user. Membership is a set: the
// (playlist, song) pair is unique, ordered by insertion time.
type Playlist struct {
	ID          uuid.UUID `json:"id" db:"id"`
	OwnerID     uuid.UUID `json:"owner_id" db:"owner_id"`
	OwnerName   string    `json:"owner_name,omitempty" db:"owner_name"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Link        *string   `json:"link" db:"link"`
	IsPublic    bool      `json:"is_public" db:"is_public"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Songs []Entry `json:"songs,omitempty"`
}

// Entry is one song in a playlist with its membership timestamp
type Entry struct {
	SongID  uuid.UUID `json:"song_id" db:"song_id"`
	Name    string    `json:"name" db:"name"`
	AddedAt time.Time `json:"added_at" db:"added_at"`
}

// AddOutcome reports what an AddSong call did
type AddOutcome string

const (
	OutcomeAdded          AddOutcome = "added"
	OutcomeAlreadyPresent AddOutcome = "already_in_playlist"
)

// PlaylistRepository defines the contract for playlist data access
type PlaylistRepository interface {
	Create(ctx context.Context, playlist *Playlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Playlist, error)
	// ListVisible returns public playlists plus the viewer's own when a
	// viewer is given.
	ListVisible(ctx context.Context, viewer *uuid.UUID) ([]Playlist, error)
	// AddSong inserts the membership row unless it already exists. The
	// second identical call is reported, not duplicated and not an error.
	AddSong(ctx context.Context, playlistID, songID uuid.UUID) (AddOutcome, error)
}
