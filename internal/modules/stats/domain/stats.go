package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Overview is the public platform snapshot shown on the landing page
type Overview struct {
	Users        int           `json:"users" db:"users"`
	Artists      int           `json:"artists" db:"artists"`
	Songs        int           `json:"songs" db:"songs"`
	Events       int           `json:"events" db:"events"`
	Playlists    int           `json:"playlists" db:"playlists"`
	RecentEvents []RecentEvent `json:"recent_events"`
	GeneratedAt  time.Time     `json:"generated_at"`
}

type RecentEvent struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	City        *string   `json:"city" db:"city"`
	Country     *string   `json:"country" db:"country"`
}

// StatsRepository reads aggregate counts for the overview
type StatsRepository interface {
	Counts(ctx context.Context) (*Overview, error)
	RecentEvents(ctx context.Context, limit int) ([]RecentEvent, error)
}
