package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Location is a venue an event takes place at
type Location struct {
	ID      uuid.UUID `json:"id" db:"id"`
	Address string    `json:"address" db:"address"`
	City    string    `json:"city" db:"city"`
	Region  *string   `json:"region" db:"region"`
	Country string    `json:"country" db:"country"`
}

// Event is a scheduled performance at a location, credited to zero or more
// artists.
type Event struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Description string    `json:"description" db:"description"`
	Date        time.Time `json:"date" db:"date"`
	Conditions  *string   `json:"conditions" db:"conditions"`
	LocationID  uuid.UUID `json:"location_id" db:"location_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	Location *Location     `json:"location,omitempty"`
	Artists  []EventArtist `json:"artists,omitempty"`
}

// EventArtist is an artist credited on an event
type EventArtist struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	Username string    `json:"username" db:"username"`
	FullName string    `json:"full_name" db:"full_name"`
}

// EventRepository defines the contract for event and location data access
type EventRepository interface {
	// Create inserts the event and its artist credits in one transaction.
	Create(ctx context.Context, event *Event, artistIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	// ListUpcoming returns events from today onwards, soonest first.
	ListUpcoming(ctx context.Context) ([]Event, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]Event, error)
	CreateLocation(ctx context.Context, location *Location) error
	ListLocations(ctx context.Context) ([]Location, error)
}
