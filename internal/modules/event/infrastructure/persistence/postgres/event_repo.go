package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/event/domain"
)

type PgEventRepository struct {
	db *sqlx.DB
}

func NewPgEventRepository(db *sqlx.DB) *PgEventRepository {
	return &PgEventRepository{db: db}
}

func (r *PgEventRepository) Create(ctx context.Context, event *domain.Event, artistIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (id, description, date, conditions, location_id, created_at)
		VALUES (:id, :description, :date, :conditions, :location_id, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	for _, artistID := range artistIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO event_artists (event_id, user_id) VALUES ($1, $2)`,
			event.ID, artistID)
		if err != nil {
			return fmt.Errorf("failed to credit artist: %w", err)
		}
	}

	return tx.Commit()
}

func (r *PgEventRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var event domain.Event
	query := `SELECT id, description, date, conditions, location_id, created_at FROM events WHERE id = $1`
	if err := r.db.GetContext(ctx, &event, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var location domain.Location
	err := r.db.GetContext(ctx, &location,
		`SELECT id, address, city, region, country FROM locations WHERE id = $1`, event.LocationID)
	if err == nil {
		event.Location = &location
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to get event location: %w", err)
	}

	if err := r.attachArtists(ctx, []*domain.Event{&event}); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *PgEventRepository) ListUpcoming(ctx context.Context) ([]domain.Event, error) {
	events := []domain.Event{}
	query := `
		SELECT id, description, date, conditions, location_id, created_at
		FROM events
		WHERE date >= CURRENT_DATE
		ORDER BY date ASC`
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	if err := r.hydrate(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PgEventRepository) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]domain.Event, error) {
	events := []domain.Event{}
	query := `
		SELECT e.id, e.description, e.date, e.conditions, e.location_id, e.created_at
		FROM events e
		JOIN event_artists ea ON ea.event_id = e.id
		WHERE ea.user_id = $1
		ORDER BY e.date ASC`
	if err := r.db.SelectContext(ctx, &events, query, artistID); err != nil {
		return nil, fmt.Errorf("failed to list artist events: %w", err)
	}
	if err := r.hydrate(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *PgEventRepository) CreateLocation(ctx context.Context, location *domain.Location) error {
	query := `
		INSERT INTO locations (id, address, city, region, country)
		VALUES (:id, :address, :city, :region, :country)`
	if _, err := r.db.NamedExecContext(ctx, query, location); err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	return nil
}

func (r *PgEventRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	locations := []domain.Location{}
	query := `SELECT id, address, city, region, country FROM locations ORDER BY city ASC`
	if err := r.db.SelectContext(ctx, &locations, query); err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// hydrate fills locations and artist credits for a slice of events
func (r *PgEventRepository) hydrate(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	locationIDs := make([]uuid.UUID, 0, len(events))
	refs := make([]*domain.Event, 0, len(events))
	for i := range events {
		locationIDs = append(locationIDs, events[i].LocationID)
		refs = append(refs, &events[i])
	}

	query, args, err := sqlx.In(
		`SELECT id, address, city, region, country FROM locations WHERE id IN (?)`, locationIDs)
	if err != nil {
		return fmt.Errorf("failed to build location query: %w", err)
	}
	var locations []domain.Location
	if err := r.db.SelectContext(ctx, &locations, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to fetch event locations: %w", err)
	}

	byID := make(map[uuid.UUID]domain.Location, len(locations))
	for _, loc := range locations {
		byID[loc.ID] = loc
	}
	for _, e := range refs {
		if loc, ok := byID[e.LocationID]; ok {
			l := loc
			e.Location = &l
		}
	}

	return r.attachArtists(ctx, refs)
}

func (r *PgEventRepository) attachArtists(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}

	eventIDs := make([]uuid.UUID, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
	}

	query, args, err := sqlx.In(`
		SELECT ea.event_id, u.id AS user_id, u.username, u.full_name
		FROM event_artists ea
		JOIN users u ON u.id = ea.user_id
		WHERE ea.event_id IN (?)`, eventIDs)
	if err != nil {
		return fmt.Errorf("failed to build credits query: %w", err)
	}

	var rows []struct {
		EventID uuid.UUID `db:"event_id"`
		domain.EventArtist
	}
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to fetch event artists: %w", err)
	}

	credits := make(map[uuid.UUID][]domain.EventArtist)
	for _, row := range rows {
		credits[row.EventID] = append(credits[row.EventID], row.EventArtist)
	}
	for _, e := range events {
		e.Artists = credits[e.ID]
	}
	return nil
}
