package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/stats/domain"
)

type PgStatsRepository struct {
	db *sqlx.DB
}

func NewPgStatsRepository(db *sqlx.DB) *PgStatsRepository {
	return &PgStatsRepository{db: db}
}

func (r *PgStatsRepository) Counts(ctx context.Context) (*domain.Overview, error) {
	var overview domain.Overview
	query := `
		SELECT
			(SELECT COUNT(*) FROM users)           AS users,
			(SELECT COUNT(*) FROM artist_profiles) AS artists,
			(SELECT COUNT(*) FROM songs)           AS songs,
			(SELECT COUNT(*) FROM events)          AS events,
			(SELECT COUNT(*) FROM playlists)       AS playlists`

	if err := r.db.GetContext(ctx, &overview, query); err != nil {
		return nil, fmt.Errorf("failed to read platform counts: %w", err)
	}
	return &overview, nil
}

func (r *PgStatsRepository) RecentEvents(ctx context.Context, limit int) ([]domain.RecentEvent, error) {
	events := []domain.RecentEvent{}
	query := `
		SELECT e.id, e.description, e.date, l.city, l.country
		FROM events e
		LEFT JOIN locations l ON l.id = e.location_id
		WHERE e.date >= CURRENT_DATE
		ORDER BY e.date ASC
		LIMIT $1`

	if err := r.db.SelectContext(ctx, &events, query, limit); err != nil {
		return nil, fmt.Errorf("failed to read recent events: %w", err)
	}
	return events, nil
}
