package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/search/domain"
)

type PgSearchRepository struct {
	db *sqlx.DB
}

func NewPgSearchRepository(db *sqlx.DB) *PgSearchRepository {
	return &PgSearchRepository{db: db}
}

func (r *PgSearchRepository) Artists(ctx context.Context, pattern string) ([]domain.ArtistMatch, error) {
	matches := []domain.ArtistMatch{}
	query := `
		SELECT u.id AS user_id, u.username, u.full_name, ap.genre
		FROM users u
		JOIN artist_profiles ap ON ap.user_id = u.id
		WHERE u.username ILIKE $1 OR u.full_name ILIKE $1 OR ap.genre ILIKE $1
		ORDER BY u.username ASC
		LIMIT 20`
	if err := r.db.SelectContext(ctx, &matches, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search artists: %w", err)
	}
	return matches, nil
}

func (r *PgSearchRepository) Songs(ctx context.Context, pattern string) ([]domain.SongMatch, error) {
	matches := []domain.SongMatch{}
	query := `
		SELECT id, name FROM songs
		WHERE name ILIKE $1
		ORDER BY name ASC
		LIMIT 20`
	if err := r.db.SelectContext(ctx, &matches, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	return matches, nil
}

func (r *PgSearchRepository) Events(ctx context.Context, pattern string) ([]domain.EventMatch, error) {
	matches := []domain.EventMatch{}
	query := `
		SELECT e.id, e.description, e.date, l.city
		FROM events e
		LEFT JOIN locations l ON l.id = e.location_id
		WHERE e.description ILIKE $1 OR l.city ILIKE $1
		ORDER BY e.date ASC
		LIMIT 20`
	if err := r.db.SelectContext(ctx, &matches, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	return matches, nil
}

func (r *PgSearchRepository) PublicPlaylists(ctx context.Context, pattern string) ([]domain.PlaylistMatch, error) {
	matches := []domain.PlaylistMatch{}
	query := `
		SELECT p.id, p.name, u.username AS owner_name
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.is_public = TRUE AND p.name ILIKE $1
		ORDER BY p.name ASC
		LIMIT 20`
	if err := r.db.SelectContext(ctx, &matches, query, pattern); err != nil {
		return nil, fmt.Errorf("failed to search playlists: %w", err)
	}
	return matches, nil
}
