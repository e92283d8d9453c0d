package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/soundstage/soundstage/internal/modules/playlist/domain"
)

type PgPlaylistRepository struct {
	db *sqlx.DB
}

func NewPgPlaylistRepository(db *sqlx.DB) *PgPlaylistRepository {
	return &PgPlaylistRepository{db: db}
}

func (r *PgPlaylistRepository) Create(ctx context.Context, playlist *domain.Playlist) error {
	query := `
		INSERT INTO playlists (id, owner_id, name, description, link, is_public, created_at)
		VALUES (:id, :owner_id, :name, :description, :link, :is_public, :created_at)`

	_, err := r.db.NamedExecContext(ctx, query, playlist)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}
	return nil
}

func (r *PgPlaylistRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Playlist, error) {
	var playlist domain.Playlist
	query := `
		SELECT p.id, p.owner_id, u.username AS owner_name, p.name, p.description,
		       p.link, p.is_public, p.created_at
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.id = $1`

	if err := r.db.GetContext(ctx, &playlist, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlaylistNotFound
		}
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	songsQuery := `
		SELECT ps.song_id, s.name, ps.added_at
		FROM playlist_songs ps
		JOIN songs s ON s.id = ps.song_id
		WHERE ps.playlist_id = $1
		ORDER BY ps.added_at ASC`

	if err := r.db.SelectContext(ctx, &playlist.Songs, songsQuery, id); err != nil {
		return nil, fmt.Errorf("failed to get playlist songs: %w", err)
	}
	return &playlist, nil
}

func (r *PgPlaylistRepository) ListVisible(ctx context.Context, viewer *uuid.UUID) ([]domain.Playlist, error) {
	playlists := []domain.Playlist{}

	query := `
		SELECT p.id, p.owner_id, u.username AS owner_name, p.name, p.description,
		       p.link, p.is_public, p.created_at
		FROM playlists p
		JOIN users u ON u.id = p.owner_id
		WHERE p.is_public = TRUE`
	args := []interface{}{}

	if viewer != nil {
		query += ` OR p.owner_id = $1`
		args = append(args, *viewer)
	}
	query += ` ORDER BY p.created_at DESC`

	if err := r.db.SelectContext(ctx, &playlists, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}

func (r *PgPlaylistRepository) AddSong(ctx context.Context, playlistID, songID uuid.UUID) (domain.AddOutcome, error) {
	query := `
		INSERT INTO playlist_songs (playlist_id, song_id, added_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (playlist_id, song_id) DO NOTHING`

	result, err := r.db.ExecContext(ctx, query, playlistID, songID)
	if err != nil {
		return "", fmt.Errorf("failed to add song to playlist: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return domain.OutcomeAlreadyPresent, nil
	}
	return domain.OutcomeAdded, nil
}
