package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/soundstage/soundstage/internal/modules/catalog/domain"
)

type PgSongRepository struct {
	db *sqlx.DB
}

func NewSongRepository(db *sqlx.DB) *PgSongRepository {
	return &PgSongRepository{db: db}
}

// Create inserts the song and, when a credited artist is given, the credit
// row in the same transaction.
func (r *PgSongRepository) Create(ctx context.Context, song *domain.Song, creditedArtist *uuid.UUID) error {
	if song.ID == uuid.Nil {
		song.ID = uuid.New()
	}
	if song.CreatedAt.IsZero() {
		song.CreatedAt = time.Now()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO songs (id, name, lyrics, created_at) VALUES (:id, :name, :lyrics, :created_at)`
	if _, err := tx.NamedExecContext(ctx, query, song); err != nil {
		return err
	}

	if creditedArtist != nil {
		creditQuery := `INSERT INTO song_artists (song_id, user_id) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, creditQuery, song.ID, *creditedArtist); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PgSongRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	song := &domain.Song{}
	err := r.db.GetContext(ctx, song, `SELECT * FROM songs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSongNotFound
	}
	if err != nil {
		return nil, err
	}

	creditQuery := `SELECT sa.user_id, u.username, u.full_name
		FROM song_artists sa JOIN users u ON sa.user_id = u.id
		WHERE sa.song_id = $1 ORDER BY u.username`
	if err := r.db.SelectContext(ctx, &song.Artists, creditQuery, id); err != nil {
		return nil, err
	}
	return song, nil
}

func (r *PgSongRepository) List(ctx context.Context, filter domain.SongFilter) ([]domain.Song, int, error) {
	var results []struct {
		domain.Song
		TotalCount int `db:"total_count"`
	}

	query := `SELECT s.*, COUNT(*) OVER() as total_count FROM songs s WHERE 1=1`
	args := []interface{}{}
	argID := 1

	if filter.Search != "" {
		query += fmt.Sprintf(" AND s.name ILIKE $%d", argID)
		args = append(args, "%"+filter.Search+"%")
		argID++
	}

	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	query += fmt.Sprintf(" ORDER BY s.name ASC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, 0, err
	}
	if len(results) == 0 {
		return []domain.Song{}, 0, nil
	}

	total := results[0].TotalCount
	songs := make([]domain.Song, len(results))
	songMap := make(map[uuid.UUID]*domain.Song, len(results))
	songIDs := make([]uuid.UUID, len(results))
	for i, res := range results {
		songs[i] = res.Song
		songs[i].Artists = []domain.ArtistCredit{}
		songMap[songs[i].ID] = &songs[i]
		songIDs[i] = songs[i].ID
	}

	creditQuery, args, err := sqlx.In(`SELECT sa.song_id, sa.user_id, u.username, u.full_name
		FROM song_artists sa JOIN users u ON sa.user_id = u.id
		WHERE sa.song_id IN (?)`, songIDs)
	if err != nil {
		return nil, 0, err
	}
	creditQuery = r.db.Rebind(creditQuery)

	var creditRows []struct {
		SongID uuid.UUID `db:"song_id"`
		domain.ArtistCredit
	}
	if err := r.db.SelectContext(ctx, &creditRows, creditQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch song credits: %w", err)
	}
	for _, row := range creditRows {
		if song, ok := songMap[row.SongID]; ok {
			song.Artists = append(song.Artists, row.ArtistCredit)
		}
	}

	return songs, total, nil
}

func (r *PgSongRepository) ListArtists(ctx context.Context) ([]domain.ArtistSummary, error) {
	artists := []domain.ArtistSummary{}
	query := `SELECT u.id as user_id, u.username, u.full_name, u.email, ap.genre
		FROM users u JOIN artist_profiles ap ON u.id = ap.user_id
		ORDER BY u.username`
	if err := r.db.SelectContext(ctx, &artists, query); err != nil {
		return nil, err
	}
	return artists, nil
}

func (r *PgSongRepository) GetArtistByUsername(ctx context.Context, username string) (*domain.ArtistDetail, error) {
	artist := &domain.ArtistDetail{}
	query := `SELECT u.id as user_id, u.username, u.full_name, u.email,
			ap.genre, ap.biography, ap.discography, ap.photo_url
		FROM users u JOIN artist_profiles ap ON u.id = ap.user_id
		WHERE u.username = $1`
	err := r.db.GetContext(ctx, artist, query, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrArtistNotFound
	}
	if err != nil {
		return nil, err
	}

	artist.Songs = []domain.Song{}
	songQuery := `SELECT s.* FROM songs s
		JOIN song_artists sa ON s.id = sa.song_id
		WHERE sa.user_id = $1 ORDER BY s.created_at DESC`
	if err := r.db.SelectContext(ctx, &artist.Songs, songQuery, artist.UserID); err != nil {
		return nil, err
	}
	return artist, nil
}

// Exists implements domain.SongFinder
func (r *PgSongRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM songs WHERE id = $1)`, id)
	return exists, err
}
