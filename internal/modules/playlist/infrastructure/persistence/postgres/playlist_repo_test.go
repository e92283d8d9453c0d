package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundstage/soundstage/internal/modules/playlist/domain"
	"github.com/soundstage/soundstage/internal/modules/playlist/infrastructure/persistence/postgres"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(sqlDB, "sqlmock"), mock, func() { _ = sqlDB.Close() }
}

func TestPgPlaylistRepository_AddSong(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewPgPlaylistRepository(db)
	ctx := context.Background()

	playlistID := uuid.New()
	songID := uuid.New()

	// first insert lands the membership row
	mock.ExpectExec(`INSERT INTO playlist_songs`).
		WithArgs(playlistID, songID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	outcome, err := repo.AddSong(ctx, playlistID, songID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAdded, outcome)

	// the same pair again hits ON CONFLICT DO NOTHING
	mock.ExpectExec(`INSERT INTO playlist_songs`).
		WithArgs(playlistID, songID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	outcome, err = repo.AddSong(ctx, playlistID, songID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeAlreadyPresent, outcome)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPlaylistRepository_GetByID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewPgPlaylistRepository(db)

	playlistID := uuid.New()
	ownerID := uuid.New()
	songID := uuid.New()

	mock.ExpectQuery(`SELECT p\.id, p\.owner_id`).
		WithArgs(playlistID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "owner_name", "name", "description", "link", "is_public", "created_at"}).
			AddRow(playlistID, ownerID, "nina", "Favorites", "", nil, true, time.Now()))
	mock.ExpectQuery(`SELECT ps\.song_id, s\.name, ps\.added_at`).
		WithArgs(playlistID).
		WillReturnRows(sqlmock.NewRows([]string{"song_id", "name", "added_at"}).
			AddRow(songID, "Feeling Good", time.Now()))

	playlist, err := repo.GetByID(context.Background(), playlistID)
	require.NoError(t, err)
	assert.Equal(t, "Favorites", playlist.Name)
	require.Len(t, playlist.Songs, 1)
	assert.Equal(t, songID, playlist.Songs[0].SongID)
}

func TestPgPlaylistRepository_GetByID_NotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := postgres.NewPgPlaylistRepository(db)

	mock.ExpectQuery(`SELECT p\.id, p\.owner_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}
