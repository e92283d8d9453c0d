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

	"github.com/soundstage/soundstage/internal/modules/catalog/domain"
	"github.com/soundstage/soundstage/internal/modules/catalog/infrastructure/persistence/postgres"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestPgSongRepository_Create(t *testing.T) {
	t.Run("with credited artist writes both rows in one tx", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgres.NewSongRepository(db)

		artistID := uuid.New()
		song := &domain.Song{Name: "Low Tide", CreatedAt: time.Now()}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO songs`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO song_artists`).
			WithArgs(sqlmock.AnyArg(), artistID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(context.Background(), song, &artistID)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, song.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without artist skips the credit insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgres.NewSongRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO songs`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Create(context.Background(), &domain.Song{Name: "Interlude"}, nil)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgSongRepository_GetByID(t *testing.T) {
	t.Run("missing song", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgres.NewSongRepository(db)

		mock.ExpectQuery(`SELECT \* FROM songs WHERE id`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "lyrics", "created_at"}))

		_, err := repo.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, domain.ErrSongNotFound)
	})

	t.Run("song with credits", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := postgres.NewSongRepository(db)

		songID := uuid.New()
		artistID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM songs WHERE id`).
			WithArgs(songID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "lyrics", "created_at"}).
				AddRow(songID, "Low Tide", nil, time.Now()))
		mock.ExpectQuery(`FROM song_artists sa JOIN users u`).
			WithArgs(songID).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "username", "full_name"}).
				AddRow(artistID, "mara", "Mara Voss"))

		song, err := repo.GetByID(context.Background(), songID)
		require.NoError(t, err)
		require.Len(t, song.Artists, 1)
		assert.Equal(t, "mara", song.Artists[0].Username)
	})
}

func TestPgSongRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSongRepository(db)

	songA := uuid.New()
	songB := uuid.New()
	artistID := uuid.New()

	mock.ExpectQuery(`COUNT\(\*\) OVER\(\) as total_count FROM songs`).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "lyrics", "created_at", "total_count"}).
			AddRow(songA, "Aurora", nil, time.Now(), 2).
			AddRow(songB, "Basalt", nil, time.Now(), 2))
	mock.ExpectQuery(`WHERE sa\.song_id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"song_id", "user_id", "username", "full_name"}).
			AddRow(songB, artistID, "mara", "Mara Voss"))

	songs, total, err := repo.List(context.Background(), domain.SongFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, songs, 2)
	assert.Empty(t, songs[0].Artists)
	require.Len(t, songs[1].Artists, 1)
	assert.Equal(t, "mara", songs[1].Artists[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgSongRepository_Exists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := postgres.NewSongRepository(db)

	songID := uuid.New()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(songID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), songID)
	require.NoError(t, err)
	assert.True(t, exists)
}
