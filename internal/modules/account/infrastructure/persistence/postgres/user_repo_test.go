package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundstage/soundstage/internal/modules/account/domain"
	"github.com/soundstage/soundstage/internal/modules/account/infrastructure/persistence/postgres"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(sqlDB, "sqlmock"), mock, func() { _ = sqlDB.Close() }
}

func TestPgUserRepository_Create(t *testing.T) {
	t.Run("inserts user and one specialization row in a transaction", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := postgres.NewUserRepository(db)

		id := uuid.New()
		user := &domain.User{
			ID:           id,
			Username:     "nina",
			FullName:     "Nina Simone",
			Email:        "nina@example.com",
			PasswordHash: "hash",
			Role:         domain.RoleArtist,
			Profile:      domain.EmptyProfile(domain.RoleArtist, id),
		}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO artist_profiles`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Create(context.Background(), user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation maps to ErrUserAlreadyExists", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := postgres.NewUserRepository(db)

		id := uuid.New()
		user := &domain.User{
			ID:       id,
			Username: "nina",
			Email:    "nina@example.com",
			Role:     domain.RoleBasic,
			Profile:  domain.EmptyProfile(domain.RoleBasic, id),
		}

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.Create(context.Background(), user)
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("connection failure maps to ErrStoreUnavailable", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := postgres.NewUserRepository(db)

		mock.ExpectQuery(`SELECT \* FROM users WHERE email`).
			WillReturnError(&pq.Error{Code: "08006"})

		_, err := repo.GetByEmail(context.Background(), "nina@example.com")
		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestPgUserRepository_ResolveRole(t *testing.T) {
	existsRow := func(v bool) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"exists"}).AddRow(v)
	}

	t.Run("artist wins over later probes", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := postgres.NewUserRepository(db)

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM artist_profiles`).
			WithArgs("nina").
			WillReturnRows(existsRow(true))

		role, err := repo.ResolveRole(context.Background(), "nina")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleArtist, role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("probes in precedence order until a hit", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := postgres.NewUserRepository(db)

		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM artist_profiles`).
			WillReturnRows(existsRow(false))
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM manager_profiles`).
			WillReturnRows(existsRow(false))
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM moderator_profiles`).
			WillReturnRows(existsRow(true))

		role, err := repo.ResolveRole(context.Background(), "mod")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleModerator, role)
	})

	t.Run("falls back to the stored role column", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := postgres.NewUserRepository(db)

		for range []int{0, 1, 2, 3} {
			mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM`).
				WillReturnRows(existsRow(false))
		}
		mock.ExpectQuery(`SELECT role FROM users`).
			WithArgs("nina").
			WillReturnRows(sqlmock.NewRows([]string{"role"}).AddRow("basic"))

		role, err := repo.ResolveRole(context.Background(), "nina")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleBasic, role)
	})
}

func TestPgUserRepository_UpdateSharedAndProfile(t *testing.T) {
	name := "Nina Simone"

	t.Run("writes shared and role fields in one transaction", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := postgres.NewUserRepository(db)

		id := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE users SET full_name`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE artist_profiles SET genre`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		genre := "jazz"
		err := repo.UpdateSharedAndProfile(context.Background(), id, &name, nil, nil,
			&domain.ArtistProfile{UserID: id, Genre: &genre})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("role field failure rolls back the shared update", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := postgres.NewUserRepository(db)

		id := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE users SET full_name`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE basic_profiles SET birth_date`).
			WillReturnError(errors.New("boom"))
		mock.ExpectRollback()

		desc := "listener"
		err := repo.UpdateSharedAndProfile(context.Background(), id, &name, nil, nil,
			&domain.BasicProfile{UserID: id, Description: &desc})
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nil profile writes shared fields only", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := postgres.NewUserRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE users SET full_name`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.UpdateSharedAndProfile(context.Background(), uuid.New(), &name, nil, nil, nil)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPgUserRepository_GetProfile(t *testing.T) {
	t.Run("missing specialization row yields the empty variant", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()
		repo := postgres.NewUserRepository(db)

		user := &domain.User{ID: uuid.New(), Role: domain.RoleManager}
		mock.ExpectQuery(`SELECT \* FROM manager_profiles`).
			WithArgs(user.ID).
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}))

		profile, err := repo.GetProfile(context.Background(), user)
		require.NoError(t, err)
		require.IsType(t, &domain.ManagerProfile{}, profile)
		assert.Equal(t, user.ID, profile.(*domain.ManagerProfile).UserID)
	})
}
