package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundstage/soundstage/internal/modules/catalog/domain"
)

type songRepoMock struct {
	createFn func(ctx context.Context, song *domain.Song, creditedArtist *uuid.UUID) error
}

func (m *songRepoMock) Create(ctx context.Context, song *domain.Song, creditedArtist *uuid.UUID) error {
	return m.createFn(ctx, song, creditedArtist)
}

func (m *songRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Song, error) {
	return nil, domain.ErrSongNotFound
}

func (m *songRepoMock) List(ctx context.Context, filter domain.SongFilter) ([]domain.Song, int, error) {
	return nil, 0, nil
}

func (m *songRepoMock) ListArtists(ctx context.Context) ([]domain.ArtistSummary, error) {
	return nil, nil
}

func (m *songRepoMock) GetArtistByUsername(ctx context.Context, username string) (*domain.ArtistDetail, error) {
	return nil, domain.ErrArtistNotFound
}

func TestSongService_CreateSong(t *testing.T) {
	t.Run("credits the calling artist", func(t *testing.T) {
		artistID := uuid.New()
		var gotCredit *uuid.UUID
		repo := &songRepoMock{
			createFn: func(_ context.Context, _ *domain.Song, creditedArtist *uuid.UUID) error {
				gotCredit = creditedArtist
				return nil
			},
		}
		svc := NewSongService(repo)

		song, err := svc.CreateSong(context.Background(), CreateSongRequest{Name: "  Low Tide "}, artistID)
		require.NoError(t, err)
		require.NotNil(t, gotCredit)
		assert.Equal(t, artistID, *gotCredit)
		assert.Equal(t, "Low Tide", song.Name)
		assert.NotEqual(t, uuid.Nil, song.ID)
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		repo := &songRepoMock{
			createFn: func(context.Context, *domain.Song, *uuid.UUID) error {
				t.Fatal("repository should not be called")
				return nil
			},
		}
		svc := NewSongService(repo)

		_, err := svc.CreateSong(context.Background(), CreateSongRequest{Name: "   "}, uuid.New())
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
