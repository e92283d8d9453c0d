package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundstage/soundstage/internal/modules/search/domain"
)

type searchRepoMock struct {
	artistsFn func(ctx context.Context, pattern string) ([]domain.ArtistMatch, error)
	songsFn   func(ctx context.Context, pattern string) ([]domain.SongMatch, error)
}

func (m *searchRepoMock) Artists(ctx context.Context, pattern string) ([]domain.ArtistMatch, error) {
	if m.artistsFn != nil {
		return m.artistsFn(ctx, pattern)
	}
	return nil, nil
}

func (m *searchRepoMock) Songs(ctx context.Context, pattern string) ([]domain.SongMatch, error) {
	if m.songsFn != nil {
		return m.songsFn(ctx, pattern)
	}
	return nil, nil
}

func (m *searchRepoMock) Events(ctx context.Context, pattern string) ([]domain.EventMatch, error) {
	return nil, nil
}

func (m *searchRepoMock) PublicPlaylists(ctx context.Context, pattern string) ([]domain.PlaylistMatch, error) {
	return nil, nil
}

func TestSearchService_Search(t *testing.T) {
	t.Run("blank query", func(t *testing.T) {
		svc := NewSearchService(&searchRepoMock{})
		_, err := svc.Search(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrEmptyQuery)
	})

	t.Run("query is trimmed and wrapped for matching", func(t *testing.T) {
		var gotPattern string
		repo := &searchRepoMock{
			songsFn: func(_ context.Context, pattern string) ([]domain.SongMatch, error) {
				gotPattern = pattern
				return []domain.SongMatch{{Name: "Low Tide"}}, nil
			},
		}
		svc := NewSearchService(repo)

		results, err := svc.Search(context.Background(), "  tide ")
		require.NoError(t, err)
		assert.Equal(t, "%tide%", gotPattern)
		assert.Equal(t, "tide", results.Query)
		require.Len(t, results.Songs, 1)
	})

	t.Run("a failing category leaves the others intact", func(t *testing.T) {
		repo := &searchRepoMock{
			artistsFn: func(context.Context, string) ([]domain.ArtistMatch, error) {
				return nil, errors.New("artists offline")
			},
			songsFn: func(context.Context, string) ([]domain.SongMatch, error) {
				return []domain.SongMatch{{Name: "Aurora"}}, nil
			},
		}
		svc := NewSearchService(repo)

		results, err := svc.Search(context.Background(), "a")
		require.NoError(t, err)
		assert.Empty(t, results.Artists)
		require.Len(t, results.Songs, 1)
	})
}
