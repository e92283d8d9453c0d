package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	accountDomain "github.com/soundstage/soundstage/internal/modules/account/domain"
	"github.com/soundstage/soundstage/internal/modules/event/domain"
	notificationDomain "github.com/soundstage/soundstage/internal/modules/notification/domain"
)

type eventRepoMock struct {
	createFn        func(ctx context.Context, event *domain.Event, artistIDs []uuid.UUID) error
	getByIDFn       func(ctx context.Context, id uuid.UUID) (*domain.Event, error)
	createLocationFn func(ctx context.Context, location *domain.Location) error
}

func (m *eventRepoMock) Create(ctx context.Context, event *domain.Event, artistIDs []uuid.UUID) error {
	return m.createFn(ctx, event, artistIDs)
}

func (m *eventRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &domain.Event{ID: id}, nil
}

func (m *eventRepoMock) ListUpcoming(ctx context.Context) ([]domain.Event, error) { return nil, nil }

func (m *eventRepoMock) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]domain.Event, error) {
	return nil, nil
}

func (m *eventRepoMock) CreateLocation(ctx context.Context, location *domain.Location) error {
	return m.createLocationFn(ctx, location)
}

func (m *eventRepoMock) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return nil, nil
}

type eventNotifierMock struct {
	notified []uuid.UUID
}

func (m *eventNotifierMock) Notify(ctx context.Context, userID uuid.UUID, title, message string, kind notificationDomain.NotificationType) error {
	m.notified = append(m.notified, userID)
	return nil
}

func TestEventService_CreateEvent(t *testing.T) {
	locationID := uuid.New()
	validReq := func() CreateEventRequest {
		return CreateEventRequest{
			Description: "Album release night",
			Date:        time.Now().AddDate(0, 1, 0),
			LocationID:  locationID,
		}
	}

	t.Run("artist caller is credited even when omitted", func(t *testing.T) {
		callerID := uuid.New()
		var gotArtists []uuid.UUID
		repo := &eventRepoMock{
			createFn: func(_ context.Context, _ *domain.Event, artistIDs []uuid.UUID) error {
				gotArtists = artistIDs
				return nil
			},
		}
		svc := NewEventService(repo, nil)

		_, err := svc.CreateEvent(context.Background(), callerID, accountDomain.RoleArtist, validReq())
		require.NoError(t, err)
		assert.Contains(t, gotArtists, callerID)
	})

	t.Run("artist caller already listed is not duplicated", func(t *testing.T) {
		callerID := uuid.New()
		req := validReq()
		req.ArtistIDs = []uuid.UUID{callerID}

		var gotArtists []uuid.UUID
		repo := &eventRepoMock{
			createFn: func(_ context.Context, _ *domain.Event, artistIDs []uuid.UUID) error {
				gotArtists = artistIDs
				return nil
			},
		}
		svc := NewEventService(repo, nil)

		_, err := svc.CreateEvent(context.Background(), callerID, accountDomain.RoleArtist, req)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{callerID}, gotArtists)
	})

	t.Run("manager list passes through unchanged", func(t *testing.T) {
		callerID := uuid.New()
		artistID := uuid.New()
		req := validReq()
		req.ArtistIDs = []uuid.UUID{artistID}

		var gotArtists []uuid.UUID
		repo := &eventRepoMock{
			createFn: func(_ context.Context, _ *domain.Event, artistIDs []uuid.UUID) error {
				gotArtists = artistIDs
				return nil
			},
		}
		svc := NewEventService(repo, nil)

		_, err := svc.CreateEvent(context.Background(), callerID, accountDomain.RoleManager, req)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{artistID}, gotArtists)
		assert.NotContains(t, gotArtists, callerID)
	})

	t.Run("co-credited artists are notified, the caller is not", func(t *testing.T) {
		callerID := uuid.New()
		otherArtist := uuid.New()
		req := validReq()
		req.ArtistIDs = []uuid.UUID{otherArtist}

		repo := &eventRepoMock{
			createFn: func(context.Context, *domain.Event, []uuid.UUID) error { return nil },
		}
		notifier := &eventNotifierMock{}
		svc := NewEventService(repo, notifier)

		_, err := svc.CreateEvent(context.Background(), callerID, accountDomain.RoleArtist, req)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{otherArtist}, notifier.notified)
	})

	t.Run("missing fields are rejected before the repository", func(t *testing.T) {
		repo := &eventRepoMock{
			createFn: func(context.Context, *domain.Event, []uuid.UUID) error {
				t.Fatal("repository should not be called")
				return nil
			},
		}
		svc := NewEventService(repo, nil)

		cases := []CreateEventRequest{
			{Date: time.Now(), LocationID: locationID},
			{Description: "show", LocationID: locationID},
			{Description: "show", Date: time.Now()},
		}
		for _, req := range cases {
			_, err := svc.CreateEvent(context.Background(), uuid.New(), accountDomain.RoleManager, req)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	})
}

func TestEventService_CreateLocation(t *testing.T) {
	t.Run("valid location is stored trimmed", func(t *testing.T) {
		var stored *domain.Location
		repo := &eventRepoMock{
			createLocationFn: func(_ context.Context, location *domain.Location) error {
				stored = location
				return nil
			},
		}
		svc := NewEventService(repo, nil)

		location, err := svc.CreateLocation(context.Background(), CreateLocationRequest{
			Address: "  12 Harbour Rd ",
			City:    "Lisbon",
			Country: "Portugal",
		})
		require.NoError(t, err)
		assert.Equal(t, "12 Harbour Rd", location.Address)
		assert.Equal(t, stored, location)
		assert.NotEqual(t, uuid.Nil, location.ID)
	})

	t.Run("blank city is rejected", func(t *testing.T) {
		repo := &eventRepoMock{
			createLocationFn: func(context.Context, *domain.Location) error {
				t.Fatal("repository should not be called")
				return nil
			},
		}
		svc := NewEventService(repo, nil)

		_, err := svc.CreateLocation(context.Background(), CreateLocationRequest{
			Address: "12 Harbour Rd",
			City:    "   ",
			Country: "Portugal",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
