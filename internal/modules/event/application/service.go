package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	accountDomain "github.com/soundstage/soundstage/internal/modules/account/domain"
	"github.com/soundstage/soundstage/internal/modules/event/domain"
	notificationDomain "github.com/soundstage/soundstage/internal/modules/notification/domain"
)

// Notifier tells credited artists about events scheduled on their behalf.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message string, kind notificationDomain.NotificationType) error
}

type CreateEventRequest struct {
	Description string      `json:"description"`
	Date        time.Time   `json:"date"`
	Conditions  *string     `json:"conditions"`
	LocationID  uuid.UUID   `json:"location_id"`
	ArtistIDs   []uuid.UUID `json:"artist_ids"`
}

type CreateLocationRequest struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Region  *string `json:"region"`
	Country string  `json:"country"`
}

type EventService struct {
	repo     domain.EventRepository
	notifier Notifier
}

func NewEventService(repo domain.EventRepository, notifier Notifier) *EventService {
	return &EventService{repo: repo, notifier: notifier}
}

// CreateEvent schedules an event. An artist caller is always credited on
// their own event; a manager must name the artists explicitly.
func (s *EventService) CreateEvent(ctx context.Context, callerID uuid.UUID, callerRole accountDomain.Role, req CreateEventRequest) (*domain.Event, error) {
	if strings.TrimSpace(req.Description) == "" || req.Date.IsZero() || req.LocationID == uuid.Nil {
		return nil, domain.ErrValidation
	}

	artistIDs := req.ArtistIDs
	if callerRole == accountDomain.RoleArtist {
		credited := false
		for _, id := range artistIDs {
			if id == callerID {
				credited = true
				break
			}
		}
		if !credited {
			artistIDs = append(artistIDs, callerID)
		}
	}

	event := &domain.Event{
		ID:          uuid.New(),
		Description: strings.TrimSpace(req.Description),
		Date:        req.Date,
		Conditions:  req.Conditions,
		LocationID:  req.LocationID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, event, artistIDs); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		for _, artistID := range artistIDs {
			if artistID == callerID {
				continue
			}
			if err := s.notifier.Notify(ctx, artistID, "You were added to an event",
				fmt.Sprintf("You are credited on %q scheduled for %s.", event.Description, event.Date.Format("Jan 2, 2006")),
				notificationDomain.NotificationTypeInfo); err != nil {
				log.Printf("failed to notify artist %s about event %s: %v", artistID, event.ID, err)
			}
		}
	}

	return s.repo.GetByID(ctx, event.ID)
}

func (s *EventService) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EventService) ListUpcoming(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListUpcoming(ctx)
}

func (s *EventService) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]domain.Event, error) {
	return s.repo.ListByArtist(ctx, artistID)
}

func (s *EventService) CreateLocation(ctx context.Context, req CreateLocationRequest) (*domain.Location, error) {
	if strings.TrimSpace(req.Address) == "" || strings.TrimSpace(req.City) == "" || strings.TrimSpace(req.Country) == "" {
		return nil, domain.ErrValidation
	}

	location := &domain.Location{
		ID:      uuid.New(),
		Address: strings.TrimSpace(req.Address),
		City:    strings.TrimSpace(req.City),
		Region:  req.Region,
		Country: strings.TrimSpace(req.Country),
	}
	if err := s.repo.CreateLocation(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *EventService) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s.repo.ListLocations(ctx)
}
