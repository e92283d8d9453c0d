package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/soundstage/soundstage/internal/modules/notification/domain"
	"github.com/soundstage/soundstage/internal/modules/notification/infrastructure/websocket"
)

type NotificationService struct {
	repo domain.NotificationRepository
	hub  *websocket.Hub
}

func NewNotificationService(repo domain.NotificationRepository, hub *websocket.Hub) *NotificationService {
	return &NotificationService{repo: repo, hub: hub}
}

// Notify stores the notification and pushes it to the user's live
// connections, if any.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, title, message string, kind domain.NotificationType) error {
	notification := &domain.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      kind,
		IsRead:    false,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	if msgBytes, err := json.Marshal(notification); err == nil {
		s.hub.SendToUser(userID, msgBytes)
	}
	return nil
}

func (s *NotificationService) GetHub() *websocket.Hub {
	return s.hub
}

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.UnreadCount(ctx, userID)
}
