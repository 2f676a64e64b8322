package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

// broadcastPreviewLen caps the notification preview of a broadcast body
const broadcastPreviewLen = 50

// NotificationService records and serves in-app notifications and
// admin broadcasts.
type NotificationService struct {
	notifications repositories.NotificationRepository
	broadcasts    repositories.BroadcastRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	notifications repositories.NotificationRepository,
	broadcasts repositories.BroadcastRepository,
) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		broadcasts:    broadcasts,
	}
}

// Notify records a notification for the given recipient
func (s *NotificationService) Notify(ctx context.Context, recipient entities.Recipient, title, message string) error {
	if title == "" {
		return apperrors.NewValidationError("notification title is required")
	}

	return s.notifications.Create(ctx, &entities.Notification{
		ID:        uuid.New().String(),
		Title:     title,
		Message:   message,
		Recipient: recipient,
		SendTime:  time.Now().UTC(),
		Read:      false,
	})
}

// ListForUser retrieves the notifications visible to a user
func (s *NotificationService) ListForUser(ctx context.Context, userID string, role entities.Role) ([]*entities.Notification, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user id is required")
	}
	return s.notifications.ListForUser(ctx, userID, role)
}

// MarkRead marks a notification as read
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("notification id is required")
	}
	return s.notifications.MarkRead(ctx, id)
}

// PostBroadcast publishes an admin announcement and notifies everyone
// with a truncated preview of its body.
func (s *NotificationService) PostBroadcast(ctx context.Context, title, content string) (*entities.Broadcast, error) {
	if title == "" {
		return nil, apperrors.NewValidationError("broadcast title is required")
	}
	if content == "" {
		return nil, apperrors.NewValidationError("broadcast content is required")
	}

	broadcast := &entities.Broadcast{
		ID:       uuid.New().String(),
		Title:    title,
		Content:  content,
		PostDate: time.Now().UTC(),
	}
	if err := s.broadcasts.Create(ctx, broadcast); err != nil {
		return nil, err
	}

	preview := content
	if len(preview) > broadcastPreviewLen {
		preview = preview[:broadcastPreviewLen] + "..."
	}
	if err := s.Notify(ctx, entities.Everyone(), "Announcement: "+title, preview); err != nil {
		return nil, err
	}

	return broadcast, nil
}

// ListBroadcasts retrieves all broadcasts, newest first
func (s *NotificationService) ListBroadcasts(ctx context.Context) ([]*entities.Broadcast, error) {
	return s.broadcasts.List(ctx)
}
