package repositories

import (
	"context"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	// Create creates a new notification
	Create(ctx context.Context, notification *entities.Notification) error

	// ListForUser retrieves the notifications visible to a user: everyone-
	// scoped ones, ones for the user's role (including the Staff group for
	// doctors and nurses), and ones addressed to the user directly
	ListForUser(ctx context.Context, userID string, role entities.Role) ([]*entities.Notification, error)

	// MarkRead marks a notification as read
	MarkRead(ctx context.Context, id string) error
}

// BroadcastRepository defines the interface for broadcast operations
type BroadcastRepository interface {
	// Create creates a new broadcast
	Create(ctx context.Context, broadcast *entities.Broadcast) error

	// List retrieves all broadcasts, newest first
	List(ctx context.Context) ([]*entities.Broadcast, error)
}
