package providers

import (
	"context"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// clinic domain events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ClinicEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ClinicEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channel constants
const (
	// EventChannelScheduling carries appointment lifecycle events
	EventChannelScheduling = "clinic:scheduling"

	// EventChannelInventory carries stock-level events
	EventChannelInventory = "clinic:inventory"

	// EventChannelDoctorPrefix is the prefix for doctor-specific channels
	EventChannelDoctorPrefix = "clinic:doctor:"
)

// DoctorChannel returns the channel name for a specific doctor
func DoctorChannel(doctorID string) string {
	return EventChannelDoctorPrefix + doctorID
}
