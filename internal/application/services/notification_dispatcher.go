package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
)

// NotificationDispatcher turns scheduling and inventory events from the
// bus into persisted notifications. It is the consumer of the
// reschedule-required events the availability propagator emits.
type NotificationDispatcher struct {
	eventBus      providers.EventBus
	notifications *NotificationService
	ctx           context.Context
	cancel        context.CancelFunc
}

// NewNotificationDispatcher creates a new dispatcher
func NewNotificationDispatcher(eventBus providers.EventBus, notifications *NotificationService) *NotificationDispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &NotificationDispatcher{
		eventBus:      eventBus,
		notifications: notifications,
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start subscribes to the scheduling and inventory channels and begins
// dispatching
func (d *NotificationDispatcher) Start() error {
	scheduling, err := d.eventBus.Subscribe(d.ctx, providers.EventChannelScheduling)
	if err != nil {
		return fmt.Errorf("failed to subscribe to scheduling events: %w", err)
	}
	inventory, err := d.eventBus.Subscribe(d.ctx, providers.EventChannelInventory)
	if err != nil {
		return fmt.Errorf("failed to subscribe to inventory events: %w", err)
	}

	go d.processEvents(scheduling)
	go d.processEvents(inventory)
	log.Info().Msg("notification dispatcher started")
	return nil
}

// Stop stops the dispatcher
func (d *NotificationDispatcher) Stop() {
	d.cancel()
	log.Info().Msg("notification dispatcher stopped")
}

func (d *NotificationDispatcher) processEvents(events <-chan *entities.ClinicEvent) {
	for {
		select {
		case <-d.ctx.Done():
			return
		case event := <-events:
			if event == nil {
				continue
			}
			d.handleEvent(event)
		}
	}
}

func (d *NotificationDispatcher) handleEvent(event *entities.ClinicEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch event.Type {
	case entities.EventRescheduleRequired:
		// The appointment stays booked; the student decides what to do.
		err := d.notifications.Notify(ctx, entities.ForUser(event.StudentID),
			"Appointment Reschedule Required", event.Detail)
		if err != nil {
			log.Warn().Err(err).
				Str("appointment_id", event.AppointmentID).
				Msg("failed to deliver reschedule notification")
		}
	case entities.EventAppointmentCreated:
		// Booking confirmations are written synchronously by the
		// scheduling service; the event exists for doctor dashboards.
	case entities.EventLowStock:
		// Admin alerts are written synchronously by the inventory
		// service; the event exists for external stock monitors.
	default:
		log.Debug().Str("type", string(event.Type)).Msg("ignoring unhandled clinic event")
	}
}
