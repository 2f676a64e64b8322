package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

func TestAvailabilityWindowContains(t *testing.T) {
	window := &entities.AvailabilityWindow{StartTime: "10:00", EndTime: "11:00"}

	assert.True(t, window.Contains("10:00"), "window start is bookable")
	assert.True(t, window.Contains("10:30"))
	assert.False(t, window.Contains("11:00"), "window end is exclusive")
	assert.False(t, window.Contains("09:30"))
	assert.False(t, window.Contains("12:00"))
}

func TestAppointmentActive(t *testing.T) {
	for _, status := range []entities.AppointmentStatus{
		entities.AppointmentStatusPending,
		entities.AppointmentStatusConfirmed,
		entities.AppointmentStatusCompleted,
	} {
		appointment := &entities.Appointment{Status: status}
		assert.True(t, appointment.Active(), string(status))
	}

	cancelled := &entities.Appointment{Status: entities.AppointmentStatusCancelled}
	assert.False(t, cancelled.Active())
}
