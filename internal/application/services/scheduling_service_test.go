package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/campuscare/clinic-backend/internal/application/services"
	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

func newSchedulingService(appointments *MockAppointmentRepository, availability *MockAvailabilityRepository, staff *MockStaffRepository, bus *MockEventBus) *services.SchedulingService {
	var eventBus providers.EventBus
	if bus != nil {
		eventBus = bus
	}
	return services.NewSchedulingService(appointments, availability, staff, nil, eventBus)
}

func TestSchedulingService_ComputeAvailableSlots(t *testing.T) {
	t.Run("yields 30 minute steps strictly before window end", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		availability := new(MockAvailabilityRepository)
		service := newSchedulingService(appointments, availability, nil, nil)

		availability.On("ListByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.AvailabilityWindow{
			{ID: "w-1", DoctorID: "doc-1", Date: "2026-09-01", StartTime: "10:00", EndTime: "11:00", Status: entities.AvailabilityStatusAvailable},
		}, nil)
		appointments.On("ListActiveByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.Appointment{}, nil)

		slots, err := service.ComputeAvailableSlots(context.Background(), "doc-1", "2026-09-01")

		assert.NoError(t, err)
		assert.Equal(t, []string{"10:00", "10:30"}, slots)
	})

	t.Run("excludes slots held by non-cancelled appointments", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		availability := new(MockAvailabilityRepository)
		service := newSchedulingService(appointments, availability, nil, nil)

		availability.On("ListByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.AvailabilityWindow{
			{ID: "w-1", DoctorID: "doc-1", Date: "2026-09-01", StartTime: "10:00", EndTime: "12:00", Status: entities.AvailabilityStatusAvailable},
		}, nil)
		appointments.On("ListActiveByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.Appointment{
			{ID: "a-1", Time: "10:30", Status: entities.AppointmentStatusPending},
			{ID: "a-2", Time: "11:30", Status: entities.AppointmentStatusConfirmed},
		}, nil)

		slots, err := service.ComputeAvailableSlots(context.Background(), "doc-1", "2026-09-01")

		assert.NoError(t, err)
		assert.Equal(t, []string{"10:00", "11:00"}, slots)
	})

	t.Run("ignores windows that are not Available", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		availability := new(MockAvailabilityRepository)
		service := newSchedulingService(appointments, availability, nil, nil)

		availability.On("ListByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.AvailabilityWindow{
			{ID: "w-1", StartTime: "09:00", EndTime: "10:00", Status: entities.AvailabilityStatusBusy},
			{ID: "w-2", StartTime: "14:00", EndTime: "15:00", Status: entities.AvailabilityStatusUnavailable},
		}, nil)
		appointments.On("ListActiveByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.Appointment{}, nil)

		slots, err := service.ComputeAvailableSlots(context.Background(), "doc-1", "2026-09-01")

		assert.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("merges disjoint windows sorted ascending", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		availability := new(MockAvailabilityRepository)
		service := newSchedulingService(appointments, availability, nil, nil)

		availability.On("ListByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.AvailabilityWindow{
			{ID: "w-2", StartTime: "14:00", EndTime: "15:00", Status: entities.AvailabilityStatusAvailable},
			{ID: "w-1", StartTime: "09:00", EndTime: "10:00", Status: entities.AvailabilityStatusAvailable},
		}, nil)
		appointments.On("ListActiveByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.Appointment{}, nil)

		slots, err := service.ComputeAvailableSlots(context.Background(), "doc-1", "2026-09-01")

		assert.NoError(t, err)
		assert.Equal(t, []string{"09:00", "09:30", "14:00", "14:30"}, slots)
	})

	t.Run("keeps duplicate time points from overlapping windows", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		availability := new(MockAvailabilityRepository)
		service := newSchedulingService(appointments, availability, nil, nil)

		availability.On("ListByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.AvailabilityWindow{
			{ID: "w-1", StartTime: "10:00", EndTime: "11:00", Status: entities.AvailabilityStatusAvailable},
			{ID: "w-2", StartTime: "10:30", EndTime: "11:30", Status: entities.AvailabilityStatusAvailable},
		}, nil)
		appointments.On("ListActiveByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.Appointment{}, nil)

		slots, err := service.ComputeAvailableSlots(context.Background(), "doc-1", "2026-09-01")

		assert.NoError(t, err)
		assert.Equal(t, []string{"10:00", "10:30", "10:30", "11:00"}, slots)
	})
}

func TestSchedulingService_BookAppointment(t *testing.T) {
	windows := []*entities.AvailabilityWindow{
		{ID: "w-1", DoctorID: "doc-1", Date: "2026-09-01", StartTime: "10:00", EndTime: "11:00", Status: entities.AvailabilityStatusAvailable},
	}

	t.Run("books a pending appointment inside an available window", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		availability := new(MockAvailabilityRepository)
		bus := new(MockEventBus)
		service := newSchedulingService(appointments, availability, nil, bus)

		appointments.On("CountActiveAt", mock.Anything, "doc-1", "2026-09-01", "10:30").Return(0, nil)
		availability.On("ListByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return(windows, nil)
		appointments.On("CreateIfSlotFree", mock.Anything, mock.MatchedBy(func(a *entities.Appointment) bool {
			return a.Status == entities.AppointmentStatusPending && a.Time == "10:30"
		})).Return(nil)
		bus.On("Publish", mock.Anything, providers.EventChannelScheduling, mock.MatchedBy(func(e *entities.ClinicEvent) bool {
			return e.Type == entities.EventAppointmentCreated
		})).Return(nil)

		appointment, err := service.BookAppointment(context.Background(), services.BookingRequest{
			StudentID: "stu-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:30", Symptoms: "headache",
		})

		assert.NoError(t, err)
		assert.Equal(t, entities.AppointmentStatusPending, appointment.Status)
		assert.NotEmpty(t, appointment.ID)
		appointments.AssertExpectations(t)
		bus.AssertExpectations(t)
	})

	t.Run("rejects an occupied slot with a conflict", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		availability := new(MockAvailabilityRepository)
		service := newSchedulingService(appointments, availability, nil, nil)

		appointments.On("CountActiveAt", mock.Anything, "doc-1", "2026-09-01", "10:00").Return(1, nil)

		_, err := service.BookAppointment(context.Background(), services.BookingRequest{
			StudentID: "stu-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:00",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		assert.Contains(t, err.Error(), "no longer available")
		appointments.AssertNotCalled(t, "CreateIfSlotFree", mock.Anything, mock.Anything)
	})

	t.Run("rejects a time outside every available window", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		availability := new(MockAvailabilityRepository)
		service := newSchedulingService(appointments, availability, nil, nil)

		appointments.On("CountActiveAt", mock.Anything, "doc-1", "2026-09-01", "11:00").Return(0, nil)
		availability.On("ListByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return(windows, nil)

		_, err := service.BookAppointment(context.Background(), services.BookingRequest{
			StudentID: "stu-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "11:00",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
		assert.Contains(t, err.Error(), "outside the doctor's available hours")
	})

	t.Run("rejects a time off the slot grid even inside a window", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		availability := new(MockAvailabilityRepository)
		service := newSchedulingService(appointments, availability, nil, nil)

		appointments.On("CountActiveAt", mock.Anything, "doc-1", "2026-09-01", "10:45").Return(0, nil)
		availability.On("ListByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return(windows, nil)

		_, err := service.BookAppointment(context.Background(), services.BookingRequest{
			StudentID: "stu-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:45",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
		appointments.AssertNotCalled(t, "CreateIfSlotFree", mock.Anything, mock.Anything)
	})

	t.Run("allows booking at the window start time", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		availability := new(MockAvailabilityRepository)
		service := newSchedulingService(appointments, availability, nil, nil)

		appointments.On("CountActiveAt", mock.Anything, "doc-1", "2026-09-01", "10:00").Return(0, nil)
		availability.On("ListByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return(windows, nil)
		appointments.On("CreateIfSlotFree", mock.Anything, mock.Anything).Return(nil)

		_, err := service.BookAppointment(context.Background(), services.BookingRequest{
			StudentID: "stu-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:00",
		})

		assert.NoError(t, err)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		service := newSchedulingService(new(MockAppointmentRepository), new(MockAvailabilityRepository), nil, nil)

		_, err := service.BookAppointment(context.Background(), services.BookingRequest{
			StudentID: "stu-1", DoctorID: "doc-1", Date: "01-09-2026", Time: "10:00",
		})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})
}

func TestSchedulingService_CancelAppointment(t *testing.T) {
	t.Run("cancels a pending appointment", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		service := newSchedulingService(appointments, new(MockAvailabilityRepository), nil, nil)

		appointments.On("GetByID", mock.Anything, "a-1").Return(&entities.Appointment{
			ID: "a-1", StudentID: "stu-1", Status: entities.AppointmentStatusPending,
		}, nil)
		appointments.On("UpdateStatus", mock.Anything, "a-1", entities.AppointmentStatusCancelled).Return(nil)

		err := service.CancelAppointment(context.Background(), "a-1")

		assert.NoError(t, err)
		appointments.AssertExpectations(t)
	})

	t.Run("refuses to cancel a completed appointment", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		service := newSchedulingService(appointments, new(MockAvailabilityRepository), nil, nil)

		appointments.On("GetByID", mock.Anything, "a-1").Return(&entities.Appointment{
			ID: "a-1", Status: entities.AppointmentStatusCompleted,
		}, nil)

		err := service.CancelAppointment(context.Background(), "a-1")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		appointments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestSchedulingService_OnAvailabilityChanged(t *testing.T) {
	oldWindow := &entities.AvailabilityWindow{
		ID: "w-1", DoctorID: "doc-1", Date: "2026-09-01",
		StartTime: "10:00", EndTime: "11:00",
		Status: entities.AvailabilityStatusAvailable,
	}

	t.Run("raises one reschedule event per orphaned confirmed appointment", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		staff := new(MockStaffRepository)
		bus := new(MockEventBus)
		service := newSchedulingService(appointments, new(MockAvailabilityRepository), staff, bus)

		appointments.On("ListActiveByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.Appointment{
			{ID: "a-1", StudentID: "stu-1", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:00", Status: entities.AppointmentStatusPending},
			{ID: "a-2", StudentID: "stu-2", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:30", Status: entities.AppointmentStatusConfirmed},
			{ID: "a-3", StudentID: "stu-3", DoctorID: "doc-1", Date: "2026-09-01", Time: "11:30", Status: entities.AppointmentStatusConfirmed},
		}, nil)
		staff.On("GetByID", mock.Anything, "doc-1").Return(&entities.Staff{ID: "doc-1", Name: "Meera Iyer"}, nil)
		bus.On("Publish", mock.Anything, providers.EventChannelScheduling, mock.MatchedBy(func(e *entities.ClinicEvent) bool {
			return e.Type == entities.EventRescheduleRequired && e.AppointmentID == "a-2"
		})).Return(nil)

		unavailable := *oldWindow
		unavailable.Status = entities.AvailabilityStatusUnavailable
		events, err := service.OnAvailabilityChanged(context.Background(), oldWindow, &unavailable)

		assert.NoError(t, err)
		assert.Len(t, events, 1)
		assert.Equal(t, "a-2", events[0].AppointmentID)
		assert.Contains(t, events[0].Detail, "Meera Iyer")
		bus.AssertExpectations(t)
	})

	t.Run("does nothing when the window stays available", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		service := newSchedulingService(appointments, new(MockAvailabilityRepository), nil, nil)

		updated := *oldWindow
		updated.EndTime = "12:00"
		events, err := service.OnAvailabilityChanged(context.Background(), oldWindow, &updated)

		assert.NoError(t, err)
		assert.Empty(t, events)
		appointments.AssertNotCalled(t, "ListActiveByDoctorDate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("does nothing when the old window was not available", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		service := newSchedulingService(appointments, new(MockAvailabilityRepository), nil, nil)

		busy := *oldWindow
		busy.Status = entities.AvailabilityStatusBusy
		events, err := service.OnAvailabilityChanged(context.Background(), &busy, nil)

		assert.NoError(t, err)
		assert.Empty(t, events)
	})

	t.Run("propagates on window delete", func(t *testing.T) {
		appointments := new(MockAppointmentRepository)
		staff := new(MockStaffRepository)
		bus := new(MockEventBus)
		service := newSchedulingService(appointments, new(MockAvailabilityRepository), staff, bus)

		appointments.On("ListActiveByDoctorDate", mock.Anything, "doc-1", "2026-09-01").Return([]*entities.Appointment{
			{ID: "a-2", StudentID: "stu-2", DoctorID: "doc-1", Date: "2026-09-01", Time: "10:30", Status: entities.AppointmentStatusConfirmed},
		}, nil)
		staff.On("GetByID", mock.Anything, "doc-1").Return(nil, apperrors.NewNotFoundError("staff not found"))
		bus.On("Publish", mock.Anything, providers.EventChannelScheduling, mock.Anything).Return(nil)

		events, err := service.OnAvailabilityChanged(context.Background(), oldWindow, nil)

		assert.NoError(t, err)
		assert.Len(t, events, 1)
	})
}

func TestSchedulingService_UpdateAvailability(t *testing.T) {
	t.Run("preserves the doctor id from the stored window", func(t *testing.T) {
		availability := new(MockAvailabilityRepository)
		appointments := new(MockAppointmentRepository)
		service := newSchedulingService(appointments, availability, nil, nil)

		availability.On("GetByID", mock.Anything, "w-1").Return(&entities.AvailabilityWindow{
			ID: "w-1", DoctorID: "doc-1", Date: "2026-09-01",
			StartTime: "10:00", EndTime: "11:00",
			Status: entities.AvailabilityStatusUnavailable,
		}, nil)
		availability.On("Update", mock.Anything, mock.MatchedBy(func(w *entities.AvailabilityWindow) bool {
			return w.DoctorID == "doc-1"
		})).Return(nil)

		_, err := service.UpdateAvailability(context.Background(), &entities.AvailabilityWindow{
			ID: "w-1", Date: "2026-09-01", StartTime: "10:00", EndTime: "12:00",
			Status: entities.AvailabilityStatusAvailable,
		})

		assert.NoError(t, err)
		availability.AssertExpectations(t)
	})
}
