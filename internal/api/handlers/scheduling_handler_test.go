package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/campuscare/clinic-backend/internal/api/handlers"
	"github.com/campuscare/clinic-backend/internal/application/services"
	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

// MockSchedulingService defines the mock service
type MockSchedulingService struct {
	mock.Mock
}

func (m *MockSchedulingService) ComputeAvailableSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	args := m.Called(ctx, doctorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSchedulingService) BookAppointment(ctx context.Context, req services.BookingRequest) (*entities.Appointment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockSchedulingService) CancelAppointment(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSchedulingService) UpdateAppointmentStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockSchedulingService) GetAppointment(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockSchedulingService) ListAppointments(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockSchedulingService) ListStudentAppointments(ctx context.Context, studentID string, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	args := m.Called(ctx, studentID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockSchedulingService) CreateAvailability(ctx context.Context, window *entities.AvailabilityWindow) error {
	args := m.Called(ctx, window)
	return args.Error(0)
}

func (m *MockSchedulingService) UpdateAvailability(ctx context.Context, window *entities.AvailabilityWindow) ([]*entities.ClinicEvent, error) {
	args := m.Called(ctx, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ClinicEvent), args.Error(1)
}

func (m *MockSchedulingService) DeleteAvailability(ctx context.Context, id string) ([]*entities.ClinicEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ClinicEvent), args.Error(1)
}

func (m *MockSchedulingService) ListDoctorAvailability(ctx context.Context, doctorID string) ([]*entities.AvailabilityWindow, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AvailabilityWindow), args.Error(1)
}

func TestSchedulingHandler_GetDoctorSlots(t *testing.T) {
	t.Run("returns the computed slots", func(t *testing.T) {
		mockService := new(MockSchedulingService)
		handler := handlers.NewSchedulingHandler(mockService)

		mockService.On("ComputeAvailableSlots", mock.Anything, "doc-1", "2026-09-01").
			Return([]string{"10:00", "10:30"}, nil)

		req := httptest.NewRequest("GET", "/api/doctors/doc-1/slots?date=2026-09-01", nil)
		req.SetPathValue("id", "doc-1")
		w := httptest.NewRecorder()

		handler.GetDoctorSlots(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, []interface{}{"10:00", "10:30"}, response["slots"])
	})

	t.Run("requires a date query parameter", func(t *testing.T) {
		handler := handlers.NewSchedulingHandler(new(MockSchedulingService))

		req := httptest.NewRequest("GET", "/api/doctors/doc-1/slots", nil)
		req.SetPathValue("id", "doc-1")
		w := httptest.NewRecorder()

		handler.GetDoctorSlots(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSchedulingHandler_BookAppointment(t *testing.T) {
	payload := map[string]string{
		"student_id": "stu-1",
		"doctor_id":  "doc-1",
		"date":       "2026-09-01",
		"time":       "10:30",
		"symptoms":   "headache",
	}

	t.Run("books and returns 201", func(t *testing.T) {
		mockService := new(MockSchedulingService)
		handler := handlers.NewSchedulingHandler(mockService)

		mockService.On("BookAppointment", mock.Anything, mock.MatchedBy(func(r services.BookingRequest) bool {
			return r.StudentID == "stu-1" && r.Time == "10:30"
		})).Return(&entities.Appointment{ID: "a-1", Status: entities.AppointmentStatusPending}, nil)

		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("maps a slot conflict to 409", func(t *testing.T) {
		mockService := new(MockSchedulingService)
		handler := handlers.NewSchedulingHandler(mockService)

		mockService.On("BookAppointment", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewConflictError("This time slot is no longer available. Please select another time."))

		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "no longer available")
	})

	t.Run("maps an out-of-window time to 422", func(t *testing.T) {
		mockService := new(MockSchedulingService)
		handler := handlers.NewSchedulingHandler(mockService)

		mockService.On("BookAppointment", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewUnavailableError("The selected time is outside the doctor's available hours."))

		body, _ := json.Marshal(payload)
		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rejects a payload missing required fields", func(t *testing.T) {
		handler := handlers.NewSchedulingHandler(new(MockSchedulingService))

		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBufferString(`{"student_id":"stu-1"}`))
		w := httptest.NewRecorder()

		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		handler := handlers.NewSchedulingHandler(new(MockSchedulingService))

		req := httptest.NewRequest("POST", "/api/appointments", bytes.NewBufferString("invalid-json"))
		w := httptest.NewRecorder()

		handler.BookAppointment(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSchedulingHandler_UpdateAvailability(t *testing.T) {
	t.Run("returns the reschedule events raised by the change", func(t *testing.T) {
		mockService := new(MockSchedulingService)
		handler := handlers.NewSchedulingHandler(mockService)

		mockService.On("UpdateAvailability", mock.Anything, mock.MatchedBy(func(w *entities.AvailabilityWindow) bool {
			return w.ID == "w-1" && w.Status == entities.AvailabilityStatusUnavailable
		})).Return([]*entities.ClinicEvent{
			{Type: entities.EventRescheduleRequired, AppointmentID: "a-2"},
		}, nil)

		body, _ := json.Marshal(map[string]string{
			"date":       "2026-09-01",
			"start_time": "10:00",
			"end_time":   "11:00",
			"status":     "Unavailable",
		})
		req := httptest.NewRequest("PUT", "/api/availability/w-1", bytes.NewBuffer(body))
		req.SetPathValue("id", "w-1")
		w := httptest.NewRecorder()

		handler.UpdateAvailability(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "reschedule_events")
		assert.Contains(t, w.Body.String(), "a-2")
	})
}
