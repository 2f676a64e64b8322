package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/campuscare/clinic-backend/internal/application/services"
	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
)

// SchedulingService defines the interface for appointment and
// availability operations
type SchedulingService interface {
	ComputeAvailableSlots(ctx context.Context, doctorID, date string) ([]string, error)
	BookAppointment(ctx context.Context, req services.BookingRequest) (*entities.Appointment, error)
	CancelAppointment(ctx context.Context, id string) error
	UpdateAppointmentStatus(ctx context.Context, id string, status entities.AppointmentStatus) error
	GetAppointment(ctx context.Context, id string) (*entities.Appointment, error)
	ListAppointments(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error)
	ListStudentAppointments(ctx context.Context, studentID string, filter repositories.AppointmentFilter) ([]*entities.Appointment, error)
	CreateAvailability(ctx context.Context, window *entities.AvailabilityWindow) error
	UpdateAvailability(ctx context.Context, window *entities.AvailabilityWindow) ([]*entities.ClinicEvent, error)
	DeleteAvailability(ctx context.Context, id string) ([]*entities.ClinicEvent, error)
	ListDoctorAvailability(ctx context.Context, doctorID string) ([]*entities.AvailabilityWindow, error)
}

// SchedulingHandler handles appointment booking and doctor availability
type SchedulingHandler struct {
	service SchedulingService
}

// NewSchedulingHandler creates a new scheduling handler
func NewSchedulingHandler(service SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{
		service: service,
	}
}

type bookAppointmentRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	DoctorID  string `json:"doctor_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Symptoms  string `json:"symptoms"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type availabilityRequest struct {
	DoctorID  string `json:"doctor_id"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Status    string `json:"status" validate:"required"`
	Notes     string `json:"notes"`
}

// GetDoctorSlots handles GET /api/doctors/{id}/slots
func (h *SchedulingHandler) GetDoctorSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := r.PathValue("id")
	date := r.URL.Query().Get("date")
	if date == "" {
		respondWithError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}

	slots, err := h.service.ComputeAvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"doctor_id": doctorID,
		"date":      date,
		"slots":     slots,
	})
}

// BookAppointment handles POST /api/appointments
func (h *SchedulingHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req bookAppointmentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	appointment, err := h.service.BookAppointment(r.Context(), services.BookingRequest{
		StudentID: req.StudentID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
		Symptoms:  req.Symptoms,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, appointment)
}

// GetAppointment handles GET /api/appointments/{id}
func (h *SchedulingHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.service.GetAppointment(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, appointment)
}

// ListAppointments handles GET /api/appointments
func (h *SchedulingHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.ListAppointments(r.Context(), appointmentFilterFromQuery(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"appointments": appointments})
}

// ListStudentAppointments handles GET /api/students/{id}/appointments
func (h *SchedulingHandler) ListStudentAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.service.ListStudentAppointments(r.Context(), r.PathValue("id"), appointmentFilterFromQuery(r))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"appointments": appointments})
}

// CancelAppointment handles DELETE /api/appointments/{id}
func (h *SchedulingHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CancelAppointment(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// UpdateAppointmentStatus handles PATCH /api/appointments/{id}/status
func (h *SchedulingHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	id := r.PathValue("id")
	if err := h.service.UpdateAppointmentStatus(r.Context(), id, entities.AppointmentStatus(req.Status)); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"id": id, "status": req.Status})
}

// CreateAvailability handles POST /api/availability
func (h *SchedulingHandler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	window := &entities.AvailabilityWindow{
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    entities.AvailabilityStatus(req.Status),
		Notes:     req.Notes,
	}
	if err := h.service.CreateAvailability(r.Context(), window); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, window)
}

// UpdateAvailability handles PUT /api/availability/{id}. The response
// carries the reschedule events raised for appointments orphaned by the
// change so staff can see the fallout immediately.
func (h *SchedulingHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	var req availabilityRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	window := &entities.AvailabilityWindow{
		ID:        r.PathValue("id"),
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Status:    entities.AvailabilityStatus(req.Status),
		Notes:     req.Notes,
	}
	events, err := h.service.UpdateAvailability(r.Context(), window)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"window":            window,
		"reschedule_events": events,
	})
}

// DeleteAvailability handles DELETE /api/availability/{id}
func (h *SchedulingHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.DeleteAvailability(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "deleted",
		"reschedule_events": events,
	})
}

// ListDoctorAvailability handles GET /api/doctors/{id}/availability
func (h *SchedulingHandler) ListDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	windows, err := h.service.ListDoctorAvailability(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"windows": windows})
}

func appointmentFilterFromQuery(r *http.Request) repositories.AppointmentFilter {
	filter := repositories.AppointmentFilter{
		Status: entities.AppointmentStatus(r.URL.Query().Get("status")),
		Date:   r.URL.Query().Get("date"),
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && offset > 0 {
		filter.Offset = offset
	}
	return filter
}
