package handlers

import (
	"context"
	"net/http"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// DirectoryService defines the interface for student and staff lookups
type DirectoryService interface {
	GetStudent(ctx context.Context, id string) (*entities.Student, error)
	ListStudents(ctx context.Context) ([]*entities.Student, error)
	GetStaff(ctx context.Context, id string) (*entities.Staff, error)
	ListStaff(ctx context.Context) ([]*entities.Staff, error)
	ListDoctors(ctx context.Context) ([]*entities.Staff, error)
	AddSchedule(ctx context.Context, staffID, date, startTime, endTime string, shift entities.ShiftType) (*entities.StaffSchedule, error)
	ListSchedules(ctx context.Context) ([]*entities.StaffSchedule, error)
	ListStaffSchedules(ctx context.Context, staffID string) ([]*entities.StaffSchedule, error)
}

// DirectoryHandler handles student, staff and schedule endpoints
type DirectoryHandler struct {
	service DirectoryService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(service DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{
		service: service,
	}
}

type addScheduleRequest struct {
	StaffID   string `json:"staff_id" validate:"required"`
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	ShiftType string `json:"shift_type" validate:"required"`
}

// GetStudent handles GET /api/students/{id}
func (h *DirectoryHandler) GetStudent(w http.ResponseWriter, r *http.Request) {
	student, err := h.service.GetStudent(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, student)
}

// ListStudents handles GET /api/students
func (h *DirectoryHandler) ListStudents(w http.ResponseWriter, r *http.Request) {
	students, err := h.service.ListStudents(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"students": students})
}

// GetStaff handles GET /api/staff/{id}
func (h *DirectoryHandler) GetStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.service.GetStaff(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, staff)
}

// ListStaff handles GET /api/staff
func (h *DirectoryHandler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.service.ListStaff(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"staff": staff})
}

// ListDoctors handles GET /api/doctors
func (h *DirectoryHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.service.ListDoctors(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"doctors": doctors})
}

// AddSchedule handles POST /api/schedules
func (h *DirectoryHandler) AddSchedule(w http.ResponseWriter, r *http.Request) {
	var req addScheduleRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	schedule, err := h.service.AddSchedule(r.Context(), req.StaffID, req.Date, req.StartTime, req.EndTime, entities.ShiftType(req.ShiftType))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, schedule)
}

// ListSchedules handles GET /api/schedules
func (h *DirectoryHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.service.ListSchedules(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"schedules": schedules})
}

// ListStaffSchedules handles GET /api/staff/{id}/schedules
func (h *DirectoryHandler) ListStaffSchedules(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.service.ListStaffSchedules(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"schedules": schedules})
}
