package handlers

import (
	"context"
	"net/http"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// SickLeaveService defines the interface for sick leave operations
type SickLeaveService interface {
	Request(ctx context.Context, studentID, reason, startDate, endDate string) (*entities.SickLeaveRequest, error)
	Review(ctx context.Context, requestID string, approve bool, remarks string) (*entities.SickLeaveRequest, error)
	List(ctx context.Context) ([]*entities.SickLeaveRequest, error)
	ListByStudent(ctx context.Context, studentID string) ([]*entities.SickLeaveRequest, error)
	Certificate(ctx context.Context, requestID string) ([]byte, error)
}

// SickLeaveHandler handles sick leave requests and certificates
type SickLeaveHandler struct {
	service SickLeaveService
}

// NewSickLeaveHandler creates a new sick leave handler
func NewSickLeaveHandler(service SickLeaveService) *SickLeaveHandler {
	return &SickLeaveHandler{
		service: service,
	}
}

type sickLeaveRequestPayload struct {
	StudentID string `json:"student_id" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type sickLeaveReviewPayload struct {
	Approve bool   `json:"approve"`
	Remarks string `json:"remarks"`
}

// RequestLeave handles POST /api/sick-leaves
func (h *SickLeaveHandler) RequestLeave(w http.ResponseWriter, r *http.Request) {
	var req sickLeaveRequestPayload
	if !decodeAndValidate(w, r, &req) {
		return
	}

	leave, err := h.service.Request(r.Context(), req.StudentID, req.Reason, req.StartDate, req.EndDate)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, leave)
}

// ReviewLeave handles POST /api/sick-leaves/{id}/review
func (h *SickLeaveHandler) ReviewLeave(w http.ResponseWriter, r *http.Request) {
	var req sickLeaveReviewPayload
	if !decodeAndValidate(w, r, &req) {
		return
	}

	leave, err := h.service.Review(r.Context(), r.PathValue("id"), req.Approve, req.Remarks)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, leave)
}

// ListLeaves handles GET /api/sick-leaves
func (h *SickLeaveHandler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"requests": leaves})
}

// ListStudentLeaves handles GET /api/students/{id}/sick-leaves
func (h *SickLeaveHandler) ListStudentLeaves(w http.ResponseWriter, r *http.Request) {
	leaves, err := h.service.ListByStudent(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"requests": leaves})
}

// DownloadCertificate handles GET /api/sick-leaves/{id}/certificate
func (h *SickLeaveHandler) DownloadCertificate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	document, err := h.service.Certificate(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithPDF(w, "sick-leave-"+id+".pdf", document)
}
