package handlers

import (
	"context"
	"net/http"

	"github.com/campuscare/clinic-backend/internal/application/services"
	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// VisitService defines the interface for walk-in visit operations
type VisitService interface {
	CheckIn(ctx context.Context, studentID, doctorID, symptoms string) (*entities.PatientVisit, error)
	UpdateVisit(ctx context.Context, visitID string, update services.VisitUpdate) (*entities.PatientVisit, error)
	CloseVisit(ctx context.Context, visitID string) (*entities.PatientVisit, error)
	Prescribe(ctx context.Context, visitID, medicineID, dosage, duration string) (*entities.Prescription, error)
	GetVisit(ctx context.Context, visitID string) (*entities.PatientVisit, error)
	ListVisits(ctx context.Context) ([]*entities.PatientVisit, error)
	ListStudentVisits(ctx context.Context, studentID string) ([]*entities.PatientVisit, error)
	ListVisitPrescriptions(ctx context.Context, visitID string) ([]*entities.Prescription, error)
	ListStudentPrescriptions(ctx context.Context, studentID string) ([]*entities.Prescription, error)
	Summary(ctx context.Context, visitID string) ([]byte, error)
}

// VisitHandler handles walk-in patient visit endpoints
type VisitHandler struct {
	service VisitService
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(service VisitService) *VisitHandler {
	return &VisitHandler{
		service: service,
	}
}

type checkInRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	DoctorID  string `json:"doctor_id" validate:"required"`
	Symptoms  string `json:"symptoms"`
}

type visitUpdateRequest struct {
	Vitals            *entities.Vitals `json:"vitals"`
	Diagnosis         *string          `json:"diagnosis"`
	TreatmentProvided *string          `json:"treatment_provided"`
	FollowupDate      *string          `json:"followup_date"`
}

type prescribeRequest struct {
	MedicineID string `json:"medicine_id" validate:"required"`
	Dosage     string `json:"dosage" validate:"required"`
	Duration   string `json:"duration" validate:"required"`
}

// CheckIn handles POST /api/visits
func (h *VisitHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req checkInRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	visit, err := h.service.CheckIn(r.Context(), req.StudentID, req.DoctorID, req.Symptoms)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, visit)
}

// UpdateVisit handles PATCH /api/visits/{id}
func (h *VisitHandler) UpdateVisit(w http.ResponseWriter, r *http.Request) {
	var req visitUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	visit, err := h.service.UpdateVisit(r.Context(), r.PathValue("id"), services.VisitUpdate{
		Vitals:            req.Vitals,
		Diagnosis:         req.Diagnosis,
		TreatmentProvided: req.TreatmentProvided,
		FollowupDate:      req.FollowupDate,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, visit)
}

// CloseVisit handles POST /api/visits/{id}/close
func (h *VisitHandler) CloseVisit(w http.ResponseWriter, r *http.Request) {
	visit, err := h.service.CloseVisit(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, visit)
}

// Prescribe handles POST /api/visits/{id}/prescriptions
func (h *VisitHandler) Prescribe(w http.ResponseWriter, r *http.Request) {
	var req prescribeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	prescription, err := h.service.Prescribe(r.Context(), r.PathValue("id"), req.MedicineID, req.Dosage, req.Duration)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, prescription)
}

// GetVisit handles GET /api/visits/{id}
func (h *VisitHandler) GetVisit(w http.ResponseWriter, r *http.Request) {
	visit, err := h.service.GetVisit(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, visit)
}

// ListVisits handles GET /api/visits
func (h *VisitHandler) ListVisits(w http.ResponseWriter, r *http.Request) {
	visits, err := h.service.ListVisits(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"visits": visits})
}

// ListStudentVisits handles GET /api/students/{id}/visits
func (h *VisitHandler) ListStudentVisits(w http.ResponseWriter, r *http.Request) {
	visits, err := h.service.ListStudentVisits(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"visits": visits})
}

// ListVisitPrescriptions handles GET /api/visits/{id}/prescriptions
func (h *VisitHandler) ListVisitPrescriptions(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.service.ListVisitPrescriptions(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"prescriptions": prescriptions})
}

// ListStudentPrescriptions handles GET /api/students/{id}/prescriptions
func (h *VisitHandler) ListStudentPrescriptions(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.service.ListStudentPrescriptions(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"prescriptions": prescriptions})
}

// DownloadSummary handles GET /api/visits/{id}/summary
func (h *VisitHandler) DownloadSummary(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	document, err := h.service.Summary(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithPDF(w, "visit-"+id+".pdf", document)
}
