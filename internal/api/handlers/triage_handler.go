package handlers

import (
	"context"
	"net/http"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// TriageService defines the interface for symptom analysis operations
type TriageService interface {
	Analyze(ctx context.Context, studentID string, symptoms []string) (*entities.SymptomCheck, error)
	ListStudentChecks(ctx context.Context, studentID string) ([]*entities.SymptomCheck, error)
}

// TriageHandler handles symptom check requests
type TriageHandler struct {
	service TriageService
}

// NewTriageHandler creates a new triage handler
func NewTriageHandler(service TriageService) *TriageHandler {
	return &TriageHandler{
		service: service,
	}
}

type symptomCheckRequest struct {
	StudentID string   `json:"student_id" validate:"required"`
	Symptoms  []string `json:"symptoms" validate:"required,min=1"`
}

// AnalyzeSymptoms handles POST /api/symptom-checks
func (h *TriageHandler) AnalyzeSymptoms(w http.ResponseWriter, r *http.Request) {
	var req symptomCheckRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	check, err := h.service.Analyze(r.Context(), req.StudentID, req.Symptoms)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, check)
}

// ListStudentChecks handles GET /api/students/{id}/symptom-checks
func (h *TriageHandler) ListStudentChecks(w http.ResponseWriter, r *http.Request) {
	checks, err := h.service.ListStudentChecks(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"checks": checks})
}
