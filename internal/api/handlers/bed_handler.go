package handlers

import (
	"context"
	"net/http"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// BedService defines the interface for observation bed operations
type BedService interface {
	ListBeds(ctx context.Context) ([]*entities.Bed, error)
	Assign(ctx context.Context, bedID, studentID, reason, nurseNotes string) (*entities.Bed, error)
	Release(ctx context.Context, bedID string) (*entities.Bed, error)
	MarkCleaned(ctx context.Context, bedID string) (*entities.Bed, error)
	UpdateNotes(ctx context.Context, bedID, nurseNotes string) (*entities.Bed, error)
}

// BedHandler handles observation bed requests
type BedHandler struct {
	service BedService
}

// NewBedHandler creates a new bed handler
func NewBedHandler(service BedService) *BedHandler {
	return &BedHandler{
		service: service,
	}
}

type assignBedRequest struct {
	StudentID  string `json:"student_id" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
	NurseNotes string `json:"nurse_notes"`
}

type bedNotesRequest struct {
	NurseNotes string `json:"nurse_notes" validate:"required"`
}

// ListBeds handles GET /api/beds
func (h *BedHandler) ListBeds(w http.ResponseWriter, r *http.Request) {
	beds, err := h.service.ListBeds(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"beds": beds})
}

// AssignBed handles POST /api/beds/{id}/assign
func (h *BedHandler) AssignBed(w http.ResponseWriter, r *http.Request) {
	var req assignBedRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	bed, err := h.service.Assign(r.Context(), r.PathValue("id"), req.StudentID, req.Reason, req.NurseNotes)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bed)
}

// ReleaseBed handles POST /api/beds/{id}/release
func (h *BedHandler) ReleaseBed(w http.ResponseWriter, r *http.Request) {
	bed, err := h.service.Release(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bed)
}

// MarkBedCleaned handles POST /api/beds/{id}/clean
func (h *BedHandler) MarkBedCleaned(w http.ResponseWriter, r *http.Request) {
	bed, err := h.service.MarkCleaned(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bed)
}

// UpdateBedNotes handles PATCH /api/beds/{id}/notes
func (h *BedHandler) UpdateBedNotes(w http.ResponseWriter, r *http.Request) {
	var req bedNotesRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	bed, err := h.service.UpdateNotes(r.Context(), r.PathValue("id"), req.NurseNotes)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, bed)
}
