package handlers

import (
	"context"
	"net/http"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// InventoryService defines the interface for medicine inventory operations
type InventoryService interface {
	ListItems(ctx context.Context) ([]*entities.MedicineItem, error)
	AddItem(ctx context.Context, item *entities.MedicineItem) (*entities.MedicineItem, error)
	RestockItem(ctx context.Context, id string, units int) (*entities.MedicineItem, error)
	RequestMedicine(ctx context.Context, studentID, medicineID, reason string) (*entities.MedicineRequest, error)
	ReviewRequest(ctx context.Context, requestID string, approve bool) (*entities.MedicineRequest, error)
	ListRequests(ctx context.Context) ([]*entities.MedicineRequest, error)
	ListStudentRequests(ctx context.Context, studentID string) ([]*entities.MedicineRequest, error)
}

// InventoryHandler handles medicine inventory and request endpoints
type InventoryHandler struct {
	service InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service: service,
	}
}

type addMedicineRequest struct {
	Name       string `json:"name" validate:"required"`
	Quantity   int    `json:"quantity" validate:"gte=0"`
	ExpiryDate string `json:"expiry_date"`
	Category   string `json:"category"`
	Threshold  int    `json:"threshold" validate:"gte=0"`
}

type restockRequest struct {
	Units int `json:"units" validate:"required,gt=0"`
}

type medicineRequestPayload struct {
	StudentID  string `json:"student_id" validate:"required"`
	MedicineID string `json:"medicine_id" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

type reviewRequestPayload struct {
	Approve bool `json:"approve"`
}

// ListMedicines handles GET /api/medicines
func (h *InventoryHandler) ListMedicines(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListItems(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"medicines": items})
}

// AddMedicine handles POST /api/medicines
func (h *InventoryHandler) AddMedicine(w http.ResponseWriter, r *http.Request) {
	var req addMedicineRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.service.AddItem(r.Context(), &entities.MedicineItem{
		Name:       req.Name,
		Quantity:   req.Quantity,
		ExpiryDate: req.ExpiryDate,
		Category:   entities.MedicineCategory(req.Category),
		Threshold:  req.Threshold,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, item)
}

// RestockMedicine handles POST /api/medicines/{id}/restock
func (h *InventoryHandler) RestockMedicine(w http.ResponseWriter, r *http.Request) {
	var req restockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	item, err := h.service.RestockItem(r.Context(), r.PathValue("id"), req.Units)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, item)
}

// RequestMedicine handles POST /api/medicine-requests
func (h *InventoryHandler) RequestMedicine(w http.ResponseWriter, r *http.Request) {
	var req medicineRequestPayload
	if !decodeAndValidate(w, r, &req) {
		return
	}

	request, err := h.service.RequestMedicine(r.Context(), req.StudentID, req.MedicineID, req.Reason)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, request)
}

// ReviewMedicineRequest handles POST /api/medicine-requests/{id}/review
func (h *InventoryHandler) ReviewMedicineRequest(w http.ResponseWriter, r *http.Request) {
	var req reviewRequestPayload
	if !decodeAndValidate(w, r, &req) {
		return
	}

	request, err := h.service.ReviewRequest(r.Context(), r.PathValue("id"), req.Approve)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, request)
}

// ListMedicineRequests handles GET /api/medicine-requests
func (h *InventoryHandler) ListMedicineRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListRequests(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}

// ListStudentMedicineRequests handles GET /api/students/{id}/medicine-requests
func (h *InventoryHandler) ListStudentMedicineRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.service.ListStudentRequests(r.Context(), r.PathValue("id"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"requests": requests})
}
