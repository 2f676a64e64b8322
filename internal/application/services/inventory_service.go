package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

// InventoryService manages the medicine stock and student requests for
// over-the-counter medicines.
type InventoryService struct {
	items         repositories.MedicineInventoryRepository
	requests      repositories.MedicineRequestRepository
	notifications *NotificationService
	eventBus      providers.EventBus
}

// NewInventoryService creates a new inventory service
func NewInventoryService(
	items repositories.MedicineInventoryRepository,
	requests repositories.MedicineRequestRepository,
	notifications *NotificationService,
	eventBus providers.EventBus,
) *InventoryService {
	return &InventoryService{
		items:         items,
		requests:      requests,
		notifications: notifications,
		eventBus:      eventBus,
	}
}

// ListItems retrieves the full inventory
func (s *InventoryService) ListItems(ctx context.Context) ([]*entities.MedicineItem, error) {
	return s.items.List(ctx)
}

// AddItem registers a new medicine in the inventory
func (s *InventoryService) AddItem(ctx context.Context, item *entities.MedicineItem) (*entities.MedicineItem, error) {
	if item.Name == "" {
		return nil, apperrors.NewValidationError("medicine name is required")
	}
	if item.Quantity < 0 {
		return nil, apperrors.NewValidationError("quantity cannot be negative")
	}

	item.ID = uuid.New().String()
	item.UpdatedAt = time.Now().UTC()
	if item.Category == "" {
		item.Category = entities.MedicineCategoryOther
	}

	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// RestockItem adds units to an existing item's quantity
func (s *InventoryService) RestockItem(ctx context.Context, id string, units int) (*entities.MedicineItem, error) {
	if units <= 0 {
		return nil, apperrors.NewValidationError("restock units must be positive")
	}
	return s.items.AdjustQuantity(ctx, id, units)
}

// Dispense removes a single unit of the medicine from stock. When the
// remaining quantity drops below the item's threshold, the admins are
// alerted and a low-stock event is published.
func (s *InventoryService) Dispense(ctx context.Context, medicineID string) (*entities.MedicineItem, error) {
	item, err := s.items.GetByID(ctx, medicineID)
	if err != nil {
		return nil, err
	}
	if item.Quantity <= 0 {
		return nil, apperrors.NewConflictError(fmt.Sprintf("%s is out of stock", item.Name))
	}

	updated, err := s.items.AdjustQuantity(ctx, medicineID, -1)
	if err != nil {
		return nil, err
	}

	if updated.BelowThreshold() {
		s.alertLowStock(ctx, updated)
	}
	return updated, nil
}

// RequestMedicine files a student's over-the-counter request and alerts
// the clinic staff that one is pending review.
func (s *InventoryService) RequestMedicine(ctx context.Context, studentID, medicineID, reason string) (*entities.MedicineRequest, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}

	item, err := s.items.GetByID(ctx, medicineID)
	if err != nil {
		return nil, err
	}

	request := &entities.MedicineRequest{
		ID:         uuid.New().String(),
		StudentID:  studentID,
		MedicineID: medicineID,
		Reason:     reason,
		Status:     entities.MedicineRequestStatusRequested,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	s.notify(ctx, entities.ForRole(entities.TargetStaff),
		"New Medicine Request",
		fmt.Sprintf("A student has requested %s.", item.Name))

	return request, nil
}

// ReviewRequest approves or rejects a pending medicine request. Approval
// stamps the issue date and dispenses one unit from stock; a request that
// has already been reviewed cannot be reviewed again.
func (s *InventoryService) ReviewRequest(ctx context.Context, requestID string, approve bool) (*entities.MedicineRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != entities.MedicineRequestStatusRequested {
		return nil, apperrors.NewConflictError(fmt.Sprintf("request has already been %s", request.Status))
	}

	if !approve {
		request.Status = entities.MedicineRequestStatusRejected
		if err := s.requests.Update(ctx, request); err != nil {
			return nil, err
		}
		s.notify(ctx, entities.ForUser(request.StudentID),
			"Medicine Request Rejected",
			"Your medicine request was not approved. Please visit the clinic if symptoms persist.")
		return request, nil
	}

	item, err := s.Dispense(ctx, request.MedicineID)
	if err != nil {
		return nil, err
	}

	request.Status = entities.MedicineRequestStatusApproved
	request.IssuedDate = time.Now().UTC().Format(dateLayout)
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}

	s.notify(ctx, entities.ForUser(request.StudentID),
		"Medicine Request Approved",
		fmt.Sprintf("Your request for %s has been approved. Please collect it at the clinic counter.", item.Name))

	return request, nil
}

// ListRequests retrieves all medicine requests
func (s *InventoryService) ListRequests(ctx context.Context) ([]*entities.MedicineRequest, error) {
	return s.requests.List(ctx)
}

// ListStudentRequests retrieves the requests made by a student
func (s *InventoryService) ListStudentRequests(ctx context.Context, studentID string) ([]*entities.MedicineRequest, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}
	return s.requests.ListByStudent(ctx, studentID)
}

func (s *InventoryService) alertLowStock(ctx context.Context, item *entities.MedicineItem) {
	s.notify(ctx, entities.ForRole(entities.TargetAdmins),
		"Low Stock Alert",
		fmt.Sprintf("%s is running low (%d left, threshold %d).", item.Name, item.Quantity, item.Threshold))

	if s.eventBus == nil {
		return
	}
	event := &entities.ClinicEvent{
		ID:         uuid.New().String(),
		Type:       entities.EventLowStock,
		MedicineID: item.ID,
		Detail:     fmt.Sprintf("%s stock is at %d", item.Name, item.Quantity),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.eventBus.Publish(ctx, providers.EventChannelInventory, event); err != nil {
		log.Warn().Err(err).Str("medicine_id", item.ID).Msg("failed to publish low stock event")
	}
}

func (s *InventoryService) notify(ctx context.Context, recipient entities.Recipient, title, message string) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Notify(ctx, recipient, title, message); err != nil {
		log.Warn().Err(err).Str("title", title).Msg("failed to record inventory notification")
	}
}
