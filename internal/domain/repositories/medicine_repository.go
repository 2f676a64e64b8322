package repositories

import (
	"context"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// MedicineInventoryRepository defines the interface for inventory operations
type MedicineInventoryRepository interface {
	// Create adds a new item to the inventory
	Create(ctx context.Context, item *entities.MedicineItem) error

	// GetByID retrieves an inventory item by ID
	GetByID(ctx context.Context, id string) (*entities.MedicineItem, error)

	// Update updates an inventory item
	Update(ctx context.Context, item *entities.MedicineItem) error

	// AdjustQuantity atomically adds delta (negative to dispense) to an
	// item's quantity and returns the updated item
	AdjustQuantity(ctx context.Context, id string, delta int) (*entities.MedicineItem, error)

	// List retrieves the full inventory
	List(ctx context.Context) ([]*entities.MedicineItem, error)
}

// MedicineRequestRepository defines the interface for OTC request operations
type MedicineRequestRepository interface {
	// Create creates a new medicine request
	Create(ctx context.Context, request *entities.MedicineRequest) error

	// GetByID retrieves a medicine request by ID
	GetByID(ctx context.Context, id string) (*entities.MedicineRequest, error)

	// Update updates a medicine request
	Update(ctx context.Context, request *entities.MedicineRequest) error

	// ListByStudent retrieves requests made by a student
	ListByStudent(ctx context.Context, studentID string) ([]*entities.MedicineRequest, error)

	// List retrieves all medicine requests
	List(ctx context.Context) ([]*entities.MedicineRequest, error)
}
