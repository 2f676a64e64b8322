package repositories

import (
	"context"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// AvailabilityRepository defines the interface for availability window operations
type AvailabilityRepository interface {
	// Create creates a new availability window
	Create(ctx context.Context, window *entities.AvailabilityWindow) error

	// GetByID retrieves an availability window by ID
	GetByID(ctx context.Context, id string) (*entities.AvailabilityWindow, error)

	// Update updates an availability window
	Update(ctx context.Context, window *entities.AvailabilityWindow) error

	// Delete removes an availability window
	Delete(ctx context.Context, id string) error

	// ListByDoctor retrieves all windows declared by a doctor
	ListByDoctor(ctx context.Context, doctorID string) ([]*entities.AvailabilityWindow, error)

	// ListByDoctorDate retrieves a doctor's windows for a calendar day,
	// in any status
	ListByDoctorDate(ctx context.Context, doctorID, date string) ([]*entities.AvailabilityWindow, error)
}
