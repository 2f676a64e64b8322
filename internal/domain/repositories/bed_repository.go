package repositories

import (
	"context"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// BedRepository defines the interface for bed occupancy operations
type BedRepository interface {
	// List retrieves all beds ordered by bed number
	List(ctx context.Context) ([]*entities.Bed, error)

	// GetByID retrieves a bed by ID
	GetByID(ctx context.Context, id string) (*entities.Bed, error)

	// Update updates a bed's occupancy state
	Update(ctx context.Context, bed *entities.Bed) error
}
