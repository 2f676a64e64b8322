package repositories

import (
	"context"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// SickLeaveRepository defines the interface for sick-leave operations
type SickLeaveRepository interface {
	// Create creates a new sick-leave request
	Create(ctx context.Context, request *entities.SickLeaveRequest) error

	// GetByID retrieves a sick-leave request by ID
	GetByID(ctx context.Context, id string) (*entities.SickLeaveRequest, error)

	// Update updates a sick-leave request
	Update(ctx context.Context, request *entities.SickLeaveRequest) error

	// ListByStudent retrieves requests made by a student
	ListByStudent(ctx context.Context, studentID string) ([]*entities.SickLeaveRequest, error)

	// List retrieves all sick-leave requests
	List(ctx context.Context) ([]*entities.SickLeaveRequest, error)
}
