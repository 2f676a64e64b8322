package repositories

import (
	"context"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// StudentRepository defines the interface for student directory reads
type StudentRepository interface {
	// GetByID retrieves a student by ID
	GetByID(ctx context.Context, id string) (*entities.Student, error)

	// List retrieves all registered students
	List(ctx context.Context) ([]*entities.Student, error)
}

// StaffRepository defines the interface for staff directory reads
type StaffRepository interface {
	// GetByID retrieves a staff member by ID
	GetByID(ctx context.Context, id string) (*entities.Staff, error)

	// List retrieves all staff members
	List(ctx context.Context) ([]*entities.Staff, error)

	// ListByRole retrieves staff members holding the given role
	ListByRole(ctx context.Context, role entities.Role) ([]*entities.Staff, error)
}
