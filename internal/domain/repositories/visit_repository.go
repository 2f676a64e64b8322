package repositories

import (
	"context"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// VisitRepository defines the interface for patient visit operations
type VisitRepository interface {
	// Create creates a new patient visit
	Create(ctx context.Context, visit *entities.PatientVisit) error

	// GetByID retrieves a visit by ID
	GetByID(ctx context.Context, id string) (*entities.PatientVisit, error)

	// Update updates a visit
	Update(ctx context.Context, visit *entities.PatientVisit) error

	// ListByStudent retrieves visits for a student
	ListByStudent(ctx context.Context, studentID string) ([]*entities.PatientVisit, error)

	// List retrieves all visits
	List(ctx context.Context) ([]*entities.PatientVisit, error)
}

// PrescriptionRepository defines the interface for prescription operations
type PrescriptionRepository interface {
	// Create creates a new prescription
	Create(ctx context.Context, prescription *entities.Prescription) error

	// GetByID retrieves a prescription by ID
	GetByID(ctx context.Context, id string) (*entities.Prescription, error)

	// ListByStudent retrieves prescriptions for a student
	ListByStudent(ctx context.Context, studentID string) ([]*entities.Prescription, error)

	// ListByVisit retrieves prescriptions issued during a visit
	ListByVisit(ctx context.Context, visitID string) ([]*entities.Prescription, error)
}
