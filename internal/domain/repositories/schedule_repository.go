package repositories

import (
	"context"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// ScheduleRepository defines the interface for staff schedule operations
type ScheduleRepository interface {
	// Create creates a new schedule entry
	Create(ctx context.Context, schedule *entities.StaffSchedule) error

	// List retrieves all schedule entries
	List(ctx context.Context) ([]*entities.StaffSchedule, error)

	// ListByStaff retrieves schedule entries for a staff member
	ListByStaff(ctx context.Context, staffID string) ([]*entities.StaffSchedule, error)
}

// SymptomCheckRepository defines the interface for triage audit records
type SymptomCheckRepository interface {
	// Create appends an immutable symptom-check audit record
	Create(ctx context.Context, check *entities.SymptomCheck) error

	// ListByStudent retrieves the audit records for a student
	ListByStudent(ctx context.Context, studentID string) ([]*entities.SymptomCheck, error)
}
