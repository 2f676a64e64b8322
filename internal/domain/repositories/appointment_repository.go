package repositories

import (
	"context"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	// CreateIfSlotFree inserts the appointment unless a non-cancelled
	// appointment already occupies (doctor, date, time). The check and the
	// insert run in one transaction so concurrent bookings of the same slot
	// cannot both commit; the loser gets a CONFLICT AppError.
	CreateIfSlotFree(ctx context.Context, appointment *entities.Appointment) error

	// GetByID retrieves an appointment by ID
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)

	// UpdateStatus moves an appointment to the given status
	UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error

	// ListByStudent retrieves appointments for a student
	ListByStudent(ctx context.Context, studentID string, filter AppointmentFilter) ([]*entities.Appointment, error)

	// ListActiveByDoctorDate retrieves the non-cancelled appointments for a
	// doctor on a calendar day
	ListActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]*entities.Appointment, error)

	// CountActiveAt counts non-cancelled appointments at an exact
	// (doctor, date, time) slot
	CountActiveAt(ctx context.Context, doctorID, date, tm string) (int, error)

	// List retrieves all appointments matching the filter
	List(ctx context.Context, filter AppointmentFilter) ([]*entities.Appointment, error)
}

// AppointmentFilter defines filters for listing appointments
type AppointmentFilter struct {
	Status entities.AppointmentStatus
	Date   string
	Limit  int
	Offset int
}
