package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

// DirectoryService serves the student and staff directories and the
// admin-managed shift roster.
type DirectoryService struct {
	students  repositories.StudentRepository
	staff     repositories.StaffRepository
	schedules repositories.ScheduleRepository
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(
	students repositories.StudentRepository,
	staff repositories.StaffRepository,
	schedules repositories.ScheduleRepository,
) *DirectoryService {
	return &DirectoryService{
		students:  students,
		staff:     staff,
		schedules: schedules,
	}
}

// GetStudent retrieves a student's profile
func (s *DirectoryService) GetStudent(ctx context.Context, id string) (*entities.Student, error) {
	return s.students.GetByID(ctx, id)
}

// ListStudents retrieves all registered students
func (s *DirectoryService) ListStudents(ctx context.Context) ([]*entities.Student, error) {
	return s.students.List(ctx)
}

// GetStaff retrieves a staff member's profile
func (s *DirectoryService) GetStaff(ctx context.Context, id string) (*entities.Staff, error) {
	return s.staff.GetByID(ctx, id)
}

// ListStaff retrieves all staff members
func (s *DirectoryService) ListStaff(ctx context.Context) ([]*entities.Staff, error) {
	return s.staff.List(ctx)
}

// ListDoctors retrieves the staff members students can book with
func (s *DirectoryService) ListDoctors(ctx context.Context) ([]*entities.Staff, error) {
	return s.staff.ListByRole(ctx, entities.RoleDoctor)
}

// AddSchedule creates a shift assignment for a staff member
func (s *DirectoryService) AddSchedule(ctx context.Context, staffID, date, startTime, endTime string, shift entities.ShiftType) (*entities.StaffSchedule, error) {
	if _, err := s.staff.GetByID(ctx, staffID); err != nil {
		return nil, err
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperrors.NewValidationError("date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(clockLayout, startTime); err != nil {
		return nil, apperrors.NewValidationError("start time must be in HH:MM format")
	}
	if _, err := time.Parse(clockLayout, endTime); err != nil {
		return nil, apperrors.NewValidationError("end time must be in HH:MM format")
	}
	if startTime >= endTime {
		return nil, apperrors.NewValidationError("shift must start before it ends")
	}

	schedule := &entities.StaffSchedule{
		ID:        uuid.New().String(),
		StaffID:   staffID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		ShiftType: shift,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// ListSchedules retrieves the full shift roster
func (s *DirectoryService) ListSchedules(ctx context.Context) ([]*entities.StaffSchedule, error) {
	return s.schedules.List(ctx)
}

// ListStaffSchedules retrieves one staff member's shifts
func (s *DirectoryService) ListStaffSchedules(ctx context.Context, staffID string) ([]*entities.StaffSchedule, error) {
	if staffID == "" {
		return nil, apperrors.NewValidationError("staff id is required")
	}
	return s.schedules.ListByStaff(ctx, staffID)
}
