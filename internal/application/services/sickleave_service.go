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

// SickLeaveService handles sick-leave requests, their review by a doctor
// and the export of medical certificates for approved ones.
type SickLeaveService struct {
	leaves        repositories.SickLeaveRepository
	students      repositories.StudentRepository
	renderer      providers.DocumentRenderer
	notifications *NotificationService
}

// NewSickLeaveService creates a new sick-leave service
func NewSickLeaveService(
	leaves repositories.SickLeaveRepository,
	students repositories.StudentRepository,
	renderer providers.DocumentRenderer,
	notifications *NotificationService,
) *SickLeaveService {
	return &SickLeaveService{
		leaves:        leaves,
		students:      students,
		renderer:      renderer,
		notifications: notifications,
	}
}

// Request files a student's sick-leave request and alerts the doctors
// that one is pending review.
func (s *SickLeaveService) Request(ctx context.Context, studentID, reason, startDate, endDate string) (*entities.SickLeaveRequest, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}
	if reason == "" {
		return nil, apperrors.NewValidationError("a reason is required")
	}
	if _, err := time.Parse(dateLayout, startDate); err != nil {
		return nil, apperrors.NewValidationError("start date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(dateLayout, endDate); err != nil {
		return nil, apperrors.NewValidationError("end date must be in YYYY-MM-DD format")
	}
	if endDate < startDate {
		return nil, apperrors.NewValidationError("end date cannot be before start date")
	}

	request := &entities.SickLeaveRequest{
		ID:        uuid.New().String(),
		StudentID: studentID,
		Reason:    reason,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    entities.SickLeaveStatusSubmitted,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.leaves.Create(ctx, request); err != nil {
		return nil, err
	}

	s.notify(ctx, entities.ForRole(entities.TargetDoctors),
		"New Sick Leave Request",
		fmt.Sprintf("A sick leave request for %s to %s is awaiting review.", startDate, endDate))

	return request, nil
}

// Review approves or rejects a submitted request and records the
// reviewing doctor's remarks. Reviewed requests are immutable.
func (s *SickLeaveService) Review(ctx context.Context, requestID string, approve bool, remarks string) (*entities.SickLeaveRequest, error) {
	request, err := s.leaves.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != entities.SickLeaveStatusSubmitted {
		return nil, apperrors.NewConflictError(fmt.Sprintf("request has already been %s", request.Status))
	}

	if approve {
		request.Status = entities.SickLeaveStatusApproved
	} else {
		request.Status = entities.SickLeaveStatusRejected
	}
	request.DoctorRemarks = remarks
	if err := s.leaves.Update(ctx, request); err != nil {
		return nil, err
	}

	s.notify(ctx, entities.ForUser(request.StudentID),
		fmt.Sprintf("Sick Leave %s", request.Status),
		fmt.Sprintf("Your sick leave request for %s to %s has been %s.",
			request.StartDate, request.EndDate, request.Status))

	return request, nil
}

// ListByStudent retrieves the sick-leave requests made by a student
func (s *SickLeaveService) ListByStudent(ctx context.Context, studentID string) ([]*entities.SickLeaveRequest, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}
	return s.leaves.ListByStudent(ctx, studentID)
}

// List retrieves all sick-leave requests
func (s *SickLeaveService) List(ctx context.Context) ([]*entities.SickLeaveRequest, error) {
	return s.leaves.List(ctx)
}

// Certificate renders the medical certificate PDF for an approved
// request. Requests in any other state have no certificate.
func (s *SickLeaveService) Certificate(ctx context.Context, requestID string) ([]byte, error) {
	request, err := s.leaves.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != entities.SickLeaveStatusApproved {
		return nil, apperrors.NewConflictError("only approved requests have a certificate")
	}

	student, err := s.students.GetByID(ctx, request.StudentID)
	if err != nil {
		return nil, err
	}
	return s.renderer.LeaveCertificate(student, request)
}

func (s *SickLeaveService) notify(ctx context.Context, recipient entities.Recipient, title, message string) {
	if s.notifications == nil {
		return
	}
	if err := s.notifications.Notify(ctx, recipient, title, message); err != nil {
		log.Warn().Err(err).Str("title", title).Msg("failed to record sick leave notification")
	}
}
