package services

import (
	"context"
	"fmt"
	"time"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

// BedService manages ward bed occupancy
type BedService struct {
	beds repositories.BedRepository
}

// NewBedService creates a new bed service
func NewBedService(beds repositories.BedRepository) *BedService {
	return &BedService{beds: beds}
}

// ListBeds retrieves all beds ordered by bed number
func (s *BedService) ListBeds(ctx context.Context) ([]*entities.Bed, error) {
	return s.beds.List(ctx)
}

// Assign checks a student into an available bed
func (s *BedService) Assign(ctx context.Context, bedID, studentID, reason, nurseNotes string) (*entities.Bed, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}

	bed, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if bed.Status != entities.BedStatusAvailable {
		return nil, apperrors.NewConflictError(fmt.Sprintf("bed %d is %s", bed.BedNumber, bed.Status))
	}

	now := time.Now().UTC()
	bed.Status = entities.BedStatusOccupied
	bed.AssignedStudentID = &studentID
	bed.CheckinTime = &now
	bed.CheckoutTime = nil
	bed.Reason = reason
	bed.NurseNotes = nurseNotes

	if err := s.beds.Update(ctx, bed); err != nil {
		return nil, err
	}
	return bed, nil
}

// Release checks the student out; the bed needs cleaning before reuse
func (s *BedService) Release(ctx context.Context, bedID string) (*entities.Bed, error) {
	bed, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if bed.Status != entities.BedStatusOccupied {
		return nil, apperrors.NewConflictError(fmt.Sprintf("bed %d is not occupied", bed.BedNumber))
	}

	now := time.Now().UTC()
	bed.Status = entities.BedStatusCleaningNeeded
	bed.CheckoutTime = &now

	if err := s.beds.Update(ctx, bed); err != nil {
		return nil, err
	}
	return bed, nil
}

// MarkCleaned returns a cleaned bed to service
func (s *BedService) MarkCleaned(ctx context.Context, bedID string) (*entities.Bed, error) {
	bed, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return nil, err
	}
	if bed.Status != entities.BedStatusCleaningNeeded {
		return nil, apperrors.NewConflictError(fmt.Sprintf("bed %d does not need cleaning", bed.BedNumber))
	}

	bed.Status = entities.BedStatusAvailable
	bed.AssignedStudentID = nil
	bed.CheckinTime = nil
	bed.CheckoutTime = nil
	bed.Reason = ""
	bed.NurseNotes = ""

	if err := s.beds.Update(ctx, bed); err != nil {
		return nil, err
	}
	return bed, nil
}

// UpdateNotes updates the nurse notes on an occupied bed
func (s *BedService) UpdateNotes(ctx context.Context, bedID, nurseNotes string) (*entities.Bed, error) {
	bed, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return nil, err
	}

	bed.NurseNotes = nurseNotes
	if err := s.beds.Update(ctx, bed); err != nil {
		return nil, err
	}
	return bed, nil
}
