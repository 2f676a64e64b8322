package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

// VisitUpdate carries the fields a doctor may change on an open visit.
// Nil fields are left untouched.
type VisitUpdate struct {
	Vitals            *entities.Vitals
	Diagnosis         *string
	TreatmentProvided *string
	FollowupDate      *string
}

// VisitService records walk-in patient visits and the prescriptions
// issued during them.
type VisitService struct {
	visits        repositories.VisitRepository
	prescriptions repositories.PrescriptionRepository
	students      repositories.StudentRepository
	inventory     *InventoryService
	renderer      providers.DocumentRenderer
}

// NewVisitService creates a new visit service
func NewVisitService(
	visits repositories.VisitRepository,
	prescriptions repositories.PrescriptionRepository,
	students repositories.StudentRepository,
	inventory *InventoryService,
	renderer providers.DocumentRenderer,
) *VisitService {
	return &VisitService{
		visits:        visits,
		prescriptions: prescriptions,
		students:      students,
		inventory:     inventory,
		renderer:      renderer,
	}
}

// CheckIn opens a visit for a walk-in patient
func (s *VisitService) CheckIn(ctx context.Context, studentID, doctorID, symptoms string) (*entities.PatientVisit, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}
	if doctorID == "" {
		return nil, apperrors.NewValidationError("doctor id is required")
	}

	visit := &entities.PatientVisit{
		ID:          uuid.New().String(),
		StudentID:   studentID,
		DoctorID:    doctorID,
		CheckinTime: time.Now().UTC(),
		Symptoms:    symptoms,
		Status:      entities.VisitStatusOpen,
	}
	if err := s.visits.Create(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// UpdateVisit applies the doctor's notes to an open visit
func (s *VisitService) UpdateVisit(ctx context.Context, visitID string, update VisitUpdate) (*entities.PatientVisit, error) {
	visit, err := s.openVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}

	if update.Vitals != nil {
		visit.Vitals = *update.Vitals
	}
	if update.Diagnosis != nil {
		visit.Diagnosis = *update.Diagnosis
	}
	if update.TreatmentProvided != nil {
		visit.TreatmentProvided = *update.TreatmentProvided
	}
	if update.FollowupDate != nil {
		if *update.FollowupDate != "" {
			if _, err := time.Parse(dateLayout, *update.FollowupDate); err != nil {
				return nil, apperrors.NewValidationError("followup date must be in YYYY-MM-DD format")
			}
		}
		visit.FollowupDate = *update.FollowupDate
	}

	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// CloseVisit closes an open visit
func (s *VisitService) CloseVisit(ctx context.Context, visitID string) (*entities.PatientVisit, error) {
	visit, err := s.openVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}

	visit.Status = entities.VisitStatusClosed
	if err := s.visits.Update(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// Prescribe issues a prescription during an open visit and dispenses one
// unit of the medicine from the inventory.
func (s *VisitService) Prescribe(ctx context.Context, visitID, medicineID, dosage, duration string) (*entities.Prescription, error) {
	visit, err := s.openVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}

	item, err := s.inventory.Dispense(ctx, medicineID)
	if err != nil {
		return nil, err
	}

	prescription := &entities.Prescription{
		ID:         uuid.New().String(),
		VisitID:    visit.ID,
		StudentID:  visit.StudentID,
		MedicineID: item.ID,
		DoctorID:   visit.DoctorID,
		Dosage:     dosage,
		Duration:   duration,
		DateIssued: time.Now().UTC().Format(dateLayout),
	}
	if err := s.prescriptions.Create(ctx, prescription); err != nil {
		return nil, err
	}
	return prescription, nil
}

// GetVisit retrieves a visit by id
func (s *VisitService) GetVisit(ctx context.Context, visitID string) (*entities.PatientVisit, error) {
	return s.visits.GetByID(ctx, visitID)
}

// ListVisits retrieves all visits
func (s *VisitService) ListVisits(ctx context.Context) ([]*entities.PatientVisit, error) {
	return s.visits.List(ctx)
}

// ListStudentVisits retrieves a student's visit history
func (s *VisitService) ListStudentVisits(ctx context.Context, studentID string) ([]*entities.PatientVisit, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}
	return s.visits.ListByStudent(ctx, studentID)
}

// ListVisitPrescriptions retrieves the prescriptions issued during a visit
func (s *VisitService) ListVisitPrescriptions(ctx context.Context, visitID string) ([]*entities.Prescription, error) {
	return s.prescriptions.ListByVisit(ctx, visitID)
}

// ListStudentPrescriptions retrieves a student's prescription history
func (s *VisitService) ListStudentPrescriptions(ctx context.Context, studentID string) ([]*entities.Prescription, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}
	return s.prescriptions.ListByStudent(ctx, studentID)
}

// Summary renders the printable summary PDF for a visit
func (s *VisitService) Summary(ctx context.Context, visitID string) ([]byte, error) {
	visit, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	student, err := s.students.GetByID(ctx, visit.StudentID)
	if err != nil {
		return nil, err
	}
	prescriptions, err := s.prescriptions.ListByVisit(ctx, visitID)
	if err != nil {
		return nil, err
	}
	return s.renderer.VisitSummary(student, visit, prescriptions)
}

func (s *VisitService) openVisit(ctx context.Context, visitID string) (*entities.PatientVisit, error) {
	visit, err := s.visits.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if visit.Status != entities.VisitStatusOpen {
		return nil, apperrors.NewConflictError(fmt.Sprintf("visit %s is closed", visit.ID))
	}
	return visit, nil
}
