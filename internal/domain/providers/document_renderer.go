package providers

import (
	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// DocumentRenderer renders printable clinic documents
type DocumentRenderer interface {
	// LeaveCertificate renders a medical certificate for an approved
	// sick-leave request
	LeaveCertificate(student *entities.Student, leave *entities.SickLeaveRequest) ([]byte, error)

	// VisitSummary renders a summary of a patient visit including the
	// prescriptions issued during it
	VisitSummary(student *entities.Student, visit *entities.PatientVisit, prescriptions []*entities.Prescription) ([]byte, error)
}
