package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/campuscare/clinic-backend/internal/application/services"
	"github.com/campuscare/clinic-backend/internal/domain/entities"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

func newVisitService(visits *MockVisitRepository, prescriptions *MockPrescriptionRepository, students *MockStudentRepository, items *MockMedicineInventoryRepository, renderer *MockDocumentRenderer) *services.VisitService {
	inventory := services.NewInventoryService(items, new(MockMedicineRequestRepository), nil, nil)
	return services.NewVisitService(visits, prescriptions, students, inventory, renderer)
}

func TestVisitService_CheckIn(t *testing.T) {
	t.Run("opens a visit with a check-in time", func(t *testing.T) {
		visits := new(MockVisitRepository)
		service := newVisitService(visits, new(MockPrescriptionRepository), new(MockStudentRepository), new(MockMedicineInventoryRepository), new(MockDocumentRenderer))

		visits.On("Create", mock.Anything, mock.MatchedBy(func(v *entities.PatientVisit) bool {
			return v.Status == entities.VisitStatusOpen && !v.CheckinTime.IsZero()
		})).Return(nil)

		visit, err := service.CheckIn(context.Background(), "stu-1", "doc-1", "stomach ache")

		assert.NoError(t, err)
		assert.Equal(t, entities.VisitStatusOpen, visit.Status)
		visits.AssertExpectations(t)
	})
}

func TestVisitService_UpdateVisit(t *testing.T) {
	t.Run("applies only the provided fields", func(t *testing.T) {
		visits := new(MockVisitRepository)
		service := newVisitService(visits, new(MockPrescriptionRepository), new(MockStudentRepository), new(MockMedicineInventoryRepository), new(MockDocumentRenderer))

		visits.On("GetByID", mock.Anything, "v-1").Return(&entities.PatientVisit{
			ID: "v-1", Status: entities.VisitStatusOpen, Symptoms: "stomach ache",
		}, nil)
		diagnosis := "gastritis"
		visits.On("Update", mock.Anything, mock.MatchedBy(func(v *entities.PatientVisit) bool {
			return v.Diagnosis == "gastritis" && v.Symptoms == "stomach ache"
		})).Return(nil)

		visit, err := service.UpdateVisit(context.Background(), "v-1", services.VisitUpdate{Diagnosis: &diagnosis})

		assert.NoError(t, err)
		assert.Equal(t, "gastritis", visit.Diagnosis)
	})

	t.Run("rejects a malformed followup date", func(t *testing.T) {
		visits := new(MockVisitRepository)
		service := newVisitService(visits, new(MockPrescriptionRepository), new(MockStudentRepository), new(MockMedicineInventoryRepository), new(MockDocumentRenderer))

		visits.On("GetByID", mock.Anything, "v-1").Return(&entities.PatientVisit{
			ID: "v-1", Status: entities.VisitStatusOpen,
		}, nil)

		followup := "next tuesday"
		_, err := service.UpdateVisit(context.Background(), "v-1", services.VisitUpdate{FollowupDate: &followup})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		visits.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("a closed visit cannot be edited", func(t *testing.T) {
		visits := new(MockVisitRepository)
		service := newVisitService(visits, new(MockPrescriptionRepository), new(MockStudentRepository), new(MockMedicineInventoryRepository), new(MockDocumentRenderer))

		visits.On("GetByID", mock.Anything, "v-1").Return(&entities.PatientVisit{
			ID: "v-1", Status: entities.VisitStatusClosed,
		}, nil)

		diagnosis := "flu"
		_, err := service.UpdateVisit(context.Background(), "v-1", services.VisitUpdate{Diagnosis: &diagnosis})

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})
}

func TestVisitService_Prescribe(t *testing.T) {
	t.Run("issues a prescription and dispenses one unit", func(t *testing.T) {
		visits := new(MockVisitRepository)
		prescriptions := new(MockPrescriptionRepository)
		items := new(MockMedicineInventoryRepository)
		service := newVisitService(visits, prescriptions, new(MockStudentRepository), items, new(MockDocumentRenderer))

		visits.On("GetByID", mock.Anything, "v-1").Return(&entities.PatientVisit{
			ID: "v-1", StudentID: "stu-1", DoctorID: "doc-1", Status: entities.VisitStatusOpen,
		}, nil)
		items.On("GetByID", mock.Anything, "med-1").Return(&entities.MedicineItem{
			ID: "med-1", Name: "Paracetamol", Quantity: 30, Threshold: 10,
		}, nil)
		items.On("AdjustQuantity", mock.Anything, "med-1", -1).Return(&entities.MedicineItem{
			ID: "med-1", Name: "Paracetamol", Quantity: 29, Threshold: 10,
		}, nil)
		prescriptions.On("Create", mock.Anything, mock.MatchedBy(func(p *entities.Prescription) bool {
			return p.VisitID == "v-1" && p.StudentID == "stu-1" && p.DoctorID == "doc-1" && p.DateIssued != ""
		})).Return(nil)

		prescription, err := service.Prescribe(context.Background(), "v-1", "med-1", "500mg", "3 days")

		assert.NoError(t, err)
		assert.Equal(t, "med-1", prescription.MedicineID)
		items.AssertExpectations(t)
		prescriptions.AssertExpectations(t)
	})

	t.Run("cannot prescribe on a closed visit", func(t *testing.T) {
		visits := new(MockVisitRepository)
		items := new(MockMedicineInventoryRepository)
		service := newVisitService(visits, new(MockPrescriptionRepository), new(MockStudentRepository), items, new(MockDocumentRenderer))

		visits.On("GetByID", mock.Anything, "v-1").Return(&entities.PatientVisit{
			ID: "v-1", Status: entities.VisitStatusClosed,
		}, nil)

		_, err := service.Prescribe(context.Background(), "v-1", "med-1", "500mg", "3 days")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		items.AssertNotCalled(t, "AdjustQuantity", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("out of stock medicine fails the prescription", func(t *testing.T) {
		visits := new(MockVisitRepository)
		prescriptions := new(MockPrescriptionRepository)
		items := new(MockMedicineInventoryRepository)
		service := newVisitService(visits, prescriptions, new(MockStudentRepository), items, new(MockDocumentRenderer))

		visits.On("GetByID", mock.Anything, "v-1").Return(&entities.PatientVisit{
			ID: "v-1", Status: entities.VisitStatusOpen,
		}, nil)
		items.On("GetByID", mock.Anything, "med-1").Return(&entities.MedicineItem{
			ID: "med-1", Name: "Paracetamol", Quantity: 0, Threshold: 10,
		}, nil)

		_, err := service.Prescribe(context.Background(), "v-1", "med-1", "500mg", "3 days")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		prescriptions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestVisitService_Summary(t *testing.T) {
	t.Run("renders the visit summary with its prescriptions", func(t *testing.T) {
		visits := new(MockVisitRepository)
		prescriptions := new(MockPrescriptionRepository)
		students := new(MockStudentRepository)
		renderer := new(MockDocumentRenderer)
		service := newVisitService(visits, prescriptions, students, new(MockMedicineInventoryRepository), renderer)

		visit := &entities.PatientVisit{ID: "v-1", StudentID: "stu-1", Status: entities.VisitStatusClosed}
		student := &entities.Student{ID: "stu-1", Name: "Rohit Menon"}
		issued := []*entities.Prescription{{ID: "p-1", VisitID: "v-1"}}

		visits.On("GetByID", mock.Anything, "v-1").Return(visit, nil)
		students.On("GetByID", mock.Anything, "stu-1").Return(student, nil)
		prescriptions.On("ListByVisit", mock.Anything, "v-1").Return(issued, nil)
		renderer.On("VisitSummary", student, visit, issued).Return([]byte("%PDF"), nil)

		document, err := service.Summary(context.Background(), "v-1")

		assert.NoError(t, err)
		assert.NotEmpty(t, document)
		renderer.AssertExpectations(t)
	})
}
