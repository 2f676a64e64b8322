package services_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
)

// Mocks shared by the service tests

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) CreateIfSlotFree(ctx context.Context, appointment *entities.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *MockAppointmentRepository) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockAppointmentRepository) ListByStudent(ctx context.Context, studentID string, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	args := m.Called(ctx, studentID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) ListActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]*entities.Appointment, error) {
	args := m.Called(ctx, doctorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) CountActiveAt(ctx context.Context, doctorID, date, tm string) (int, error) {
	args := m.Called(ctx, doctorID, date, tm)
	return args.Int(0), args.Error(1)
}

func (m *MockAppointmentRepository) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Appointment), args.Error(1)
}

type MockAvailabilityRepository struct {
	mock.Mock
}

func (m *MockAvailabilityRepository) Create(ctx context.Context, window *entities.AvailabilityWindow) error {
	args := m.Called(ctx, window)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) GetByID(ctx context.Context, id string) (*entities.AvailabilityWindow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AvailabilityWindow), args.Error(1)
}

func (m *MockAvailabilityRepository) Update(ctx context.Context, window *entities.AvailabilityWindow) error {
	args := m.Called(ctx, window)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAvailabilityRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.AvailabilityWindow, error) {
	args := m.Called(ctx, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AvailabilityWindow), args.Error(1)
}

func (m *MockAvailabilityRepository) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]*entities.AvailabilityWindow, error) {
	args := m.Called(ctx, doctorID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.AvailabilityWindow), args.Error(1)
}

type MockStaffRepository struct {
	mock.Mock
}

func (m *MockStaffRepository) GetByID(ctx context.Context, id string) (*entities.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Staff), args.Error(1)
}

func (m *MockStaffRepository) List(ctx context.Context) ([]*entities.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Staff), args.Error(1)
}

func (m *MockStaffRepository) ListByRole(ctx context.Context, role entities.Role) ([]*entities.Staff, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Staff), args.Error(1)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id string) (*entities.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Student), args.Error(1)
}

func (m *MockStudentRepository) List(ctx context.Context) ([]*entities.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Student), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *entities.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListForUser(ctx context.Context, userID string, role entities.Role) ([]*entities.Notification, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBroadcastRepository struct {
	mock.Mock
}

func (m *MockBroadcastRepository) Create(ctx context.Context, broadcast *entities.Broadcast) error {
	args := m.Called(ctx, broadcast)
	return args.Error(0)
}

func (m *MockBroadcastRepository) List(ctx context.Context) ([]*entities.Broadcast, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Broadcast), args.Error(1)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.ClinicEvent) error {
	args := m.Called(ctx, channel, event)
	return args.Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ClinicEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.ClinicEvent), args.Error(1)
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}

func (m *MockEventBus) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockTriageProvider struct {
	mock.Mock
}

func (m *MockTriageProvider) Classify(ctx context.Context, symptoms []string) (*providers.TriageResult, error) {
	args := m.Called(ctx, symptoms)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.TriageResult), args.Error(1)
}

type MockSymptomCheckRepository struct {
	mock.Mock
}

func (m *MockSymptomCheckRepository) Create(ctx context.Context, check *entities.SymptomCheck) error {
	args := m.Called(ctx, check)
	return args.Error(0)
}

func (m *MockSymptomCheckRepository) ListByStudent(ctx context.Context, studentID string) ([]*entities.SymptomCheck, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SymptomCheck), args.Error(1)
}

type MockBedRepository struct {
	mock.Mock
}

func (m *MockBedRepository) List(ctx context.Context) ([]*entities.Bed, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Bed), args.Error(1)
}

func (m *MockBedRepository) GetByID(ctx context.Context, id string) (*entities.Bed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Bed), args.Error(1)
}

func (m *MockBedRepository) Update(ctx context.Context, bed *entities.Bed) error {
	args := m.Called(ctx, bed)
	return args.Error(0)
}

type MockMedicineInventoryRepository struct {
	mock.Mock
}

func (m *MockMedicineInventoryRepository) Create(ctx context.Context, item *entities.MedicineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMedicineInventoryRepository) GetByID(ctx context.Context, id string) (*entities.MedicineItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MedicineItem), args.Error(1)
}

func (m *MockMedicineInventoryRepository) Update(ctx context.Context, item *entities.MedicineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMedicineInventoryRepository) AdjustQuantity(ctx context.Context, id string, delta int) (*entities.MedicineItem, error) {
	args := m.Called(ctx, id, delta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MedicineItem), args.Error(1)
}

func (m *MockMedicineInventoryRepository) List(ctx context.Context) ([]*entities.MedicineItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MedicineItem), args.Error(1)
}

type MockMedicineRequestRepository struct {
	mock.Mock
}

func (m *MockMedicineRequestRepository) Create(ctx context.Context, request *entities.MedicineRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockMedicineRequestRepository) GetByID(ctx context.Context, id string) (*entities.MedicineRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.MedicineRequest), args.Error(1)
}

func (m *MockMedicineRequestRepository) Update(ctx context.Context, request *entities.MedicineRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockMedicineRequestRepository) ListByStudent(ctx context.Context, studentID string) ([]*entities.MedicineRequest, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MedicineRequest), args.Error(1)
}

func (m *MockMedicineRequestRepository) List(ctx context.Context) ([]*entities.MedicineRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.MedicineRequest), args.Error(1)
}

type MockSickLeaveRepository struct {
	mock.Mock
}

func (m *MockSickLeaveRepository) Create(ctx context.Context, request *entities.SickLeaveRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockSickLeaveRepository) GetByID(ctx context.Context, id string) (*entities.SickLeaveRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SickLeaveRequest), args.Error(1)
}

func (m *MockSickLeaveRepository) Update(ctx context.Context, request *entities.SickLeaveRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockSickLeaveRepository) ListByStudent(ctx context.Context, studentID string) ([]*entities.SickLeaveRequest, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SickLeaveRequest), args.Error(1)
}

func (m *MockSickLeaveRepository) List(ctx context.Context) ([]*entities.SickLeaveRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.SickLeaveRequest), args.Error(1)
}

type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) LeaveCertificate(student *entities.Student, leave *entities.SickLeaveRequest) ([]byte, error) {
	args := m.Called(student, leave)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentRenderer) VisitSummary(student *entities.Student, visit *entities.PatientVisit, prescriptions []*entities.Prescription) ([]byte, error) {
	args := m.Called(student, visit, prescriptions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) Create(ctx context.Context, visit *entities.PatientVisit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockVisitRepository) GetByID(ctx context.Context, id string) (*entities.PatientVisit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PatientVisit), args.Error(1)
}

func (m *MockVisitRepository) Update(ctx context.Context, visit *entities.PatientVisit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockVisitRepository) ListByStudent(ctx context.Context, studentID string) ([]*entities.PatientVisit, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PatientVisit), args.Error(1)
}

func (m *MockVisitRepository) List(ctx context.Context) ([]*entities.PatientVisit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PatientVisit), args.Error(1)
}

type MockPrescriptionRepository struct {
	mock.Mock
}

func (m *MockPrescriptionRepository) Create(ctx context.Context, prescription *entities.Prescription) error {
	args := m.Called(ctx, prescription)
	return args.Error(0)
}

func (m *MockPrescriptionRepository) GetByID(ctx context.Context, id string) (*entities.Prescription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) ListByStudent(ctx context.Context, studentID string) ([]*entities.Prescription, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Prescription), args.Error(1)
}

func (m *MockPrescriptionRepository) ListByVisit(ctx context.Context, visitID string) ([]*entities.Prescription, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Prescription), args.Error(1)
}
