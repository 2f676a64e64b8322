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

func TestSickLeaveService_Request(t *testing.T) {
	t.Run("files a submitted request and alerts the doctors", func(t *testing.T) {
		leaves := new(MockSickLeaveRepository)
		notifRepo := new(MockNotificationRepository)
		notifications := services.NewNotificationService(notifRepo, new(MockBroadcastRepository))
		service := services.NewSickLeaveService(leaves, new(MockStudentRepository), new(MockDocumentRenderer), notifications)

		leaves.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.SickLeaveRequest) bool {
			return r.Status == entities.SickLeaveStatusSubmitted && r.StudentID == "stu-1"
		})).Return(nil)
		notifRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Notification) bool {
			return n.Recipient == entities.ForRole(entities.TargetDoctors)
		})).Return(nil)

		request, err := service.Request(context.Background(), "stu-1", "viral fever", "2026-09-01", "2026-09-03")

		assert.NoError(t, err)
		assert.Equal(t, entities.SickLeaveStatusSubmitted, request.Status)
		notifRepo.AssertExpectations(t)
	})

	t.Run("rejects an end date before the start date", func(t *testing.T) {
		service := services.NewSickLeaveService(new(MockSickLeaveRepository), new(MockStudentRepository), new(MockDocumentRenderer), nil)

		_, err := service.Request(context.Background(), "stu-1", "fever", "2026-09-03", "2026-09-01")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("accepts a single day leave", func(t *testing.T) {
		leaves := new(MockSickLeaveRepository)
		service := services.NewSickLeaveService(leaves, new(MockStudentRepository), new(MockDocumentRenderer), nil)

		leaves.On("Create", mock.Anything, mock.Anything).Return(nil)

		_, err := service.Request(context.Background(), "stu-1", "migraine", "2026-09-01", "2026-09-01")

		assert.NoError(t, err)
	})
}

func TestSickLeaveService_Review(t *testing.T) {
	t.Run("approves a submitted request with remarks", func(t *testing.T) {
		leaves := new(MockSickLeaveRepository)
		service := services.NewSickLeaveService(leaves, new(MockStudentRepository), new(MockDocumentRenderer), nil)

		leaves.On("GetByID", mock.Anything, "leave-1").Return(&entities.SickLeaveRequest{
			ID: "leave-1", StudentID: "stu-1", Status: entities.SickLeaveStatusSubmitted,
			StartDate: "2026-09-01", EndDate: "2026-09-03",
		}, nil)
		leaves.On("Update", mock.Anything, mock.MatchedBy(func(r *entities.SickLeaveRequest) bool {
			return r.Status == entities.SickLeaveStatusApproved && r.DoctorRemarks == "rest advised"
		})).Return(nil)

		reviewed, err := service.Review(context.Background(), "leave-1", true, "rest advised")

		assert.NoError(t, err)
		assert.Equal(t, entities.SickLeaveStatusApproved, reviewed.Status)
		leaves.AssertExpectations(t)
	})

	t.Run("a reviewed request cannot be reviewed again", func(t *testing.T) {
		leaves := new(MockSickLeaveRepository)
		service := services.NewSickLeaveService(leaves, new(MockStudentRepository), new(MockDocumentRenderer), nil)

		leaves.On("GetByID", mock.Anything, "leave-1").Return(&entities.SickLeaveRequest{
			ID: "leave-1", Status: entities.SickLeaveStatusRejected,
		}, nil)

		_, err := service.Review(context.Background(), "leave-1", true, "")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		leaves.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestSickLeaveService_Certificate(t *testing.T) {
	t.Run("renders a certificate for an approved request", func(t *testing.T) {
		leaves := new(MockSickLeaveRepository)
		students := new(MockStudentRepository)
		renderer := new(MockDocumentRenderer)
		service := services.NewSickLeaveService(leaves, students, renderer, nil)

		request := &entities.SickLeaveRequest{
			ID: "leave-1", StudentID: "stu-1", Status: entities.SickLeaveStatusApproved,
		}
		student := &entities.Student{ID: "stu-1", Name: "Asha Verma"}

		leaves.On("GetByID", mock.Anything, "leave-1").Return(request, nil)
		students.On("GetByID", mock.Anything, "stu-1").Return(student, nil)
		renderer.On("LeaveCertificate", student, request).Return([]byte("%PDF"), nil)

		document, err := service.Certificate(context.Background(), "leave-1")

		assert.NoError(t, err)
		assert.NotEmpty(t, document)
		renderer.AssertExpectations(t)
	})

	t.Run("a submitted request has no certificate", func(t *testing.T) {
		leaves := new(MockSickLeaveRepository)
		renderer := new(MockDocumentRenderer)
		service := services.NewSickLeaveService(leaves, new(MockStudentRepository), renderer, nil)

		leaves.On("GetByID", mock.Anything, "leave-1").Return(&entities.SickLeaveRequest{
			ID: "leave-1", Status: entities.SickLeaveStatusSubmitted,
		}, nil)

		_, err := service.Certificate(context.Background(), "leave-1")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		renderer.AssertNotCalled(t, "LeaveCertificate", mock.Anything, mock.Anything)
	})
}
