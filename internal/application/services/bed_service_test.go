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

func TestBedService_Lifecycle(t *testing.T) {
	t.Run("assigns a student to an available bed", func(t *testing.T) {
		beds := new(MockBedRepository)
		service := services.NewBedService(beds)

		beds.On("GetByID", mock.Anything, "bed-1").Return(&entities.Bed{
			ID: "bed-1", BedNumber: 1, Status: entities.BedStatusAvailable,
		}, nil)
		beds.On("Update", mock.Anything, mock.MatchedBy(func(b *entities.Bed) bool {
			return b.Status == entities.BedStatusOccupied &&
				b.AssignedStudentID != nil && *b.AssignedStudentID == "stu-1" &&
				b.CheckinTime != nil
		})).Return(nil)

		bed, err := service.Assign(context.Background(), "bed-1", "stu-1", "fever observation", "monitor hourly")

		assert.NoError(t, err)
		assert.Equal(t, entities.BedStatusOccupied, bed.Status)
		beds.AssertExpectations(t)
	})

	t.Run("cannot assign an occupied bed", func(t *testing.T) {
		beds := new(MockBedRepository)
		service := services.NewBedService(beds)

		other := "stu-9"
		beds.On("GetByID", mock.Anything, "bed-1").Return(&entities.Bed{
			ID: "bed-1", BedNumber: 1, Status: entities.BedStatusOccupied, AssignedStudentID: &other,
		}, nil)

		_, err := service.Assign(context.Background(), "bed-1", "stu-1", "rest", "")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
		beds.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("release marks the bed for cleaning with a checkout time", func(t *testing.T) {
		beds := new(MockBedRepository)
		service := services.NewBedService(beds)

		student := "stu-1"
		beds.On("GetByID", mock.Anything, "bed-1").Return(&entities.Bed{
			ID: "bed-1", BedNumber: 1, Status: entities.BedStatusOccupied, AssignedStudentID: &student,
		}, nil)
		beds.On("Update", mock.Anything, mock.MatchedBy(func(b *entities.Bed) bool {
			return b.Status == entities.BedStatusCleaningNeeded && b.CheckoutTime != nil
		})).Return(nil)

		bed, err := service.Release(context.Background(), "bed-1")

		assert.NoError(t, err)
		assert.Equal(t, entities.BedStatusCleaningNeeded, bed.Status)
	})

	t.Run("cannot release a bed that is not occupied", func(t *testing.T) {
		beds := new(MockBedRepository)
		service := services.NewBedService(beds)

		beds.On("GetByID", mock.Anything, "bed-1").Return(&entities.Bed{
			ID: "bed-1", BedNumber: 1, Status: entities.BedStatusAvailable,
		}, nil)

		_, err := service.Release(context.Background(), "bed-1")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})

	t.Run("marking cleaned returns the bed to service and clears occupancy", func(t *testing.T) {
		beds := new(MockBedRepository)
		service := services.NewBedService(beds)

		student := "stu-1"
		beds.On("GetByID", mock.Anything, "bed-1").Return(&entities.Bed{
			ID: "bed-1", BedNumber: 1, Status: entities.BedStatusCleaningNeeded,
			AssignedStudentID: &student, Reason: "fever observation", NurseNotes: "stable",
		}, nil)
		beds.On("Update", mock.Anything, mock.MatchedBy(func(b *entities.Bed) bool {
			return b.Status == entities.BedStatusAvailable &&
				b.AssignedStudentID == nil && b.Reason == "" && b.NurseNotes == ""
		})).Return(nil)

		bed, err := service.MarkCleaned(context.Background(), "bed-1")

		assert.NoError(t, err)
		assert.Equal(t, entities.BedStatusAvailable, bed.Status)
		beds.AssertExpectations(t)
	})

	t.Run("cannot mark a bed cleaned unless it needs cleaning", func(t *testing.T) {
		beds := new(MockBedRepository)
		service := services.NewBedService(beds)

		beds.On("GetByID", mock.Anything, "bed-1").Return(&entities.Bed{
			ID: "bed-1", BedNumber: 1, Status: entities.BedStatusOccupied,
		}, nil)

		_, err := service.MarkCleaned(context.Background(), "bed-1")

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	})
}
