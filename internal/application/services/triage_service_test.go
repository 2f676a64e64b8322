package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/campuscare/clinic-backend/internal/application/services"
	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

func TestTriageService_Analyze(t *testing.T) {
	t.Run("returns the remote classifier's answer", func(t *testing.T) {
		checks := new(MockSymptomCheckRepository)
		classifier := new(MockTriageProvider)
		service := services.NewTriageService(checks, classifier)

		classifier.On("Classify", mock.Anything, []string{"sore throat"}).Return(&providers.TriageResult{
			PriorityLevel:   entities.PriorityLow,
			SuggestedAction: entities.ActionSelfCare,
		}, nil)
		checks.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.SymptomCheck) bool {
			return c.PriorityLevel == entities.PriorityLow && c.StudentID == "stu-1"
		})).Return(nil)

		check, err := service.Analyze(context.Background(), "stu-1", []string{"sore throat"})

		assert.NoError(t, err)
		assert.Equal(t, entities.PriorityLow, check.PriorityLevel)
		assert.Equal(t, entities.ActionSelfCare, check.SuggestedAction)
		checks.AssertExpectations(t)
	})

	t.Run("applies the local rule when no classifier is configured", func(t *testing.T) {
		checks := new(MockSymptomCheckRepository)
		service := services.NewTriageService(checks, nil)

		checks.On("Create", mock.Anything, mock.Anything).Return(nil)

		check, err := service.Analyze(context.Background(), "stu-1", []string{"mild headache"})

		assert.NoError(t, err)
		assert.Equal(t, entities.PriorityMedium, check.PriorityLevel)
		assert.Equal(t, entities.ActionClinicVisit, check.SuggestedAction)
	})

	t.Run("local rule escalates chest pain to an emergency", func(t *testing.T) {
		checks := new(MockSymptomCheckRepository)
		service := services.NewTriageService(checks, nil)

		checks.On("Create", mock.Anything, mock.Anything).Return(nil)

		check, err := service.Analyze(context.Background(), "stu-1", []string{"fever", "Chest Pain"})

		assert.NoError(t, err)
		assert.Equal(t, entities.PriorityHigh, check.PriorityLevel)
		assert.Equal(t, entities.ActionEmergency, check.SuggestedAction)
	})

	t.Run("falls back to the local rule when the provider reports no configuration", func(t *testing.T) {
		checks := new(MockSymptomCheckRepository)
		classifier := new(MockTriageProvider)
		service := services.NewTriageService(checks, classifier)

		classifier.On("Classify", mock.Anything, mock.Anything).Return(nil, providers.ErrTriageNotConfigured)
		checks.On("Create", mock.Anything, mock.Anything).Return(nil)

		check, err := service.Analyze(context.Background(), "stu-1", []string{"trouble breathing"})

		assert.NoError(t, err)
		assert.Equal(t, entities.PriorityHigh, check.PriorityLevel)
		assert.Equal(t, entities.ActionEmergency, check.SuggestedAction)
	})

	t.Run("degrades to the could-not-analyze answer after a failed remote call", func(t *testing.T) {
		checks := new(MockSymptomCheckRepository)
		classifier := new(MockTriageProvider)
		service := services.NewTriageService(checks, classifier)

		classifier.On("Classify", mock.Anything, mock.Anything).Return(nil, errors.New("upstream timeout"))
		checks.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.SymptomCheck) bool {
			return c.SuggestedAction == entities.ActionCouldNotAnalyze
		})).Return(nil)

		check, err := service.Analyze(context.Background(), "stu-1", []string{"fever"})

		assert.NoError(t, err)
		assert.Equal(t, entities.PriorityMedium, check.PriorityLevel)
		assert.Equal(t, entities.ActionCouldNotAnalyze, check.SuggestedAction)
		checks.AssertExpectations(t)
	})

	t.Run("rejects an empty symptom list", func(t *testing.T) {
		service := services.NewTriageService(new(MockSymptomCheckRepository), nil)

		_, err := service.Analyze(context.Background(), "stu-1", nil)

		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("surfaces audit write failures", func(t *testing.T) {
		checks := new(MockSymptomCheckRepository)
		service := services.NewTriageService(checks, nil)

		checks.On("Create", mock.Anything, mock.Anything).Return(apperrors.NewInternalError("db down", nil))

		_, err := service.Analyze(context.Background(), "stu-1", []string{"fever"})

		assert.Error(t, err)
	})
}
