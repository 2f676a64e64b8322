package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

// TriageService classifies a student's symptoms into a priority tier and a
// suggested action. Three outcomes are observably distinct and all audited:
// the remote classifier's answer, the deterministic rule applied when no
// classifier is configured, and the degraded answer after a failed remote
// call.
type TriageService struct {
	checks     repositories.SymptomCheckRepository
	classifier providers.TriageProvider
}

// NewTriageService creates a new triage service. A nil classifier means no
// remote model is configured; the local rule applies.
func NewTriageService(checks repositories.SymptomCheckRepository, classifier providers.TriageProvider) *TriageService {
	return &TriageService{
		checks:     checks,
		classifier: classifier,
	}
}

// Analyze classifies the symptom list and appends an immutable audit record
// for whichever path produced the answer. Classifier failures never surface
// to the student.
func (s *TriageService) Analyze(ctx context.Context, studentID string, symptoms []string) (*entities.SymptomCheck, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}
	if len(symptoms) == 0 {
		return nil, apperrors.NewValidationError("at least one symptom is required")
	}

	result := s.classify(ctx, symptoms)

	check := &entities.SymptomCheck{
		ID:              uuid.New().String(),
		StudentID:       studentID,
		Symptoms:        symptoms,
		PriorityLevel:   result.PriorityLevel,
		SuggestedAction: result.SuggestedAction,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.checks.Create(ctx, check); err != nil {
		return nil, err
	}

	return check, nil
}

// ListStudentChecks retrieves the triage audit records for a student
func (s *TriageService) ListStudentChecks(ctx context.Context, studentID string) ([]*entities.SymptomCheck, error) {
	if studentID == "" {
		return nil, apperrors.NewValidationError("student id is required")
	}
	return s.checks.ListByStudent(ctx, studentID)
}

func (s *TriageService) classify(ctx context.Context, symptoms []string) providers.TriageResult {
	if s.classifier == nil {
		return localRule(symptoms)
	}

	result, err := s.classifier.Classify(ctx, symptoms)
	if err != nil {
		if errors.Is(err, providers.ErrTriageNotConfigured) {
			return localRule(symptoms)
		}
		// A remote call was attempted and failed: degrade to the tagged
		// "could not analyze" answer so operators can tell it apart from
		// genuine triage.
		log.Warn().Err(err).Msg("remote triage classification failed, using degraded fallback")
		return providers.TriageResult{
			PriorityLevel:   entities.PriorityMedium,
			SuggestedAction: entities.ActionCouldNotAnalyze,
		}
	}

	return *result
}

// localRule is the deterministic classification used when no remote
// classifier is configured: chest pain or breathing trouble escalates to
// High with an emergency referral, anything else gets a clinic visit.
func localRule(symptoms []string) providers.TriageResult {
	for _, symptom := range symptoms {
		lowered := strings.ToLower(symptom)
		if strings.Contains(lowered, "chest pain") || strings.Contains(lowered, "breathing") {
			return providers.TriageResult{
				PriorityLevel:   entities.PriorityHigh,
				SuggestedAction: entities.ActionEmergency,
			}
		}
	}
	return providers.TriageResult{
		PriorityLevel:   entities.PriorityMedium,
		SuggestedAction: entities.ActionClinicVisit,
	}
}
