package providers

import (
	"context"
	"errors"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// ErrTriageNotConfigured is returned by a provider that has no API key.
// Callers apply the deterministic local rule instead of surfacing it.
var ErrTriageNotConfigured = errors.New("triage classifier is not configured")

// TriageResult is the classifier's answer for one symptom list
type TriageResult struct {
	PriorityLevel   entities.PriorityLevel `json:"priorityLevel"`
	SuggestedAction string                 `json:"suggestedAction"`
}

// TriageProvider defines a remote symptom classifier. Implementations may
// fail after a call was attempted; callers must degrade to the documented
// fallback result rather than propagate the error to the student.
type TriageProvider interface {
	Classify(ctx context.Context, symptoms []string) (*TriageResult, error)
}
