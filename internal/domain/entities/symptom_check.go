package entities

import "time"

// PriorityLevel is the triage classification tier
type PriorityLevel string

const (
	PriorityLow    PriorityLevel = "Low"
	PriorityMedium PriorityLevel = "Medium"
	PriorityHigh   PriorityLevel = "High"
)

// Canned triage recommendations. The classifier (remote or fallback) only
// ever answers with one of these, except the degraded post-call message.
const (
	ActionClinicVisit = "Visit the clinic for a check-up"
	ActionEmergency   = "This could be an emergency, please visit the nearest hospital immediately"
	ActionSelfCare    = "You can likely manage this with self-care at home. Monitor your symptoms."

	// ActionCouldNotAnalyze is returned when a remote classification was
	// attempted and failed. The distinct wording lets operators tell
	// degraded triage apart from a genuine result.
	ActionCouldNotAnalyze = "Could not analyze symptoms. Please visit the clinic for a check-up."
)

// SymptomCheck is the immutable audit record of one triage classification,
// written for every outcome whether remote or fallback.
type SymptomCheck struct {
	ID              string        `json:"id" db:"id"`
	StudentID       string        `json:"student_id" db:"student_id"`
	Symptoms        []string      `json:"symptoms" db:"symptoms"`
	PriorityLevel   PriorityLevel `json:"priority_level" db:"priority_level"`
	SuggestedAction string        `json:"suggested_action" db:"suggested_action"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}
