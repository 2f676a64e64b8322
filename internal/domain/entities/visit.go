package entities

import "time"

// VisitStatus tracks a walk-in patient visit
type VisitStatus string

const (
	VisitStatusOpen   VisitStatus = "Open"
	VisitStatusClosed VisitStatus = "Closed"
)

// Vitals holds the measurements recorded at check-in
type Vitals struct {
	Temperature   string `json:"temperature"`
	Pulse         string `json:"pulse"`
	BloodPressure string `json:"blood_pressure"`
}

// PatientVisit records a student's walk-in visit to the clinic
type PatientVisit struct {
	ID               string      `json:"id" db:"id"`
	StudentID        string      `json:"student_id" db:"student_id"`
	DoctorID         string      `json:"doctor_id" db:"doctor_id"`
	CheckinTime      time.Time   `json:"checkin_time" db:"checkin_time"`
	Symptoms         string      `json:"symptoms" db:"symptoms"`
	Vitals           Vitals      `json:"vitals" db:"vitals"`
	Diagnosis        string      `json:"diagnosis" db:"diagnosis"`
	TreatmentProvided string     `json:"treatment_provided" db:"treatment_provided"`
	FollowupDate     string      `json:"followup_date,omitempty" db:"followup_date"`
	Status           VisitStatus `json:"status" db:"status"`
}

// Prescription links a visit to a dispensed medicine. Issuing one
// decrements the inventory quantity by a single unit.
type Prescription struct {
	ID         string `json:"id" db:"id"`
	VisitID    string `json:"visit_id" db:"visit_id"`
	StudentID  string `json:"student_id" db:"student_id"`
	MedicineID string `json:"medicine_id" db:"medicine_id"`
	DoctorID   string `json:"doctor_id" db:"doctor_id"`
	Dosage     string `json:"dosage" db:"dosage"`
	Duration   string `json:"duration" db:"duration"`
	DateIssued string `json:"date_issued" db:"date_issued"`
}
