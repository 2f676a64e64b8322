package entities

import "time"

// SickLeaveStatus tracks a sick-leave request through review
type SickLeaveStatus string

const (
	SickLeaveStatusSubmitted SickLeaveStatus = "Submitted"
	SickLeaveStatusApproved  SickLeaveStatus = "Approved"
	SickLeaveStatusRejected  SickLeaveStatus = "Rejected"
)

// SickLeaveRequest is a student's request for medical leave. DoctorRemarks
// is filled by the reviewing doctor; an approved request can be exported
// as a medical certificate.
type SickLeaveRequest struct {
	ID            string          `json:"id" db:"id"`
	StudentID     string          `json:"student_id" db:"student_id"`
	Reason        string          `json:"reason" db:"reason"`
	StartDate     string          `json:"start_date" db:"start_date"`
	EndDate       string          `json:"end_date" db:"end_date"`
	DoctorRemarks string          `json:"doctor_remarks" db:"doctor_remarks"`
	Status        SickLeaveStatus `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
}
