package entities

import "time"

// BedStatus represents the occupancy state of a clinic bed
type BedStatus string

const (
	BedStatusAvailable      BedStatus = "Available"
	BedStatusOccupied       BedStatus = "Occupied"
	BedStatusCleaningNeeded BedStatus = "Cleaning Needed"
)

// Bed represents a single observation bed in the clinic ward
type Bed struct {
	ID                string     `json:"id" db:"id"`
	BedNumber         int        `json:"bed_number" db:"bed_number"`
	Status            BedStatus  `json:"status" db:"status"`
	AssignedStudentID *string    `json:"assigned_student_id,omitempty" db:"assigned_student_id"`
	CheckinTime       *time.Time `json:"checkin_time,omitempty" db:"checkin_time"`
	CheckoutTime      *time.Time `json:"checkout_time,omitempty" db:"checkout_time"`
	Reason            string     `json:"reason,omitempty" db:"reason"`
	NurseNotes        string     `json:"nurse_notes,omitempty" db:"nurse_notes"`
}
