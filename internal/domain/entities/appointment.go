package entities

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// Appointment represents a student's booking with a doctor. Date is a naive
// local calendar day (YYYY-MM-DD) and Time a wall-clock minute (HH:MM);
// no time-zone conversion is applied anywhere.
type Appointment struct {
	ID        string            `json:"id" db:"id"`
	StudentID string            `json:"student_id" db:"student_id"`
	DoctorID  string            `json:"doctor_id" db:"doctor_id"`
	Date      string            `json:"date" db:"appointment_date"`
	Time      string            `json:"time" db:"appointment_time"`
	Symptoms  string            `json:"symptoms" db:"symptoms"`
	Status    AppointmentStatus `json:"status" db:"status"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt time.Time         `json:"updated_at" db:"updated_at"`
}

// Active reports whether the appointment still occupies its slot.
// Cancelled appointments free the slot; every other status holds it.
func (a *Appointment) Active() bool {
	return a.Status != AppointmentStatusCancelled
}
