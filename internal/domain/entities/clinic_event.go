package entities

import "time"

// ClinicEventType identifies a domain event emitted by the scheduling core
type ClinicEventType string

const (
	// EventAppointmentCreated is emitted after a booking commits
	EventAppointmentCreated ClinicEventType = "appointment.created"

	// EventRescheduleRequired is emitted for each confirmed appointment
	// orphaned by an availability change. The appointment itself is not
	// cancelled; remediation is left to staff.
	EventRescheduleRequired ClinicEventType = "appointment.reschedule_required"

	// EventLowStock is emitted when an inventory item falls below its threshold
	EventLowStock ClinicEventType = "inventory.low_stock"
)

// ClinicEvent is a domain event published on the event bus for external
// consumers such as the notification dispatcher.
type ClinicEvent struct {
	ID            string          `json:"id"`
	Type          ClinicEventType `json:"type"`
	AppointmentID string          `json:"appointment_id,omitempty"`
	StudentID     string          `json:"student_id,omitempty"`
	DoctorID      string          `json:"doctor_id,omitempty"`
	MedicineID    string          `json:"medicine_id,omitempty"`
	Date          string          `json:"date,omitempty"`
	Time          string          `json:"time,omitempty"`
	Detail        string          `json:"detail,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
