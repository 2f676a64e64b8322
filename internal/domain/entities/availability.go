package entities

import (
	"time"
)

// AvailabilityStatus represents the state of a doctor's availability window
type AvailabilityStatus string

const (
	AvailabilityStatusAvailable   AvailabilityStatus = "Available"
	AvailabilityStatusUnavailable AvailabilityStatus = "Unavailable"
	AvailabilityStatusBusy        AvailabilityStatus = "Busy"
)

// AvailabilityWindow is a doctor-declared open interval on a given date
// during which appointments may be booked. StartTime and EndTime are
// wall-clock HH:MM strings; StartTime < EndTime is enforced at create/edit.
type AvailabilityWindow struct {
	ID        string             `json:"id" db:"id"`
	DoctorID  string             `json:"doctor_id" db:"doctor_id"`
	Date      string             `json:"date" db:"window_date"`
	StartTime string             `json:"start_time" db:"start_time"`
	EndTime   string             `json:"end_time" db:"end_time"`
	Status    AvailabilityStatus `json:"status" db:"status"`
	Notes     string             `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" db:"updated_at"`
}

// Contains reports whether the wall-clock time t (HH:MM) falls inside the
// window's [start, end) interval. A booking may start at the window's start
// time but never at its end time. HH:MM 24-hour strings compare correctly
// byte-wise, so no parsing is needed.
func (w *AvailabilityWindow) Contains(t string) bool {
	return t >= w.StartTime && t < w.EndTime
}
