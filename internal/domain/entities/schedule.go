package entities

// ShiftType classifies a staff shift
type ShiftType string

const (
	ShiftMorning ShiftType = "Morning"
	ShiftEvening ShiftType = "Evening"
	ShiftNight   ShiftType = "Night"
)

// StaffSchedule is an admin-managed shift assignment for a staff member
type StaffSchedule struct {
	ID        string    `json:"id" db:"id"`
	StaffID   string    `json:"staff_id" db:"staff_id"`
	Date      string    `json:"date" db:"shift_date"`
	StartTime string    `json:"start_time" db:"start_time"`
	EndTime   string    `json:"end_time" db:"end_time"`
	ShiftType ShiftType `json:"shift_type" db:"shift_type"`
}
