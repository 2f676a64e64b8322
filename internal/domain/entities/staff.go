package entities

// Role identifies the kind of authenticated principal
type Role string

const (
	RoleStudent Role = "Student"
	RoleDoctor  Role = "Doctor"
	RoleNurse   Role = "Nurse"
	RoleAdmin   Role = "Admin"
)

// IsStaff reports whether the role belongs to clinic staff
func (r Role) IsStaff() bool {
	return r == RoleDoctor || r == RoleNurse
}

// Staff represents a clinic staff member (doctor or nurse)
type Staff struct {
	ID            string `json:"id" db:"id"`
	Name          string `json:"name" db:"name"`
	Role          Role   `json:"role" db:"role"`
	Phone         string `json:"phone" db:"phone"`
	Email         string `json:"email" db:"email"`
	ShiftTimings  string `json:"shift_timings" db:"shift_timings"`
}

// Principal is the authenticated caller of an operation. It replaces
// property-presence checks on loaded records with an explicit role tag.
type Principal struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
