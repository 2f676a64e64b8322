package entities

// Student represents a registered student with a basic medical profile
type Student struct {
	ID                 string `json:"id" db:"id"`
	Name               string `json:"name" db:"name"`
	RollNumber         string `json:"roll_number" db:"roll_number"`
	Department         string `json:"department" db:"department"`
	Phone              string `json:"phone" db:"phone"`
	Email              string `json:"email" db:"email"`
	Allergies          string `json:"allergies" db:"allergies"`
	ChronicConditions  string `json:"chronic_conditions" db:"chronic_conditions"`
	VaccinationRecords string `json:"vaccination_records" db:"vaccination_records"`
}
