package entities

import "time"

// MedicineCategory classifies an inventory item
type MedicineCategory string

const (
	MedicineCategoryTablet    MedicineCategory = "Tablet"
	MedicineCategorySyrup     MedicineCategory = "Syrup"
	MedicineCategoryInjection MedicineCategory = "Injection"
	MedicineCategoryOther     MedicineCategory = "Other"
)

// MedicineItem is a stocked medicine in the clinic inventory. A quantity
// below Threshold triggers a low-stock notification to the admin.
type MedicineItem struct {
	ID         string           `json:"id" db:"id"`
	Name       string           `json:"name" db:"name"`
	Quantity   int              `json:"quantity" db:"quantity"`
	ExpiryDate string           `json:"expiry_date" db:"expiry_date"`
	Category   MedicineCategory `json:"category" db:"category"`
	Threshold  int              `json:"threshold" db:"threshold"`
	UpdatedAt  time.Time        `json:"updated_at" db:"updated_at"`
}

// BelowThreshold reports whether the item needs restocking
func (m *MedicineItem) BelowThreshold() bool {
	return m.Quantity < m.Threshold
}

// MedicineRequestStatus tracks an over-the-counter medicine request
type MedicineRequestStatus string

const (
	MedicineRequestStatusRequested MedicineRequestStatus = "Requested"
	MedicineRequestStatusApproved  MedicineRequestStatus = "Approved"
	MedicineRequestStatusRejected  MedicineRequestStatus = "Rejected"
)

// MedicineRequest is a student's request for an over-the-counter medicine.
// IssuedDate is set when staff approve the request.
type MedicineRequest struct {
	ID         string                `json:"id" db:"id"`
	StudentID  string                `json:"student_id" db:"student_id"`
	MedicineID string                `json:"medicine_id" db:"medicine_id"`
	Reason     string                `json:"reason" db:"reason"`
	Status     MedicineRequestStatus `json:"status" db:"status"`
	IssuedDate string                `json:"issued_date,omitempty" db:"issued_date"`
	CreatedAt  time.Time             `json:"created_at" db:"created_at"`
}
