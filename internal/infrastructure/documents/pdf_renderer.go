package documents

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/providers"
)

const clinicName = "Campus Health Clinic"

// PDFRenderer implements the DocumentRenderer interface using gofpdf
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDF document renderer
func NewPDFRenderer() providers.DocumentRenderer {
	return &PDFRenderer{}
}

// LeaveCertificate renders a medical certificate for an approved
// sick-leave request
func (r *PDFRenderer) LeaveCertificate(student *entities.Student, leave *entities.SickLeaveRequest) ([]byte, error) {
	pdf := newDocument("Medical Certificate")

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf(
		"This is to certify that %s (Roll No: %s, %s) was examined at the %s "+
			"and is advised medical leave from %s to %s.",
		student.Name, student.RollNumber, student.Department, clinicName,
		leave.StartDate, leave.EndDate,
	), "", "L", false)
	pdf.Ln(4)

	addDetail(pdf, "Reason", leave.Reason)
	if leave.DoctorRemarks != "" {
		addDetail(pdf, "Doctor's Remarks", leave.DoctorRemarks)
	}
	addDetail(pdf, "Issued On", time.Now().Format("2006-01-02"))

	addFooter(pdf)
	return output(pdf)
}

// VisitSummary renders a summary of a patient visit including the
// prescriptions issued during it
func (r *PDFRenderer) VisitSummary(student *entities.Student, visit *entities.PatientVisit, prescriptions []*entities.Prescription) ([]byte, error) {
	pdf := newDocument("Patient Visit Summary")

	addDetail(pdf, "Patient", fmt.Sprintf("%s (Roll No: %s)", student.Name, student.RollNumber))
	addDetail(pdf, "Check-in", visit.CheckinTime.Format("2006-01-02 15:04"))
	addDetail(pdf, "Symptoms", visit.Symptoms)

	if visit.Vitals != (entities.Vitals{}) {
		pdf.Ln(2)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, "Vitals", "", 1, "L", false, 0, "")
		addDetail(pdf, "Temperature", visit.Vitals.Temperature)
		addDetail(pdf, "Pulse", visit.Vitals.Pulse)
		addDetail(pdf, "Blood Pressure", visit.Vitals.BloodPressure)
	}

	pdf.Ln(2)
	addDetail(pdf, "Diagnosis", visit.Diagnosis)
	addDetail(pdf, "Treatment Provided", visit.TreatmentProvided)
	if visit.FollowupDate != "" {
		addDetail(pdf, "Follow-up Date", visit.FollowupDate)
	}

	if len(prescriptions) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 8, "Prescriptions", "1", 1, "C", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for i, prescription := range prescriptions {
			pdf.CellFormat(0, 7, fmt.Sprintf(
				"%d. Medicine %s, %s for %s (issued %s)",
				i+1, prescription.MedicineID, prescription.Dosage,
				prescription.Duration, prescription.DateIssued,
			), "", 1, "L", false, 0, "")
		}
	}

	addFooter(pdf)
	return output(pdf)
}

func newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 15)
	pdf.CellFormat(0, 10, clinicName, "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, title, "1", 1, "C", false, 0, "")
	pdf.Ln(4)

	return pdf
}

func addDetail(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 7, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.MultiCell(0, 7, value, "", "L", false)
}

func addFooter(pdf *gofpdf.Fpdf) {
	pdf.SetY(pdf.GetY() + 12)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 10, "This is a computer generated document", "", 1, "R", false, 0, "")
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
