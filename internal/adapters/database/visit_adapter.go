package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	"github.com/campuscare/clinic-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

var visitColumns = []interface{}{
	"id", "student_id", "doctor_id", "checkin_time", "symptoms",
	"temperature", "pulse", "blood_pressure",
	"diagnosis", "treatment_provided", "followup_date", "status",
}

// VisitAdapter implements the VisitRepository interface
type VisitAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewVisitAdapter creates a new visit adapter
func NewVisitAdapter(client *postgres.Client) repositories.VisitRepository {
	return &VisitAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new patient visit
func (a *VisitAdapter) Create(ctx context.Context, visit *entities.PatientVisit) error {
	query, args, err := a.db.Insert("patient_visits").Rows(goqu.Record{
		"id":                 visit.ID,
		"student_id":         visit.StudentID,
		"doctor_id":          visit.DoctorID,
		"checkin_time":       visit.CheckinTime,
		"symptoms":           visit.Symptoms,
		"temperature":        visit.Vitals.Temperature,
		"pulse":              visit.Vitals.Pulse,
		"blood_pressure":     visit.Vitals.BloodPressure,
		"diagnosis":          visit.Diagnosis,
		"treatment_provided": visit.TreatmentProvided,
		"followup_date":      visit.FollowupDate,
		"status":             visit.Status,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create visit", err)
	}
	return nil
}

// GetByID retrieves a visit by ID
func (a *VisitAdapter) GetByID(ctx context.Context, id string) (*entities.PatientVisit, error) {
	query, args, err := a.db.Select(visitColumns...).
		From("patient_visits").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	visit, err := scanVisit(row.Scan)
	if err == errVisitNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("visit with id %s not found", id))
	}
	if err != nil {
		return nil, err
	}
	return visit, nil
}

// Update updates a visit
func (a *VisitAdapter) Update(ctx context.Context, visit *entities.PatientVisit) error {
	query, args, err := a.db.Update("patient_visits").
		Set(goqu.Record{
			"temperature":        visit.Vitals.Temperature,
			"pulse":              visit.Vitals.Pulse,
			"blood_pressure":     visit.Vitals.BloodPressure,
			"diagnosis":          visit.Diagnosis,
			"treatment_provided": visit.TreatmentProvided,
			"followup_date":      visit.FollowupDate,
			"status":             visit.Status,
		}).
		Where(goqu.Ex{"id": visit.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update visit", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("visit with id %s not found", visit.ID))
	}
	return nil
}

// ListByStudent retrieves visits for a student
func (a *VisitAdapter) ListByStudent(ctx context.Context, studentID string) ([]*entities.PatientVisit, error) {
	ds := a.db.Select(visitColumns...).
		From("patient_visits").
		Where(goqu.Ex{"student_id": studentID}).
		Order(goqu.I("checkin_time").Desc())

	return a.queryVisits(ctx, ds)
}

// List retrieves all visits
func (a *VisitAdapter) List(ctx context.Context) ([]*entities.PatientVisit, error) {
	ds := a.db.Select(visitColumns...).
		From("patient_visits").
		Order(goqu.I("checkin_time").Desc())

	return a.queryVisits(ctx, ds)
}

func (a *VisitAdapter) queryVisits(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.PatientVisit, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list visits", err)
	}
	defer rows.Close()

	var visits []*entities.PatientVisit
	for rows.Next() {
		visit, err := scanVisit(rows.Scan)
		if err != nil {
			return nil, err
		}
		visits = append(visits, visit)
	}
	return visits, nil
}

var errVisitNoRows = apperrors.NewNotFoundError("visit not found")

func scanVisit(scan func(dest ...interface{}) error) (*entities.PatientVisit, error) {
	visit := &entities.PatientVisit{}
	var temperature, pulse, bloodPressure sql.NullString
	var diagnosis, treatment, followupDate sql.NullString

	err := scan(
		&visit.ID,
		&visit.StudentID,
		&visit.DoctorID,
		&visit.CheckinTime,
		&visit.Symptoms,
		&temperature,
		&pulse,
		&bloodPressure,
		&diagnosis,
		&treatment,
		&followupDate,
		&visit.Status,
	)
	if err == sql.ErrNoRows {
		return nil, errVisitNoRows
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan visit", err)
	}

	visit.Vitals = entities.Vitals{
		Temperature:   temperature.String,
		Pulse:         pulse.String,
		BloodPressure: bloodPressure.String,
	}
	visit.Diagnosis = diagnosis.String
	visit.TreatmentProvided = treatment.String
	visit.FollowupDate = followupDate.String

	return visit, nil
}

var prescriptionColumns = []interface{}{
	"id", "visit_id", "student_id", "medicine_id", "doctor_id",
	"dosage", "duration", "date_issued",
}

// PrescriptionAdapter implements the PrescriptionRepository interface
type PrescriptionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPrescriptionAdapter creates a new prescription adapter
func NewPrescriptionAdapter(client *postgres.Client) repositories.PrescriptionRepository {
	return &PrescriptionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new prescription
func (a *PrescriptionAdapter) Create(ctx context.Context, prescription *entities.Prescription) error {
	query, args, err := a.db.Insert("prescriptions").Rows(goqu.Record{
		"id":          prescription.ID,
		"visit_id":    prescription.VisitID,
		"student_id":  prescription.StudentID,
		"medicine_id": prescription.MedicineID,
		"doctor_id":   prescription.DoctorID,
		"dosage":      prescription.Dosage,
		"duration":    prescription.Duration,
		"date_issued": prescription.DateIssued,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create prescription", err)
	}
	return nil
}

// GetByID retrieves a prescription by ID
func (a *PrescriptionAdapter) GetByID(ctx context.Context, id string) (*entities.Prescription, error) {
	query, args, err := a.db.Select(prescriptionColumns...).
		From("prescriptions").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	prescription := &entities.Prescription{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&prescription.ID,
		&prescription.VisitID,
		&prescription.StudentID,
		&prescription.MedicineID,
		&prescription.DoctorID,
		&prescription.Dosage,
		&prescription.Duration,
		&prescription.DateIssued,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("prescription with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get prescription", err)
	}
	return prescription, nil
}

// ListByStudent retrieves prescriptions for a student
func (a *PrescriptionAdapter) ListByStudent(ctx context.Context, studentID string) ([]*entities.Prescription, error) {
	ds := a.db.Select(prescriptionColumns...).
		From("prescriptions").
		Where(goqu.Ex{"student_id": studentID}).
		Order(goqu.I("date_issued").Desc())

	return a.queryPrescriptions(ctx, ds)
}

// ListByVisit retrieves prescriptions issued during a visit
func (a *PrescriptionAdapter) ListByVisit(ctx context.Context, visitID string) ([]*entities.Prescription, error) {
	ds := a.db.Select(prescriptionColumns...).
		From("prescriptions").
		Where(goqu.Ex{"visit_id": visitID}).
		Order(goqu.I("date_issued").Desc())

	return a.queryPrescriptions(ctx, ds)
}

func (a *PrescriptionAdapter) queryPrescriptions(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Prescription, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list prescriptions", err)
	}
	defer rows.Close()

	var prescriptions []*entities.Prescription
	for rows.Next() {
		prescription := &entities.Prescription{}
		err := rows.Scan(
			&prescription.ID,
			&prescription.VisitID,
			&prescription.StudentID,
			&prescription.MedicineID,
			&prescription.DoctorID,
			&prescription.Dosage,
			&prescription.Duration,
			&prescription.DateIssued,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan prescription", err)
		}
		prescriptions = append(prescriptions, prescription)
	}
	return prescriptions, nil
}
