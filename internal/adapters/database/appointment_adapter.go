package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	"github.com/campuscare/clinic-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

var appointmentColumns = []interface{}{
	"id", "student_id", "doctor_id", "appointment_date", "appointment_time",
	"symptoms", "status", "created_at", "updated_at",
}

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(client *postgres.Client) repositories.AppointmentRepository {
	return &AppointmentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// CreateIfSlotFree inserts the appointment unless a non-cancelled one
// already holds the same (doctor, date, time). The slot check and the
// insert share a transaction, so two concurrent bookings of the same slot
// serialize on the doctor's row set and the loser sees the winner's row.
func (a *AppointmentAdapter) CreateIfSlotFree(ctx context.Context, appointment *entities.Appointment) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	// FOR UPDATE locks any existing slot row, so a concurrent booking of
	// the same slot blocks here until this transaction resolves.
	checkQuery, checkArgs, err := a.db.Select("id").
		From("appointments").
		Where(goqu.Ex{
			"doctor_id":        appointment.DoctorID,
			"appointment_date": appointment.Date,
			"appointment_time": appointment.Time,
		}).
		Where(goqu.C("status").Neq(entities.AppointmentStatusCancelled)).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build slot check query", err)
	}

	rows, err := tx.QueryContext(ctx, checkQuery, checkArgs...)
	if err != nil {
		return apperrors.NewInternalError("failed to check slot occupancy", err)
	}
	taken := rows.Next()
	rows.Close()
	if taken {
		return apperrors.NewConflictError("This time slot is no longer available. Please select another time.")
	}

	insertQuery, insertArgs, err := a.db.Insert("appointments").Rows(goqu.Record{
		"id":               appointment.ID,
		"student_id":       appointment.StudentID,
		"doctor_id":        appointment.DoctorID,
		"appointment_date": appointment.Date,
		"appointment_time": appointment.Time,
		"symptoms":         appointment.Symptoms,
		"status":           appointment.Status,
		"created_at":       appointment.CreatedAt,
		"updated_at":       appointment.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return apperrors.NewInternalError("failed to create appointment", err)
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit booking", err)
	}
	return nil
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	query, args, err := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	appointment := &entities.Appointment{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&appointment.StudentID,
		&appointment.DoctorID,
		&appointment.Date,
		&appointment.Time,
		&appointment.Symptoms,
		&appointment.Status,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get appointment", err)
	}

	return appointment, nil
}

// UpdateStatus moves an appointment to the given status
func (a *AppointmentAdapter) UpdateStatus(ctx context.Context, id string, status entities.AppointmentStatus) error {
	query, args, err := a.db.Update("appointments").
		Set(goqu.Record{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update appointment status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("appointment with id %s not found", id))
	}

	return nil
}

// ListByStudent retrieves appointments for a student
func (a *AppointmentAdapter) ListByStudent(ctx context.Context, studentID string, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{"student_id": studentID})

	ds = applyAppointmentFilter(ds, filter).
		Order(goqu.I("appointment_date").Desc(), goqu.I("appointment_time").Desc())

	return a.queryAppointments(ctx, ds)
}

// ListActiveByDoctorDate retrieves the non-cancelled appointments for a
// doctor on a calendar day
func (a *AppointmentAdapter) ListActiveByDoctorDate(ctx context.Context, doctorID, date string) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).
		From("appointments").
		Where(goqu.Ex{
			"doctor_id":        doctorID,
			"appointment_date": date,
		}).
		Where(goqu.C("status").Neq(entities.AppointmentStatusCancelled)).
		Order(goqu.I("appointment_time").Asc())

	return a.queryAppointments(ctx, ds)
}

// CountActiveAt counts non-cancelled appointments at an exact slot
func (a *AppointmentAdapter) CountActiveAt(ctx context.Context, doctorID, date, tm string) (int, error) {
	query, args, err := a.db.Select(goqu.COUNT("*")).
		From("appointments").
		Where(goqu.Ex{
			"doctor_id":        doctorID,
			"appointment_date": date,
			"appointment_time": tm,
		}).
		Where(goqu.C("status").Neq(entities.AppointmentStatusCancelled)).
		ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewInternalError("failed to count appointments", err)
	}
	return count, nil
}

// List retrieves all appointments matching the filter
func (a *AppointmentAdapter) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	ds := a.db.Select(appointmentColumns...).From("appointments")

	ds = applyAppointmentFilter(ds, filter).
		Order(goqu.I("appointment_date").Desc(), goqu.I("appointment_time").Desc())

	return a.queryAppointments(ctx, ds)
}

func applyAppointmentFilter(ds *goqu.SelectDataset, filter repositories.AppointmentFilter) *goqu.SelectDataset {
	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}
	if filter.Date != "" {
		ds = ds.Where(goqu.Ex{"appointment_date": filter.Date})
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}
	return ds
}

func (a *AppointmentAdapter) queryAppointments(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Appointment, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list appointments", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		appointment := &entities.Appointment{}
		err := rows.Scan(
			&appointment.ID,
			&appointment.StudentID,
			&appointment.DoctorID,
			&appointment.Date,
			&appointment.Time,
			&appointment.Symptoms,
			&appointment.Status,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan appointment", err)
		}
		appointments = append(appointments, appointment)
	}

	return appointments, nil
}
