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

var studentColumns = []interface{}{
	"id", "name", "roll_number", "department", "phone", "email",
	"allergies", "chronic_conditions", "vaccination_records",
}

// StudentAdapter implements the StudentRepository interface
type StudentAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewStudentAdapter creates a new student adapter
func NewStudentAdapter(client *postgres.Client) repositories.StudentRepository {
	return &StudentAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a student by ID
func (a *StudentAdapter) GetByID(ctx context.Context, id string) (*entities.Student, error) {
	query, args, err := a.db.Select(studentColumns...).
		From("students").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	student := &entities.Student{}
	var allergies, chronic, vaccinations sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&student.ID,
		&student.Name,
		&student.RollNumber,
		&student.Department,
		&student.Phone,
		&student.Email,
		&allergies,
		&chronic,
		&vaccinations,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("student with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get student", err)
	}
	student.Allergies = allergies.String
	student.ChronicConditions = chronic.String
	student.VaccinationRecords = vaccinations.String

	return student, nil
}

// List retrieves all registered students
func (a *StudentAdapter) List(ctx context.Context) ([]*entities.Student, error) {
	query, args, err := a.db.Select(studentColumns...).
		From("students").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list students", err)
	}
	defer rows.Close()

	var students []*entities.Student
	for rows.Next() {
		student := &entities.Student{}
		var allergies, chronic, vaccinations sql.NullString
		err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.RollNumber,
			&student.Department,
			&student.Phone,
			&student.Email,
			&allergies,
			&chronic,
			&vaccinations,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan student", err)
		}
		student.Allergies = allergies.String
		student.ChronicConditions = chronic.String
		student.VaccinationRecords = vaccinations.String
		students = append(students, student)
	}
	return students, nil
}

var staffColumns = []interface{}{
	"id", "name", "role", "phone", "email", "shift_timings",
}

// StaffAdapter implements the StaffRepository interface
type StaffAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewStaffAdapter creates a new staff adapter
func NewStaffAdapter(client *postgres.Client) repositories.StaffRepository {
	return &StaffAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a staff member by ID
func (a *StaffAdapter) GetByID(ctx context.Context, id string) (*entities.Staff, error) {
	query, args, err := a.db.Select(staffColumns...).
		From("staff").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	staff := &entities.Staff{}
	var shiftTimings sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.Name,
		&staff.Role,
		&staff.Phone,
		&staff.Email,
		&shiftTimings,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("staff member with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get staff member", err)
	}
	staff.ShiftTimings = shiftTimings.String

	return staff, nil
}

// List retrieves all staff members
func (a *StaffAdapter) List(ctx context.Context) ([]*entities.Staff, error) {
	ds := a.db.Select(staffColumns...).
		From("staff").
		Order(goqu.I("name").Asc())

	return a.queryStaff(ctx, ds)
}

// ListByRole retrieves staff members holding the given role
func (a *StaffAdapter) ListByRole(ctx context.Context, role entities.Role) ([]*entities.Staff, error) {
	ds := a.db.Select(staffColumns...).
		From("staff").
		Where(goqu.Ex{"role": role}).
		Order(goqu.I("name").Asc())

	return a.queryStaff(ctx, ds)
}

func (a *StaffAdapter) queryStaff(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Staff, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list staff", err)
	}
	defer rows.Close()

	var members []*entities.Staff
	for rows.Next() {
		staff := &entities.Staff{}
		var shiftTimings sql.NullString
		err := rows.Scan(
			&staff.ID,
			&staff.Name,
			&staff.Role,
			&staff.Phone,
			&staff.Email,
			&shiftTimings,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan staff member", err)
		}
		staff.ShiftTimings = shiftTimings.String
		members = append(members, staff)
	}
	return members, nil
}
