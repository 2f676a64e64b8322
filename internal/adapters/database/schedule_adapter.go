package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	"github.com/campuscare/clinic-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

var scheduleColumns = []interface{}{
	"id", "staff_id", "shift_date", "start_time", "end_time", "shift_type",
}

// ScheduleAdapter implements the ScheduleRepository interface
type ScheduleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewScheduleAdapter creates a new schedule adapter
func NewScheduleAdapter(client *postgres.Client) repositories.ScheduleRepository {
	return &ScheduleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new schedule entry
func (a *ScheduleAdapter) Create(ctx context.Context, schedule *entities.StaffSchedule) error {
	query, args, err := a.db.Insert("staff_schedules").Rows(goqu.Record{
		"id":         schedule.ID,
		"staff_id":   schedule.StaffID,
		"shift_date": schedule.Date,
		"start_time": schedule.StartTime,
		"end_time":   schedule.EndTime,
		"shift_type": schedule.ShiftType,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create schedule entry", err)
	}
	return nil
}

// List retrieves all schedule entries
func (a *ScheduleAdapter) List(ctx context.Context) ([]*entities.StaffSchedule, error) {
	ds := a.db.Select(scheduleColumns...).
		From("staff_schedules").
		Order(goqu.I("shift_date").Asc(), goqu.I("start_time").Asc())

	return a.querySchedules(ctx, ds)
}

// ListByStaff retrieves schedule entries for a staff member
func (a *ScheduleAdapter) ListByStaff(ctx context.Context, staffID string) ([]*entities.StaffSchedule, error) {
	ds := a.db.Select(scheduleColumns...).
		From("staff_schedules").
		Where(goqu.Ex{"staff_id": staffID}).
		Order(goqu.I("shift_date").Asc(), goqu.I("start_time").Asc())

	return a.querySchedules(ctx, ds)
}

func (a *ScheduleAdapter) querySchedules(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.StaffSchedule, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list schedules", err)
	}
	defer rows.Close()

	var schedules []*entities.StaffSchedule
	for rows.Next() {
		schedule := &entities.StaffSchedule{}
		err := rows.Scan(
			&schedule.ID,
			&schedule.StaffID,
			&schedule.Date,
			&schedule.StartTime,
			&schedule.EndTime,
			&schedule.ShiftType,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan schedule entry", err)
		}
		schedules = append(schedules, schedule)
	}
	return schedules, nil
}

var symptomCheckColumns = []interface{}{
	"id", "student_id", "symptoms", "priority_level", "suggested_action", "created_at",
}

// SymptomCheckAdapter implements the SymptomCheckRepository interface
type SymptomCheckAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSymptomCheckAdapter creates a new symptom check adapter
func NewSymptomCheckAdapter(client *postgres.Client) repositories.SymptomCheckRepository {
	return &SymptomCheckAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends an immutable symptom-check audit record
func (a *SymptomCheckAdapter) Create(ctx context.Context, check *entities.SymptomCheck) error {
	query, args, err := a.db.Insert("symptom_checks").Rows(goqu.Record{
		"id":               check.ID,
		"student_id":       check.StudentID,
		"symptoms":         pq.Array(check.Symptoms),
		"priority_level":   check.PriorityLevel,
		"suggested_action": check.SuggestedAction,
		"created_at":       check.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create symptom check", err)
	}
	return nil
}

// ListByStudent retrieves the audit records for a student
func (a *SymptomCheckAdapter) ListByStudent(ctx context.Context, studentID string) ([]*entities.SymptomCheck, error) {
	query, args, err := a.db.Select(symptomCheckColumns...).
		From("symptom_checks").
		Where(goqu.Ex{"student_id": studentID}).
		Order(goqu.I("created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list symptom checks", err)
	}
	defer rows.Close()

	var checks []*entities.SymptomCheck
	for rows.Next() {
		check := &entities.SymptomCheck{}
		err := rows.Scan(
			&check.ID,
			&check.StudentID,
			pq.Array(&check.Symptoms),
			&check.PriorityLevel,
			&check.SuggestedAction,
			&check.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan symptom check", err)
		}
		checks = append(checks, check)
	}
	return checks, nil
}
