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

var sickLeaveColumns = []interface{}{
	"id", "student_id", "reason", "start_date", "end_date",
	"doctor_remarks", "status", "created_at",
}

// SickLeaveAdapter implements the SickLeaveRepository interface
type SickLeaveAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSickLeaveAdapter creates a new sick-leave adapter
func NewSickLeaveAdapter(client *postgres.Client) repositories.SickLeaveRepository {
	return &SickLeaveAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new sick-leave request
func (a *SickLeaveAdapter) Create(ctx context.Context, request *entities.SickLeaveRequest) error {
	query, args, err := a.db.Insert("sick_leave_requests").Rows(goqu.Record{
		"id":             request.ID,
		"student_id":     request.StudentID,
		"reason":         request.Reason,
		"start_date":     request.StartDate,
		"end_date":       request.EndDate,
		"doctor_remarks": request.DoctorRemarks,
		"status":         request.Status,
		"created_at":     request.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create sick leave request", err)
	}
	return nil
}

// GetByID retrieves a sick-leave request by ID
func (a *SickLeaveAdapter) GetByID(ctx context.Context, id string) (*entities.SickLeaveRequest, error) {
	query, args, err := a.db.Select(sickLeaveColumns...).
		From("sick_leave_requests").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	request := &entities.SickLeaveRequest{}
	var remarks sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&request.ID,
		&request.StudentID,
		&request.Reason,
		&request.StartDate,
		&request.EndDate,
		&remarks,
		&request.Status,
		&request.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("sick leave request with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get sick leave request", err)
	}
	request.DoctorRemarks = remarks.String
	return request, nil
}

// Update updates a sick-leave request
func (a *SickLeaveAdapter) Update(ctx context.Context, request *entities.SickLeaveRequest) error {
	query, args, err := a.db.Update("sick_leave_requests").
		Set(goqu.Record{
			"doctor_remarks": request.DoctorRemarks,
			"status":         request.Status,
		}).
		Where(goqu.Ex{"id": request.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update sick leave request", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("sick leave request with id %s not found", request.ID))
	}
	return nil
}

// ListByStudent retrieves requests made by a student
func (a *SickLeaveAdapter) ListByStudent(ctx context.Context, studentID string) ([]*entities.SickLeaveRequest, error) {
	ds := a.db.Select(sickLeaveColumns...).
		From("sick_leave_requests").
		Where(goqu.Ex{"student_id": studentID}).
		Order(goqu.I("created_at").Desc())

	return a.queryRequests(ctx, ds)
}

// List retrieves all sick-leave requests
func (a *SickLeaveAdapter) List(ctx context.Context) ([]*entities.SickLeaveRequest, error) {
	ds := a.db.Select(sickLeaveColumns...).
		From("sick_leave_requests").
		Order(goqu.I("created_at").Desc())

	return a.queryRequests(ctx, ds)
}

func (a *SickLeaveAdapter) queryRequests(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.SickLeaveRequest, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list sick leave requests", err)
	}
	defer rows.Close()

	var requests []*entities.SickLeaveRequest
	for rows.Next() {
		request := &entities.SickLeaveRequest{}
		var remarks sql.NullString
		err := rows.Scan(
			&request.ID,
			&request.StudentID,
			&request.Reason,
			&request.StartDate,
			&request.EndDate,
			&remarks,
			&request.Status,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan sick leave request", err)
		}
		request.DoctorRemarks = remarks.String
		requests = append(requests, request)
	}
	return requests, nil
}
