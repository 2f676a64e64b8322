package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	"github.com/campuscare/clinic-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

var availabilityColumns = []interface{}{
	"id", "doctor_id", "window_date", "start_time", "end_time",
	"status", "notes", "created_at", "updated_at",
}

// AvailabilityAdapter implements the AvailabilityRepository interface
type AvailabilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAvailabilityAdapter creates a new availability adapter
func NewAvailabilityAdapter(client *postgres.Client) repositories.AvailabilityRepository {
	return &AvailabilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new availability window
func (a *AvailabilityAdapter) Create(ctx context.Context, window *entities.AvailabilityWindow) error {
	query, args, err := a.db.Insert("availability_windows").Rows(goqu.Record{
		"id":          window.ID,
		"doctor_id":   window.DoctorID,
		"window_date": window.Date,
		"start_time":  window.StartTime,
		"end_time":    window.EndTime,
		"status":      window.Status,
		"notes":       window.Notes,
		"created_at":  window.CreatedAt,
		"updated_at":  window.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create availability window", err)
	}
	return nil
}

// GetByID retrieves an availability window by ID
func (a *AvailabilityAdapter) GetByID(ctx context.Context, id string) (*entities.AvailabilityWindow, error) {
	query, args, err := a.db.Select(availabilityColumns...).
		From("availability_windows").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	window := &entities.AvailabilityWindow{}
	var notes sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&window.ID,
		&window.DoctorID,
		&window.Date,
		&window.StartTime,
		&window.EndTime,
		&window.Status,
		&notes,
		&window.CreatedAt,
		&window.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("availability window with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get availability window", err)
	}
	window.Notes = notes.String

	return window, nil
}

// Update updates an availability window
func (a *AvailabilityAdapter) Update(ctx context.Context, window *entities.AvailabilityWindow) error {
	window.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("availability_windows").
		Set(goqu.Record{
			"window_date": window.Date,
			"start_time":  window.StartTime,
			"end_time":    window.EndTime,
			"status":      window.Status,
			"notes":       window.Notes,
			"updated_at":  window.UpdatedAt,
		}).
		Where(goqu.Ex{"id": window.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update availability window", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("availability window with id %s not found", window.ID))
	}
	return nil
}

// Delete removes an availability window
func (a *AvailabilityAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("availability_windows").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete availability window", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("availability window with id %s not found", id))
	}
	return nil
}

// ListByDoctor retrieves all windows declared by a doctor
func (a *AvailabilityAdapter) ListByDoctor(ctx context.Context, doctorID string) ([]*entities.AvailabilityWindow, error) {
	ds := a.db.Select(availabilityColumns...).
		From("availability_windows").
		Where(goqu.Ex{"doctor_id": doctorID}).
		Order(goqu.I("window_date").Asc(), goqu.I("start_time").Asc())

	return a.queryWindows(ctx, ds)
}

// ListByDoctorDate retrieves a doctor's windows for a calendar day
func (a *AvailabilityAdapter) ListByDoctorDate(ctx context.Context, doctorID, date string) ([]*entities.AvailabilityWindow, error) {
	ds := a.db.Select(availabilityColumns...).
		From("availability_windows").
		Where(goqu.Ex{
			"doctor_id":   doctorID,
			"window_date": date,
		}).
		Order(goqu.I("start_time").Asc())

	return a.queryWindows(ctx, ds)
}

func (a *AvailabilityAdapter) queryWindows(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.AvailabilityWindow, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list availability windows", err)
	}
	defer rows.Close()

	var windows []*entities.AvailabilityWindow
	for rows.Next() {
		window := &entities.AvailabilityWindow{}
		var notes sql.NullString
		err := rows.Scan(
			&window.ID,
			&window.DoctorID,
			&window.Date,
			&window.StartTime,
			&window.EndTime,
			&window.Status,
			&notes,
			&window.CreatedAt,
			&window.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan availability window", err)
		}
		window.Notes = notes.String
		windows = append(windows, window)
	}

	return windows, nil
}
