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

var bedColumns = []interface{}{
	"id", "bed_number", "status", "assigned_student_id",
	"checkin_time", "checkout_time", "reason", "nurse_notes",
}

// BedAdapter implements the BedRepository interface
type BedAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBedAdapter creates a new bed adapter
func NewBedAdapter(client *postgres.Client) repositories.BedRepository {
	return &BedAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// List retrieves all beds ordered by bed number
func (a *BedAdapter) List(ctx context.Context) ([]*entities.Bed, error) {
	query, args, err := a.db.Select(bedColumns...).
		From("beds").
		Order(goqu.I("bed_number").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list beds", err)
	}
	defer rows.Close()

	var beds []*entities.Bed
	for rows.Next() {
		bed, err := scanBed(rows.Scan)
		if err != nil {
			return nil, err
		}
		beds = append(beds, bed)
	}
	return beds, nil
}

// GetByID retrieves a bed by ID
func (a *BedAdapter) GetByID(ctx context.Context, id string) (*entities.Bed, error) {
	query, args, err := a.db.Select(bedColumns...).
		From("beds").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	row := a.client.DB().QueryRowContext(ctx, query, args...)
	bed, err := scanBed(row.Scan)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("bed with id %s not found", id))
		}
		return nil, err
	}
	return bed, nil
}

// Update updates a bed's occupancy state
func (a *BedAdapter) Update(ctx context.Context, bed *entities.Bed) error {
	query, args, err := a.db.Update("beds").
		Set(goqu.Record{
			"status":              bed.Status,
			"assigned_student_id": bed.AssignedStudentID,
			"checkin_time":        bed.CheckinTime,
			"checkout_time":       bed.CheckoutTime,
			"reason":              bed.Reason,
			"nurse_notes":         bed.NurseNotes,
		}).
		Where(goqu.Ex{"id": bed.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update bed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("bed with id %s not found", bed.ID))
	}
	return nil
}

func scanBed(scan func(dest ...interface{}) error) (*entities.Bed, error) {
	bed := &entities.Bed{}
	var assignedStudentID sql.NullString
	var checkinTime, checkoutTime sql.NullTime
	var reason, nurseNotes sql.NullString

	err := scan(
		&bed.ID,
		&bed.BedNumber,
		&bed.Status,
		&assignedStudentID,
		&checkinTime,
		&checkoutTime,
		&reason,
		&nurseNotes,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("bed not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to scan bed", err)
	}

	if assignedStudentID.Valid {
		bed.AssignedStudentID = &assignedStudentID.String
	}
	if checkinTime.Valid {
		t := checkinTime.Time
		bed.CheckinTime = &t
	}
	if checkoutTime.Valid {
		t := checkoutTime.Time
		bed.CheckoutTime = &t
	}
	bed.Reason = reason.String
	bed.NurseNotes = nurseNotes.String

	return bed, nil
}
