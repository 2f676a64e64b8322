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

var medicineColumns = []interface{}{
	"id", "name", "quantity", "expiry_date", "category", "threshold", "updated_at",
}

// MedicineInventoryAdapter implements the MedicineInventoryRepository interface
type MedicineInventoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMedicineInventoryAdapter creates a new inventory adapter
func NewMedicineInventoryAdapter(client *postgres.Client) repositories.MedicineInventoryRepository {
	return &MedicineInventoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create adds a new item to the inventory
func (a *MedicineInventoryAdapter) Create(ctx context.Context, item *entities.MedicineItem) error {
	query, args, err := a.db.Insert("medicine_inventory").Rows(goqu.Record{
		"id":          item.ID,
		"name":        item.Name,
		"quantity":    item.Quantity,
		"expiry_date": item.ExpiryDate,
		"category":    item.Category,
		"threshold":   item.Threshold,
		"updated_at":  item.UpdatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create inventory item", err)
	}
	return nil
}

// GetByID retrieves an inventory item by ID
func (a *MedicineInventoryAdapter) GetByID(ctx context.Context, id string) (*entities.MedicineItem, error) {
	query, args, err := a.db.Select(medicineColumns...).
		From("medicine_inventory").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	item := &entities.MedicineItem{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.ExpiryDate,
		&item.Category,
		&item.Threshold,
		&item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get inventory item", err)
	}
	return item, nil
}

// Update updates an inventory item
func (a *MedicineInventoryAdapter) Update(ctx context.Context, item *entities.MedicineItem) error {
	item.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("medicine_inventory").
		Set(goqu.Record{
			"name":        item.Name,
			"quantity":    item.Quantity,
			"expiry_date": item.ExpiryDate,
			"category":    item.Category,
			"threshold":   item.Threshold,
			"updated_at":  item.UpdatedAt,
		}).
		Where(goqu.Ex{"id": item.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update inventory item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", item.ID))
	}
	return nil
}

// AdjustQuantity atomically adds delta to an item's quantity and returns
// the updated item. The returning clause keeps read-modify-write races out
// of the stock count.
func (a *MedicineInventoryAdapter) AdjustQuantity(ctx context.Context, id string, delta int) (*entities.MedicineItem, error) {
	query, args, err := a.db.Update("medicine_inventory").
		Set(goqu.Record{
			"quantity":   goqu.L("quantity + ?", delta),
			"updated_at": time.Now().UTC(),
		}).
		Where(goqu.Ex{"id": id}).
		Returning(medicineColumns...).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build adjust query", err)
	}

	item := &entities.MedicineItem{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&item.ID,
		&item.Name,
		&item.Quantity,
		&item.ExpiryDate,
		&item.Category,
		&item.Threshold,
		&item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to adjust inventory quantity", err)
	}
	return item, nil
}

// List retrieves the full inventory
func (a *MedicineInventoryAdapter) List(ctx context.Context) ([]*entities.MedicineItem, error) {
	query, args, err := a.db.Select(medicineColumns...).
		From("medicine_inventory").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list inventory", err)
	}
	defer rows.Close()

	var items []*entities.MedicineItem
	for rows.Next() {
		item := &entities.MedicineItem{}
		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Quantity,
			&item.ExpiryDate,
			&item.Category,
			&item.Threshold,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan inventory item", err)
		}
		items = append(items, item)
	}
	return items, nil
}

var medicineRequestColumns = []interface{}{
	"id", "student_id", "medicine_id", "reason", "status", "issued_date", "created_at",
}

// MedicineRequestAdapter implements the MedicineRequestRepository interface
type MedicineRequestAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMedicineRequestAdapter creates a new medicine request adapter
func NewMedicineRequestAdapter(client *postgres.Client) repositories.MedicineRequestRepository {
	return &MedicineRequestAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new medicine request
func (a *MedicineRequestAdapter) Create(ctx context.Context, request *entities.MedicineRequest) error {
	query, args, err := a.db.Insert("medicine_requests").Rows(goqu.Record{
		"id":          request.ID,
		"student_id":  request.StudentID,
		"medicine_id": request.MedicineID,
		"reason":      request.Reason,
		"status":      request.Status,
		"issued_date": request.IssuedDate,
		"created_at":  request.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create medicine request", err)
	}
	return nil
}

// GetByID retrieves a medicine request by ID
func (a *MedicineRequestAdapter) GetByID(ctx context.Context, id string) (*entities.MedicineRequest, error) {
	query, args, err := a.db.Select(medicineRequestColumns...).
		From("medicine_requests").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	request := &entities.MedicineRequest{}
	var issuedDate sql.NullString
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&request.ID,
		&request.StudentID,
		&request.MedicineID,
		&request.Reason,
		&request.Status,
		&issuedDate,
		&request.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("medicine request with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get medicine request", err)
	}
	request.IssuedDate = issuedDate.String
	return request, nil
}

// Update updates a medicine request
func (a *MedicineRequestAdapter) Update(ctx context.Context, request *entities.MedicineRequest) error {
	query, args, err := a.db.Update("medicine_requests").
		Set(goqu.Record{
			"status":      request.Status,
			"issued_date": request.IssuedDate,
		}).
		Where(goqu.Ex{"id": request.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update medicine request", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("medicine request with id %s not found", request.ID))
	}
	return nil
}

// ListByStudent retrieves requests made by a student
func (a *MedicineRequestAdapter) ListByStudent(ctx context.Context, studentID string) ([]*entities.MedicineRequest, error) {
	ds := a.db.Select(medicineRequestColumns...).
		From("medicine_requests").
		Where(goqu.Ex{"student_id": studentID}).
		Order(goqu.I("created_at").Desc())

	return a.queryRequests(ctx, ds)
}

// List retrieves all medicine requests
func (a *MedicineRequestAdapter) List(ctx context.Context) ([]*entities.MedicineRequest, error) {
	ds := a.db.Select(medicineRequestColumns...).
		From("medicine_requests").
		Order(goqu.I("created_at").Desc())

	return a.queryRequests(ctx, ds)
}

func (a *MedicineRequestAdapter) queryRequests(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.MedicineRequest, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list medicine requests", err)
	}
	defer rows.Close()

	var requests []*entities.MedicineRequest
	for rows.Next() {
		request := &entities.MedicineRequest{}
		var issuedDate sql.NullString
		err := rows.Scan(
			&request.ID,
			&request.StudentID,
			&request.MedicineID,
			&request.Reason,
			&request.Status,
			&issuedDate,
			&request.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan medicine request", err)
		}
		request.IssuedDate = issuedDate.String
		requests = append(requests, request)
	}
	return requests, nil
}
