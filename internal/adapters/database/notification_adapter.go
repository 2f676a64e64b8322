package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
	"github.com/campuscare/clinic-backend/internal/domain/repositories"
	"github.com/campuscare/clinic-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/campuscare/clinic-backend/pkg/errors"
)

var notificationColumns = []interface{}{
	"id", "title", "message", "recipient_scope", "recipient_role",
	"recipient_user_id", "send_time", "read",
}

// NotificationAdapter implements the NotificationRepository interface
type NotificationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewNotificationAdapter creates a new notification adapter
func NewNotificationAdapter(client *postgres.Client) repositories.NotificationRepository {
	return &NotificationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new notification
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	query, args, err := a.db.Insert("notifications").Rows(goqu.Record{
		"id":                notification.ID,
		"title":             notification.Title,
		"message":           notification.Message,
		"recipient_scope":   notification.Recipient.Scope,
		"recipient_role":    notification.Recipient.Role,
		"recipient_user_id": notification.Recipient.UserID,
		"send_time":         notification.SendTime,
		"read":              notification.Read,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create notification", err)
	}
	return nil
}

// ListForUser retrieves the notifications visible to a user: everyone-scoped
// ones, ones for the user's role, and ones addressed to the user directly.
// Doctors and nurses additionally see Staff-scoped notifications.
func (a *NotificationAdapter) ListForUser(ctx context.Context, userID string, role entities.Role) ([]*entities.Notification, error) {
	roleTargets := []interface{}{string(role)}
	if role.IsStaff() {
		roleTargets = append(roleTargets, string(entities.TargetStaff))
	}

	ds := a.db.Select(notificationColumns...).
		From("notifications").
		Where(goqu.Or(
			goqu.Ex{"recipient_scope": entities.ScopeEveryone},
			goqu.And(
				goqu.Ex{"recipient_scope": entities.ScopeRole},
				goqu.C("recipient_role").In(roleTargets...),
			),
			goqu.And(
				goqu.Ex{"recipient_scope": entities.ScopeUser},
				goqu.Ex{"recipient_user_id": userID},
			),
		)).
		Order(goqu.I("send_time").Desc())

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}
	defer rows.Close()

	var notifications []*entities.Notification
	for rows.Next() {
		notification := &entities.Notification{}
		var recipientRole, recipientUserID sql.NullString
		err := rows.Scan(
			&notification.ID,
			&notification.Title,
			&notification.Message,
			&notification.Recipient.Scope,
			&recipientRole,
			&recipientUserID,
			&notification.SendTime,
			&notification.Read,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan notification", err)
		}
		notification.Recipient.Role = entities.TargetRole(recipientRole.String)
		notification.Recipient.UserID = recipientUserID.String
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

// MarkRead marks a notification as read
func (a *NotificationAdapter) MarkRead(ctx context.Context, id string) error {
	query, args, err := a.db.Update("notifications").
		Set(goqu.Record{"read": true}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to mark notification read", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError("notification not found")
	}
	return nil
}

// BroadcastAdapter implements the BroadcastRepository interface
type BroadcastAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBroadcastAdapter creates a new broadcast adapter
func NewBroadcastAdapter(client *postgres.Client) repositories.BroadcastRepository {
	return &BroadcastAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new broadcast
func (a *BroadcastAdapter) Create(ctx context.Context, broadcast *entities.Broadcast) error {
	query, args, err := a.db.Insert("broadcasts").Rows(goqu.Record{
		"id":        broadcast.ID,
		"title":     broadcast.Title,
		"content":   broadcast.Content,
		"post_date": broadcast.PostDate,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create broadcast", err)
	}
	return nil
}

// List retrieves all broadcasts, newest first
func (a *BroadcastAdapter) List(ctx context.Context) ([]*entities.Broadcast, error) {
	query, args, err := a.db.Select("id", "title", "content", "post_date").
		From("broadcasts").
		Order(goqu.I("post_date").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list broadcasts", err)
	}
	defer rows.Close()

	var broadcasts []*entities.Broadcast
	for rows.Next() {
		broadcast := &entities.Broadcast{}
		err := rows.Scan(
			&broadcast.ID,
			&broadcast.Title,
			&broadcast.Content,
			&broadcast.PostDate,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan broadcast", err)
		}
		broadcasts = append(broadcasts, broadcast)
	}
	return broadcasts, nil
}
