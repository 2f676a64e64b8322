package handlers

import (
	"context"
	"net/http"

	"github.com/campuscare/clinic-backend/internal/domain/entities"
)

// NotificationService defines the interface for notification operations
type NotificationService interface {
	ListForUser(ctx context.Context, userID string, role entities.Role) ([]*entities.Notification, error)
	MarkRead(ctx context.Context, id string) error
	PostBroadcast(ctx context.Context, title, content string) (*entities.Broadcast, error)
	ListBroadcasts(ctx context.Context) ([]*entities.Broadcast, error)
}

// NotificationHandler handles notification and broadcast endpoints
type NotificationHandler struct {
	service NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

type broadcastRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// ListUserNotifications handles GET /api/users/{id}/notifications.
// The role query parameter widens role-scoped visibility; an unknown or
// missing role sees only direct and everyone-scoped notifications.
func (h *NotificationHandler) ListUserNotifications(w http.ResponseWriter, r *http.Request) {
	role := entities.Role(r.URL.Query().Get("role"))

	notifications, err := h.service.ListForUser(r.Context(), r.PathValue("id"), role)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications})
}

// MarkNotificationRead handles POST /api/notifications/{id}/read
func (h *NotificationHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.service.MarkRead(r.Context(), r.PathValue("id")); err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

// PostBroadcast handles POST /api/broadcasts
func (h *NotificationHandler) PostBroadcast(w http.ResponseWriter, r *http.Request) {
	var req broadcastRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	broadcast, err := h.service.PostBroadcast(r.Context(), req.Title, req.Content)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, broadcast)
}

// ListBroadcasts handles GET /api/broadcasts
func (h *NotificationHandler) ListBroadcasts(w http.ResponseWriter, r *http.Request) {
	broadcasts, err := h.service.ListBroadcasts(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"broadcasts": broadcasts})
}
