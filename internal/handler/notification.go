package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/ritmodivulga/promo-engine/internal/domain"
	"github.com/ritmodivulga/promo-engine/pkg/response"
)

// Inbox reads stored notifications for a recipient.
type Inbox interface {
	Inbox(ctx context.Context, recipient string, limit int64) ([]domain.Notification, error)
}

type NotificationHandler struct {
	inbox Inbox
}

// NewNotificationHandler accepts a nil inbox when redis is not configured.
func NewNotificationHandler(inbox Inbox) *NotificationHandler {
	return &NotificationHandler{inbox: inbox}
}

// List returns the caller's notifications, newest first. Admins may read
// any recipient through ?recipient=, which is how the shared "admin" inbox
// is reached.
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.inbox == nil {
		response.ServiceUnavailable(w, "Notifications are not configured")
		return
	}

	caller := actor(r)
	recipient := caller.UserID
	if requested := r.URL.Query().Get("recipient"); requested != "" && requested != recipient {
		if !caller.HasRole(domain.RoleAdmin) {
			response.Forbidden(w, "Only admins may read other inboxes")
			return
		}
		recipient = requested
	}

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n <= 0 {
			response.BadRequest(w, "limit must be a positive integer", err)
			return
		}
		limit = n
	}

	items, err := h.inbox.Inbox(r.Context(), recipient, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	response.Success(w, items)
}
