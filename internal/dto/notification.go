package dto

import (
	"time"

	"github.com/caixazul/treasury_backend/internal/core/domain"
)

// NotificationResponse is the API representation of a notification.
type NotificationResponse struct {
	ID        string                  `json:"id"`
	Type      domain.NotificationType `json:"tipo"`
	Title     string                  `json:"titulo"`
	Message   string                  `json:"mensagem"`
	Read      bool                    `json:"lida"`
	CreatedAt time.Time               `json:"createdAt"`
}

// MarkNotificationsReadRequest marks a set of notifications as read.
type MarkNotificationsReadRequest struct {
	NotificationIDs []string `json:"notificacaoIds" binding:"required,min=1"`
}

// ToNotificationResponses maps domain notifications.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = NotificationResponse{
			ID:        n.NotificationID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		}
	}
	return out
}
