package repositories

import (
	"context"
	"time"

	"github.com/caixazul/treasury_backend/internal/core/domain"
)

// NotificationRepositoryFacade defines the operations for notifications.
type NotificationRepositoryFacade interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error
	ListNotifications(ctx context.Context, adminID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkNotificationsRead(ctx context.Context, adminID string, notificationIDs []string, now time.Time) error
}
