package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/caixazul/treasury_backend/internal/core/domain"
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
)

type PgxNotificationRepository struct {
	BaseRepository
}

// newPgxNotificationRepository creates a new repository for notifications.
func newPgxNotificationRepository(db DB) portsrepo.NotificationRepositoryFacade {
	return &PgxNotificationRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.NotificationRepositoryFacade = (*PgxNotificationRepository)(nil)

// SaveNotification inserts one notice.
func (r *PgxNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	query := `INSERT INTO notifications (notification_id, admin_id, type, title, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		notification.NotificationID, notification.AdminID, notification.Type,
		notification.Title, notification.Message, notification.Read, notification.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save notification %s: %w", notification.NotificationID, err)
	}
	return nil
}

// ListNotifications retrieves the tenant's notices, newest first. A limit of
// zero or less means no limit.
func (r *PgxNotificationRepository) ListNotifications(ctx context.Context, adminID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	query := `SELECT notification_id, admin_id, type, title, message, read, created_at
		FROM notifications
		WHERE admin_id = $1`
	if unreadOnly {
		query += ` AND read = false`
	}
	query += ` ORDER BY created_at DESC`
	args := []any{adminID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.NotificationID, &n.AdminID, &n.Type, &n.Title, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}
	return notifications, nil
}

// MarkNotificationsRead flags the given notices read as one batched write.
// Unknown ids are ignored.
func (r *PgxNotificationRepository) MarkNotificationsRead(ctx context.Context, adminID string, notificationIDs []string, now time.Time) error {
	if len(notificationIDs) == 0 {
		return nil
	}
	query := `UPDATE notifications SET read = true WHERE admin_id = $1 AND notification_id = $2`
	batch := &pgx.Batch{}
	for _, id := range notificationIDs {
		batch.Queue(query, adminID, id)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for range notificationIDs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to mark notification read: %w", err)
		}
	}
	return nil
}
