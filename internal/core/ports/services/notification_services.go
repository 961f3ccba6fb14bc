package services

import (
	"context"

	"github.com/caixazul/treasury_backend/internal/core/domain"
)

// NotificationSvcFacade exposes notification operations. Creation happens
// outside any store transaction; a lost notification is acceptable, a
// duplicated ledger write is not.
type NotificationSvcFacade interface {
	ListNotifications(ctx context.Context, adminID string, unreadOnly bool, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, adminID string, notificationIDs []string) error

	// NotifyReversal records a notice that a movement was reversed. Failures
	// are logged, never propagated: the reversal itself already committed.
	NotifyReversal(ctx context.Context, adminID string, movement *domain.BankMovement, reason string)

	// RefreshDueNotifications scans payables and receivables due within the
	// next three days or already overdue and records a notice for each.
	RefreshDueNotifications(ctx context.Context, adminID string) (int, error)
}
