package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/caixazul/treasury_backend/internal/core/domain"
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/middleware"
	"github.com/caixazul/treasury_backend/internal/utils"
)

// dueSoonWindow is how far ahead RefreshDueNotifications looks for upcoming
// due dates.
const dueSoonWindow = 3 * 24 * time.Hour

// notificationService records and serves user-facing notices.
type notificationService struct {
	notificationRepo portsrepo.NotificationRepositoryFacade
	payableRepo      portsrepo.PayableRepositoryFacade
	receivableRepo   portsrepo.ReceivableRepositoryFacade
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notificationRepo portsrepo.NotificationRepositoryFacade, payableRepo portsrepo.PayableRepositoryFacade, receivableRepo portsrepo.ReceivableRepositoryFacade) portssvc.NotificationSvcFacade {
	return &notificationService{
		notificationRepo: notificationRepo,
		payableRepo:      payableRepo,
		receivableRepo:   receivableRepo,
	}
}

var _ portssvc.NotificationSvcFacade = (*notificationService)(nil)

// ListNotifications retrieves the tenant's notices, newest first.
func (s *notificationService) ListNotifications(ctx context.Context, adminID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	return s.notificationRepo.ListNotifications(ctx, adminID, unreadOnly, limit)
}

// MarkRead flags the given notices as read.
func (s *notificationService) MarkRead(ctx context.Context, adminID string, notificationIDs []string) error {
	if len(notificationIDs) == 0 {
		return nil
	}
	return s.notificationRepo.MarkNotificationsRead(ctx, adminID, notificationIDs, time.Now().UTC())
}

// NotifyReversal records a notice for a committed reversal. Errors are logged
// and swallowed; the ledger write already happened and must not be retried for
// the sake of a notice.
func (s *notificationService) NotifyReversal(ctx context.Context, adminID string, movement *domain.BankMovement, reason string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	amount := utils.FromCents(movement.Amount).Abs()
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		AdminID:        adminID,
		Type:           domain.NotificationReversal,
		Title:          "Movimentação estornada",
		Message:        fmt.Sprintf("Estorno de R$ %s: %s. Motivo: %s", amount.StringFixed(2), movement.Description, reason),
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		logger.Error("Failed to record reversal notification",
			slog.String("movement_id", movement.MovementID),
			slog.String("error", err.Error()))
	}
}

// RefreshDueNotifications scans open payables and receivables and records one
// notice per header that is overdue or due within the next three days. It
// returns how many notices were written.
func (s *notificationService) RefreshDueNotifications(ctx context.Context, adminID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	openStatuses := []domain.SettlementStatus{
		domain.StatusPending,
		domain.StatusOverdue,
		domain.StatusPartiallyPaid,
		domain.StatusPartiallyReceived,
	}

	payables, err := s.payableRepo.ListPayables(ctx, adminID, openStatuses)
	if err != nil {
		return 0, fmt.Errorf("failed to list payables: %w", err)
	}
	receivables, err := s.receivableRepo.ListReceivables(ctx, adminID, openStatuses)
	if err != nil {
		return 0, fmt.Errorf("failed to list receivables: %w", err)
	}

	now := time.Now().UTC()
	written := 0
	for i := range payables {
		p := &payables[i]
		n, ok := dueNotice(adminID, "despesa", p.Description, utils.FromCents(p.RemainingBalance), p.DueDate, now)
		if !ok {
			continue
		}
		if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
			return written, fmt.Errorf("failed to save due notification: %w", err)
		}
		written++
	}
	for i := range receivables {
		r := &receivables[i]
		n, ok := dueNotice(adminID, "receita", r.Description, utils.FromCents(r.PendingBalance), r.DueDate, now)
		if !ok {
			continue
		}
		if err := s.notificationRepo.SaveNotification(ctx, n); err != nil {
			return written, fmt.Errorf("failed to save due notification: %w", err)
		}
		written++
	}

	logger.Info("Due notifications refreshed", slog.Int("written", written))
	return written, nil
}

// dueNotice builds the overdue or due-soon notice for one header, or reports
// that the header needs none.
func dueNotice(adminID, kindLabel, description string, balance decimal.Decimal, dueDate, now time.Time) (domain.Notification, bool) {
	today := truncateToDay(now)
	due := truncateToDay(dueDate)

	var typ domain.NotificationType
	var title string
	switch {
	case due.Before(today):
		typ = domain.NotificationOverdue
		title = fmt.Sprintf("Vencida: %s", kindLabel)
	case !due.After(today.Add(dueSoonWindow)):
		typ = domain.NotificationDueSoon
		title = fmt.Sprintf("Vencimento próximo: %s", kindLabel)
	default:
		return domain.Notification{}, false
	}

	return domain.Notification{
		NotificationID: uuid.NewString(),
		AdminID:        adminID,
		Type:           typ,
		Title:          title,
		Message:        fmt.Sprintf("%s vence em %s, saldo R$ %s", description, due.Format("02/01/2006"), balance.StringFixed(2)),
		CreatedAt:      now,
	}, true
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
