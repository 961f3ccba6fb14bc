package repositories

import (
	"context"
	"time"

	"github.com/caixazul/treasury_backend/internal/core/domain"
)

// PayableReader defines read operations for payables (despesas).
type PayableReader interface {
	FindPayableByID(ctx context.Context, adminID, payableID string) (*domain.Payable, error)

	// FindPayableByIDForUpdate locks the header row for the enclosing
	// transaction; all total mutations must go through this read.
	FindPayableByIDForUpdate(ctx context.Context, adminID, payableID string) (*domain.Payable, error)

	// ListPayables retrieves the tenant's payables, optionally filtered to a
	// set of statuses, ordered by due date.
	ListPayables(ctx context.Context, adminID string, statuses []domain.SettlementStatus) ([]domain.Payable, error)
}

// PayableWriter defines write operations for payables.
type PayableWriter interface {
	SavePayable(ctx context.Context, payable domain.Payable) error

	// UpdatePayableTotals writes recomputed running totals and status. The
	// expectedVersion guard makes the write a compare-and-swap: a stale
	// version fails with ErrConcurrencyConflict.
	UpdatePayableTotals(ctx context.Context, adminID, payableID string, totalPaid, remainingBalance int64, status domain.SettlementStatus, expectedVersion int64, userID string, now time.Time) error
}

// ReceivableReader defines read operations for receivables (receitas).
type ReceivableReader interface {
	FindReceivableByID(ctx context.Context, adminID, receivableID string) (*domain.Receivable, error)
	FindReceivableByIDForUpdate(ctx context.Context, adminID, receivableID string) (*domain.Receivable, error)
	ListReceivables(ctx context.Context, adminID string, statuses []domain.SettlementStatus) ([]domain.Receivable, error)
}

// ReceivableWriter defines write operations for receivables.
type ReceivableWriter interface {
	SaveReceivable(ctx context.Context, receivable domain.Receivable) error
	UpdateReceivableTotals(ctx context.Context, adminID, receivableID string, totalReceived, pendingBalance int64, status domain.SettlementStatus, expectedVersion int64, userID string, now time.Time) error
}

// SettlementReader defines read operations for settlement lines.
type SettlementReader interface {
	FindSettlementByID(ctx context.Context, adminID, settlementID string) (*domain.Settlement, error)
	FindSettlementByIDForUpdate(ctx context.Context, adminID, settlementID string) (*domain.Settlement, error)
	ListSettlementsByParent(ctx context.Context, adminID string, kind domain.AccrualKind, parentID string) ([]domain.Settlement, error)
}

// SettlementWriter defines write operations for settlement lines.
type SettlementWriter interface {
	SaveSettlement(ctx context.Context, settlement domain.Settlement) error

	// MarkSettlementReversed flags the line reversed; fails with
	// ErrOriginAlreadyReversed if the flag was already set.
	MarkSettlementReversed(ctx context.Context, adminID, settlementID, userID string, now time.Time) error
}

// PayableRepositoryFacade combines the payable interfaces.
type PayableRepositoryFacade interface {
	PayableReader
	PayableWriter
}

// ReceivableRepositoryFacade combines the receivable interfaces.
type ReceivableRepositoryFacade interface {
	ReceivableReader
	ReceivableWriter
}

// SettlementRepositoryFacade combines the settlement interfaces.
type SettlementRepositoryFacade interface {
	SettlementReader
	SettlementWriter
}
