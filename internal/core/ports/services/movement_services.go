package services

import (
	"context"
	"time"

	"github.com/caixazul/treasury_backend/internal/core/domain"
	"github.com/caixazul/treasury_backend/internal/dto"
)

// MovementSvcFacade exposes the bank-movement ledger operations, including
// the reversal protocol and the reconciliation toggle.
type MovementSvcFacade interface {
	// CreateManualMovement records a standalone inflow or outflow.
	CreateManualMovement(ctx context.Context, adminID string, req dto.CreateMovementRequest) (*domain.BankMovement, error)

	// CreateTransfer records a linked pair of movements moving money between
	// two accounts; both legs are written atomically.
	CreateTransfer(ctx context.Context, adminID string, req dto.TransferRequest) ([]domain.BankMovement, error)

	// ListMovements returns an account's movements within a date range.
	ListMovements(ctx context.Context, adminID, accountID string, from, to time.Time) ([]domain.BankMovement, error)

	// SetReconciled toggles the reconciliation flag on every named movement
	// as one batch. A missing id aborts the whole batch.
	SetReconciled(ctx context.Context, adminID string, movementIDs []string, value bool) error

	// ReverseMovement executes the reversal protocol on one movement and
	// returns the counter-entry. The whole operation is atomic: flagging the
	// original, inserting the counter-entry, and (for accrual-linked
	// movements) flagging the settlement line, recording the audit line and
	// recomputing the parent's totals and status all commit together or not
	// at all.
	ReverseMovement(ctx context.Context, adminID, movementID, reason string) (*domain.BankMovement, error)
}
