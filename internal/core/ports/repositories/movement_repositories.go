package repositories

import (
	"context"
	"time"

	"github.com/caixazul/treasury_backend/internal/core/domain"
)

// MovementReader defines read operations for bank movements.
type MovementReader interface {
	// FindMovementByID retrieves a movement scoped to one tenant.
	FindMovementByID(ctx context.Context, adminID, movementID string) (*domain.BankMovement, error)

	// FindMovementByIDForUpdate retrieves a movement and locks its row for
	// the remainder of the enclosing transaction.
	FindMovementByIDForUpdate(ctx context.Context, adminID, movementID string) (*domain.BankMovement, error)

	// ListMovementsByAccount retrieves all movements of one account whose
	// transaction date falls within [from, to], ordered by date.
	ListMovementsByAccount(ctx context.Context, adminID, accountID string, from, to time.Time) ([]domain.BankMovement, error)

	// SumMovementsThrough returns the signed sum of all movements of an
	// account with transaction date <= asOf, reversed pairs included.
	SumMovementsThrough(ctx context.Context, adminID, accountID string, asOf time.Time) (int64, error)

	// FindExistingMovementIDs reports which of the given ids exist for the
	// tenant.
	FindExistingMovementIDs(ctx context.Context, adminID string, movementIDs []string) (map[string]bool, error)
}

// MovementWriter defines write operations for bank movements.
type MovementWriter interface {
	// SaveMovement inserts a single movement.
	SaveMovement(ctx context.Context, movement domain.BankMovement) error

	// SaveMovements inserts several movements as one batched write.
	SaveMovements(ctx context.Context, movements []domain.BankMovement) error

	// MarkMovementReversed flags the movement reversed and reconciled and
	// stamps the reversal reason. Fails with ErrAlreadyReversed if the flag
	// was already set, guaranteeing at-most-once reversal even under retry.
	MarkMovementReversed(ctx context.Context, adminID, movementID, reason, userID string, now time.Time) error

	// SetReconciled applies the reconciliation flag and timestamp to every
	// named movement as one batched write.
	SetReconciled(ctx context.Context, adminID string, movementIDs []string, value bool, userID string, now time.Time) error
}

// MovementRepositoryFacade combines all movement repository interfaces.
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
