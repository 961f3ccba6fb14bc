package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caixazul/treasury_backend/internal/apperrors"
	"github.com/caixazul/treasury_backend/internal/core/domain"
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
	"github.com/caixazul/treasury_backend/internal/middleware"
	"github.com/caixazul/treasury_backend/internal/utils/accounting"
)

// ReverseMovement executes the reversal protocol: flag the target movement,
// insert the offsetting counter-entry, and, for accrual-linked movements,
// flag the originating settlement line, record an audit line and recompute
// the parent header's totals and status. Everything runs inside one store
// transaction; preconditions are re-checked there, never against state read
// earlier, so a double submission fails with ErrAlreadyReversed instead of
// writing twice. The post-commit notification is the only side effect
// outside the atomic boundary.
func (s *movementService) ReverseMovement(ctx context.Context, adminID, movementID, reason string) (*domain.BankMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: reversal reason is required", apperrors.ErrValidation)
	}

	var counterEntry *domain.BankMovement
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		original, err := repos.MovementRepo.FindMovementByIDForUpdate(ctx, adminID, movementID)
		if err != nil {
			return fmt.Errorf("failed to fetch movement %s: %w", movementID, err)
		}
		if original.Reversed {
			return apperrors.ErrAlreadyReversed
		}
		// A reversal entry is born settled and has no origin chain of its
		// own; reversing it would fork the ledger history.
		if original.OriginType == domain.OriginReversal {
			return fmt.Errorf("%w: a reversal entry cannot itself be reversed", apperrors.ErrConflict)
		}

		now := time.Now().UTC()
		if err := repos.MovementRepo.MarkMovementReversed(ctx, adminID, movementID, reason, adminID, now); err != nil {
			return err
		}

		counter := buildCounterEntry(original, reason, adminID, now)
		if err := repos.MovementRepo.SaveMovement(ctx, counter); err != nil {
			return fmt.Errorf("failed to save counter-entry: %w", err)
		}

		if original.OriginType.HasAccrualOrigin() {
			if err := s.reverseAccrualOrigin(ctx, repos, original, &counter, reason, adminID, now); err != nil {
				return err
			}
		}

		counterEntry = &counter
		return nil
	})
	if err != nil {
		logger.Warn("Reversal failed", slog.String("movement_id", movementID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Movement reversed", slog.String("movement_id", movementID), slog.String("counter_movement_id", counterEntry.MovementID))
	if s.notificationSvc != nil {
		s.notificationSvc.NotifyReversal(ctx, adminID, counterEntry, reason)
	}
	return counterEntry, nil
}

// buildCounterEntry derives the offsetting ledger entry from the target:
// same account and date, amount negated, born reconciled.
func buildCounterEntry(original *domain.BankMovement, reason, userID string, now time.Time) domain.BankMovement {
	counter := *original
	counter.MovementID = uuid.NewString()
	counter.Amount = -original.Amount
	counter.Description = "Estorno: " + original.Description
	counter.OriginType = domain.OriginReversal
	counter.Reversed = false
	counter.ReversalOfID = &original.MovementID
	counter.ReversalReason = reason
	counter.Reconciled = true
	counter.ReconciledAt = &now
	counter.ReconciledBy = userID
	counter.TransferPairID = nil
	counter.AuditFields = stampAudit(now, userID)
	return counter
}

// reverseAccrualOrigin undoes the settlement the movement originated from:
// the settlement line is flagged, an audit line records the event, and the
// parent header's totals and status are recomputed from the locked row.
func (s *movementService) reverseAccrualOrigin(ctx context.Context, repos portsrepo.RepositoryProvider, original *domain.BankMovement, counter *domain.BankMovement, reason, adminID string, now time.Time) error {
	if original.OriginID == nil || original.OriginParentID == nil {
		return fmt.Errorf("%w: movement %s carries no origin link", apperrors.ErrOriginNotFound, original.MovementID)
	}

	settlement, err := repos.SettlementRepo.FindSettlementByIDForUpdate(ctx, adminID, *original.OriginID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: settlement %s", apperrors.ErrOriginNotFound, *original.OriginID)
		}
		return fmt.Errorf("failed to fetch settlement %s: %w", *original.OriginID, err)
	}
	if settlement.Reversed {
		return apperrors.ErrOriginAlreadyReversed
	}

	if err := repos.SettlementRepo.MarkSettlementReversed(ctx, adminID, settlement.SettlementID, adminID, now); err != nil {
		return err
	}

	audit := domain.Settlement{
		SettlementID: uuid.NewString(),
		AdminID:      adminID,
		AccrualKind:  settlement.AccrualKind,
		ParentID:     settlement.ParentID,
		Kind:         domain.SettlementReversal,
		Principal:    settlement.Principal,
		Interest:     settlement.Interest,
		Discount:     settlement.Discount,
		SettledOn:    now,
		ReversalOfID: &settlement.SettlementID,
		Reason:       reason,
		MovementID:   &counter.MovementID,
		AuditFields:  stampAudit(now, adminID),
	}
	if err := repos.SettlementRepo.SaveSettlement(ctx, audit); err != nil {
		return fmt.Errorf("failed to save reversal audit line: %w", err)
	}

	switch original.OriginType {
	case domain.OriginPayablePayment:
		payable, err := repos.PayableRepo.FindPayableByIDForUpdate(ctx, adminID, *original.OriginParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: payable %s", apperrors.ErrOriginNotFound, *original.OriginParentID)
			}
			return fmt.Errorf("failed to fetch payable %s: %w", *original.OriginParentID, err)
		}
		newTotal := payable.TotalPaid - settlement.Principal
		newRemaining := payable.RemainingBalance + settlement.Principal
		status := accounting.RecomputeStatus(newRemaining, newTotal, payable.DueDate, now, domain.KindPayable)
		return repos.PayableRepo.UpdatePayableTotals(ctx, adminID, payable.PayableID, newTotal, newRemaining, status, payable.Version, adminID, now)

	case domain.OriginReceivableReceipt:
		receivable, err := repos.ReceivableRepo.FindReceivableByIDForUpdate(ctx, adminID, *original.OriginParentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: receivable %s", apperrors.ErrOriginNotFound, *original.OriginParentID)
			}
			return fmt.Errorf("failed to fetch receivable %s: %w", *original.OriginParentID, err)
		}
		newTotal := receivable.TotalReceived - settlement.Principal
		newPending := receivable.PendingBalance + settlement.Principal
		status := accounting.RecomputeStatus(newPending, newTotal, receivable.DueDate, now, domain.KindReceivable)
		return repos.ReceivableRepo.UpdateReceivableTotals(ctx, adminID, receivable.ReceivableID, newTotal, newPending, status, receivable.Version, adminID, now)
	}

	return fmt.Errorf("%w: unexpected origin type %s", apperrors.ErrInternal, original.OriginType)
}
