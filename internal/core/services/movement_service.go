package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/caixazul/treasury_backend/internal/apperrors"
	"github.com/caixazul/treasury_backend/internal/core/domain"
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/dto"
	"github.com/caixazul/treasury_backend/internal/middleware"
	"github.com/caixazul/treasury_backend/internal/utils"
)

// movementService provides the bank-movement ledger operations.
type movementService struct {
	txManager       portsrepo.TransactionManager
	movementRepo    portsrepo.MovementRepositoryFacade
	accountRepo     portsrepo.BankAccountRepositoryFacade
	notificationSvc portssvc.NotificationSvcFacade
}

// NewMovementService creates a new movement service.
func NewMovementService(txManager portsrepo.TransactionManager, movementRepo portsrepo.MovementRepositoryFacade, accountRepo portsrepo.BankAccountRepositoryFacade, notificationSvc portssvc.NotificationSvcFacade) portssvc.MovementSvcFacade {
	return &movementService{
		txManager:       txManager,
		movementRepo:    movementRepo,
		accountRepo:     accountRepo,
		notificationSvc: notificationSvc,
	}
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// CreateManualMovement records a standalone inflow or outflow against one
// bank account.
func (s *movementService) CreateManualMovement(ctx context.Context, adminID string, req dto.CreateMovementRequest) (*domain.BankMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindBankAccountByID(ctx, adminID, req.BankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bank account %s: %w", req.BankAccountID, err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: bank account %s is inactive", apperrors.ErrValidation, account.AccountID)
	}

	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid transaction date", apperrors.ErrValidation)
	}

	cents, err := utils.ToCents(req.Amount)
	if err != nil {
		return nil, err
	}
	if cents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	originType := domain.OriginOtherInflow
	if req.Direction == "SAIDA" {
		originType = domain.OriginOtherOutflow
		cents = -cents
	}

	now := time.Now().UTC()
	movement := domain.BankMovement{
		MovementID:      uuid.NewString(),
		AdminID:         adminID,
		BankAccountID:   account.AccountID,
		TransactionDate: date,
		Amount:          cents,
		Description:     req.Description,
		OriginType:      originType,
		AuditFields:     stampAudit(now, adminID),
	}

	if err := s.movementRepo.SaveMovement(ctx, movement); err != nil {
		logger.Error("Failed to save manual movement", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save movement: %w", err)
	}

	logger.Info("Manual movement recorded", slog.String("movement_id", movement.MovementID), slog.Int64("valor", movement.Amount))
	return &movement, nil
}

// CreateTransfer records a linked pair of movements moving money between two
// accounts. Both legs are written in one transaction.
func (s *movementService) CreateTransfer(ctx context.Context, adminID string, req dto.TransferRequest) ([]domain.BankMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: transfer requires two different accounts", apperrors.ErrValidation)
	}

	date, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid transaction date", apperrors.ErrValidation)
	}

	cents, err := utils.ToCents(req.Amount)
	if err != nil {
		return nil, err
	}
	if cents <= 0 {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	description := req.Description
	if description == "" {
		description = "Transferência entre contas"
	}

	now := time.Now().UTC()
	outID := uuid.NewString()
	inID := uuid.NewString()

	var pair []domain.BankMovement
	err = s.txManager.WithTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		from, err := repos.BankAccountRepo.FindBankAccountByID(ctx, adminID, req.FromAccountID)
		if err != nil {
			return fmt.Errorf("failed to resolve source account: %w", err)
		}
		to, err := repos.BankAccountRepo.FindBankAccountByID(ctx, adminID, req.ToAccountID)
		if err != nil {
			return fmt.Errorf("failed to resolve destination account: %w", err)
		}
		if !from.IsActive || !to.IsActive {
			return fmt.Errorf("%w: both accounts must be active", apperrors.ErrValidation)
		}

		outLeg := domain.BankMovement{
			MovementID:      outID,
			AdminID:         adminID,
			BankAccountID:   from.AccountID,
			TransactionDate: date,
			Amount:          -cents,
			Description:     description,
			OriginType:      domain.OriginTransferOut,
			TransferPairID:  &inID,
			AuditFields:     stampAudit(now, adminID),
		}
		inLeg := domain.BankMovement{
			MovementID:      inID,
			AdminID:         adminID,
			BankAccountID:   to.AccountID,
			TransactionDate: date,
			Amount:          cents,
			Description:     description,
			OriginType:      domain.OriginTransferIn,
			TransferPairID:  &outID,
			AuditFields:     stampAudit(now, adminID),
		}

		if err := repos.MovementRepo.SaveMovements(ctx, []domain.BankMovement{outLeg, inLeg}); err != nil {
			return fmt.Errorf("failed to save transfer legs: %w", err)
		}
		pair = []domain.BankMovement{outLeg, inLeg}
		return nil
	})
	if err != nil {
		logger.Error("Failed to record transfer", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Transfer recorded", slog.String("out_movement_id", outID), slog.String("in_movement_id", inID))
	return pair, nil
}

// ListMovements returns an account's movements within a date range.
func (s *movementService) ListMovements(ctx context.Context, adminID, accountID string, from, to time.Time) ([]domain.BankMovement, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}
	return s.movementRepo.ListMovementsByAccount(ctx, adminID, accountID, from, to)
}

// SetReconciled toggles the reconciliation flag on every named movement as
// one batched write. A missing id aborts the whole batch: silently skipping
// ids would hide stale references from the caller.
func (s *movementService) SetReconciled(ctx context.Context, adminID string, movementIDs []string, value bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(movementIDs) == 0 {
		return fmt.Errorf("%w: no movements selected", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	err := s.txManager.WithTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		existing, err := repos.MovementRepo.FindExistingMovementIDs(ctx, adminID, movementIDs)
		if err != nil {
			return fmt.Errorf("failed to verify movements: %w", err)
		}
		for _, id := range movementIDs {
			if !existing[id] {
				return fmt.Errorf("%w: movement %s", apperrors.ErrNotFound, id)
			}
		}
		return repos.MovementRepo.SetReconciled(ctx, adminID, movementIDs, value, adminID, now)
	})
	if err != nil {
		logger.Warn("Reconciliation toggle failed", slog.Int("count", len(movementIDs)), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Reconciliation flag updated", slog.Int("count", len(movementIDs)), slog.Bool("conciliado", value))
	return nil
}

// stampAudit builds audit fields for a fresh write.
func stampAudit(now time.Time, userID string) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     userID,
		LastUpdatedAt: now,
		LastUpdatedBy: userID,
	}
}
