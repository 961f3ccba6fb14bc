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
	"github.com/caixazul/treasury_backend/internal/utils/accounting"
)

// receivableService provides receivables (receitas) and their settlement.
type receivableService struct {
	txManager      portsrepo.TransactionManager
	receivableRepo portsrepo.ReceivableRepositoryFacade
	settlements    portsrepo.SettlementRepositoryFacade
}

// NewReceivableService creates a new receivable service.
func NewReceivableService(txManager portsrepo.TransactionManager, receivableRepo portsrepo.ReceivableRepositoryFacade, settlements portsrepo.SettlementRepositoryFacade) portssvc.ReceivableSvcFacade {
	return &receivableService{
		txManager:      txManager,
		receivableRepo: receivableRepo,
		settlements:    settlements,
	}
}

var _ portssvc.ReceivableSvcFacade = (*receivableService)(nil)

// CreateReceivable registers a new receivable with no receipts applied yet.
func (s *receivableService) CreateReceivable(ctx context.Context, adminID string, req dto.CreateReceivableRequest) (*domain.Receivable, error) {
	dueDate, err := time.Parse(dto.DateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid due date", apperrors.ErrValidation)
	}
	cents, err := utils.ToCents(req.Amount)
	if err != nil {
		return nil, err
	}
	if cents <= 0 {
		return nil, fmt.Errorf("%w: original amount must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	receivable := domain.Receivable{
		ReceivableID:   uuid.NewString(),
		AdminID:        adminID,
		Description:    req.Description,
		OriginalAmount: cents,
		TotalReceived:  0,
		PendingBalance: cents,
		DueDate:        dueDate,
		Status:         accounting.RecomputeStatus(cents, 0, dueDate, now, domain.KindReceivable),
		AuditFields:    stampAudit(now, adminID),
	}

	if err := s.receivableRepo.SaveReceivable(ctx, receivable); err != nil {
		return nil, fmt.Errorf("failed to save receivable: %w", err)
	}
	return &receivable, nil
}

// GetReceivableByID retrieves one receivable header.
func (s *receivableService) GetReceivableByID(ctx context.Context, adminID, receivableID string) (*domain.Receivable, error) {
	return s.receivableRepo.FindReceivableByID(ctx, adminID, receivableID)
}

// ListReceivables retrieves the tenant's receivables, optionally filtered by status.
func (s *receivableService) ListReceivables(ctx context.Context, adminID string, statuses []domain.SettlementStatus) ([]domain.Receivable, error) {
	return s.receivableRepo.ListReceivables(ctx, adminID, statuses)
}

// ListSettlements retrieves every settlement line of one receivable.
func (s *receivableService) ListSettlements(ctx context.Context, adminID, receivableID string) ([]domain.Settlement, error) {
	if _, err := s.receivableRepo.FindReceivableByID(ctx, adminID, receivableID); err != nil {
		return nil, err
	}
	return s.settlements.ListSettlementsByParent(ctx, adminID, domain.KindReceivable, receivableID)
}

// SettleReceivable applies a receipt against the header; the settlement line,
// the matching inflow movement and the recomputed totals commit together.
func (s *receivableService) SettleReceivable(ctx context.Context, adminID, receivableID string, req dto.SettleRequest) (*domain.Settlement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	principal, interest, discount, date, err := parseSettleRequest(req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	settlementID := uuid.NewString()
	movementID := uuid.NewString()

	var settlement *domain.Settlement
	err = s.txManager.WithTx(ctx, func(ctx context.Context, repos portsrepo.RepositoryProvider) error {
		receivable, err := repos.ReceivableRepo.FindReceivableByIDForUpdate(ctx, adminID, receivableID)
		if err != nil {
			return fmt.Errorf("failed to fetch receivable %s: %w", receivableID, err)
		}
		if principal > receivable.PendingBalance {
			return fmt.Errorf("%w: principal %d exceeds pending balance %d", apperrors.ErrValidation, principal, receivable.PendingBalance)
		}

		account, err := repos.BankAccountRepo.FindBankAccountByID(ctx, adminID, req.BankAccountID)
		if err != nil {
			return fmt.Errorf("failed to resolve bank account: %w", err)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: bank account %s is inactive", apperrors.ErrValidation, account.AccountID)
		}

		line := domain.Settlement{
			SettlementID: settlementID,
			AdminID:      adminID,
			AccrualKind:  domain.KindReceivable,
			ParentID:     receivable.ReceivableID,
			Kind:         domain.SettlementReceipt,
			Principal:    principal,
			Interest:     interest,
			Discount:     discount,
			SettledOn:    date,
			MovementID:   &movementID,
			AuditFields:  stampAudit(now, adminID),
		}
		if err := repos.SettlementRepo.SaveSettlement(ctx, line); err != nil {
			return fmt.Errorf("failed to save settlement: %w", err)
		}

		// Cash in: principal plus interest, net of discount.
		movement := domain.BankMovement{
			MovementID:      movementID,
			AdminID:         adminID,
			BankAccountID:   account.AccountID,
			TransactionDate: date,
			Amount:          principal + interest - discount,
			Description:     "Recebimento: " + receivable.Description,
			OriginType:      domain.OriginReceivableReceipt,
			OriginID:        &settlementID,
			OriginParentID:  &receivable.ReceivableID,
			AuditFields:     stampAudit(now, adminID),
		}
		if err := repos.MovementRepo.SaveMovement(ctx, movement); err != nil {
			return fmt.Errorf("failed to save receipt movement: %w", err)
		}

		newTotal := receivable.TotalReceived + principal
		newPending := receivable.PendingBalance - principal
		status := accounting.RecomputeStatus(newPending, newTotal, receivable.DueDate, now, domain.KindReceivable)
		if err := repos.ReceivableRepo.UpdateReceivableTotals(ctx, adminID, receivable.ReceivableID, newTotal, newPending, status, receivable.Version, adminID, now); err != nil {
			return err
		}

		settlement = &line
		return nil
	})
	if err != nil {
		logger.Warn("Receivable settlement failed", slog.String("receivable_id", receivableID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Receivable settled", slog.String("receivable_id", receivableID), slog.String("settlement_id", settlementID), slog.Int64("valor_principal", principal))
	return settlement, nil
}
