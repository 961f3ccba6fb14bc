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

// payableService provides obligations (despesas) and their settlement.
type payableService struct {
	txManager   portsrepo.TransactionManager
	payableRepo portsrepo.PayableRepositoryFacade
	settlements portsrepo.SettlementRepositoryFacade
}

// NewPayableService creates a new payable service.
func NewPayableService(txManager portsrepo.TransactionManager, payableRepo portsrepo.PayableRepositoryFacade, settlements portsrepo.SettlementRepositoryFacade) portssvc.PayableSvcFacade {
	return &payableService{
		txManager:   txManager,
		payableRepo: payableRepo,
		settlements: settlements,
	}
}

var _ portssvc.PayableSvcFacade = (*payableService)(nil)

// CreatePayable registers a new obligation. The header starts with zero
// applied and a full remaining balance.
func (s *payableService) CreatePayable(ctx context.Context, adminID string, req dto.CreatePayableRequest) (*domain.Payable, error) {
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
	payable := domain.Payable{
		PayableID:        uuid.NewString(),
		AdminID:          adminID,
		Description:      req.Description,
		OriginalAmount:   cents,
		TotalPaid:        0,
		RemainingBalance: cents,
		DueDate:          dueDate,
		Status:           accounting.RecomputeStatus(cents, 0, dueDate, now, domain.KindPayable),
		AuditFields:      stampAudit(now, adminID),
	}

	if err := s.payableRepo.SavePayable(ctx, payable); err != nil {
		return nil, fmt.Errorf("failed to save payable: %w", err)
	}
	return &payable, nil
}

// GetPayableByID retrieves one payable header.
func (s *payableService) GetPayableByID(ctx context.Context, adminID, payableID string) (*domain.Payable, error) {
	return s.payableRepo.FindPayableByID(ctx, adminID, payableID)
}

// ListPayables retrieves the tenant's payables, optionally filtered by status.
func (s *payableService) ListPayables(ctx context.Context, adminID string, statuses []domain.SettlementStatus) ([]domain.Payable, error) {
	return s.payableRepo.ListPayables(ctx, adminID, statuses)
}

// ListSettlements retrieves every settlement line of one payable, reversal
// audit lines included.
func (s *payableService) ListSettlements(ctx context.Context, adminID, payableID string) ([]domain.Settlement, error) {
	if _, err := s.payableRepo.FindPayableByID(ctx, adminID, payableID); err != nil {
		return nil, err
	}
	return s.settlements.ListSettlementsByParent(ctx, adminID, domain.KindPayable, payableID)
}

// SettlePayable applies a payment against the header: the settlement line,
// the matching outflow movement and the recomputed header totals commit
// together. Principal beyond the remaining balance is rejected so applied
// principal can never exceed the original amount.
func (s *payableService) SettlePayable(ctx context.Context, adminID, payableID string, req dto.SettleRequest) (*domain.Settlement, error) {
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
		payable, err := repos.PayableRepo.FindPayableByIDForUpdate(ctx, adminID, payableID)
		if err != nil {
			return fmt.Errorf("failed to fetch payable %s: %w", payableID, err)
		}
		if principal > payable.RemainingBalance {
			return fmt.Errorf("%w: principal %d exceeds remaining balance %d", apperrors.ErrValidation, principal, payable.RemainingBalance)
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
			AccrualKind:  domain.KindPayable,
			ParentID:     payable.PayableID,
			Kind:         domain.SettlementPayment,
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

		// Cash out: principal plus interest, net of discount.
		movement := domain.BankMovement{
			MovementID:      movementID,
			AdminID:         adminID,
			BankAccountID:   account.AccountID,
			TransactionDate: date,
			Amount:          -(principal + interest - discount),
			Description:     "Pagamento: " + payable.Description,
			OriginType:      domain.OriginPayablePayment,
			OriginID:        &settlementID,
			OriginParentID:  &payable.PayableID,
			AuditFields:     stampAudit(now, adminID),
		}
		if err := repos.MovementRepo.SaveMovement(ctx, movement); err != nil {
			return fmt.Errorf("failed to save payment movement: %w", err)
		}

		newTotal := payable.TotalPaid + principal
		newRemaining := payable.RemainingBalance - principal
		status := accounting.RecomputeStatus(newRemaining, newTotal, payable.DueDate, now, domain.KindPayable)
		if err := repos.PayableRepo.UpdatePayableTotals(ctx, adminID, payable.PayableID, newTotal, newRemaining, status, payable.Version, adminID, now); err != nil {
			return err
		}

		settlement = &line
		return nil
	})
	if err != nil {
		logger.Warn("Payable settlement failed", slog.String("payable_id", payableID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payable settled", slog.String("payable_id", payableID), slog.String("settlement_id", settlementID), slog.Int64("valor_principal", principal))
	return settlement, nil
}

// parseSettleRequest converts and validates the settlement inputs.
func parseSettleRequest(req dto.SettleRequest) (principal, interest, discount int64, date time.Time, err error) {
	date, err = time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return 0, 0, 0, time.Time{}, fmt.Errorf("%w: invalid settlement date", apperrors.ErrValidation)
	}
	principal, err = utils.ToCents(req.Principal)
	if err != nil {
		return 0, 0, 0, time.Time{}, err
	}
	if principal <= 0 {
		return 0, 0, 0, time.Time{}, fmt.Errorf("%w: principal must be positive", apperrors.ErrValidation)
	}
	interest, err = utils.ToCents(req.Interest)
	if err != nil {
		return 0, 0, 0, time.Time{}, err
	}
	discount, err = utils.ToCents(req.Discount)
	if err != nil {
		return 0, 0, 0, time.Time{}, err
	}
	if interest < 0 || discount < 0 {
		return 0, 0, 0, time.Time{}, fmt.Errorf("%w: interest and discount must not be negative", apperrors.ErrValidation)
	}
	return principal, interest, discount, date, nil
}
