package services

import (
	"context"
	"fmt"
	"time"

	"github.com/caixazul/treasury_backend/internal/apperrors"
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/dto"
	"github.com/caixazul/treasury_backend/internal/utils"
	"github.com/caixazul/treasury_backend/internal/utils/accounting"
)

// treasuryService computes the read-only balance projections behind the
// treasury screen.
type treasuryService struct {
	movementRepo portsrepo.MovementRepositoryFacade
	accountRepo  portsrepo.BankAccountRepositoryFacade
}

// NewTreasuryService creates a new treasury service.
func NewTreasuryService(movementRepo portsrepo.MovementRepositoryFacade, accountRepo portsrepo.BankAccountRepositoryFacade) portssvc.TreasurySvcFacade {
	return &treasuryService{
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.TreasurySvcFacade = (*treasuryService)(nil)

// ProjectedBalance is the starting balance plus the signed sum of all
// movements dated on or before asOf. A reversed original and its
// counter-entry cancel exactly, so reversals never move the projection.
func (s *treasuryService) ProjectedBalance(ctx context.Context, adminID, accountID string, asOf time.Time) (int64, error) {
	account, err := s.accountRepo.FindBankAccountByID(ctx, adminID, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve bank account %s: %w", accountID, err)
	}
	sum, err := s.movementRepo.SumMovementsThrough(ctx, adminID, accountID, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to sum movements: %w", err)
	}
	return account.StartingBalance + sum, nil
}

// PeriodSummary computes the treasury KPIs for one account and period:
// opening balance, gross inflows and outflows, net result, closing balance
// and the unreconciled net.
func (s *treasuryService) PeriodSummary(ctx context.Context, adminID, accountID string, from, to time.Time) (*dto.TreasurySummaryResponse, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: period end precedes period start", apperrors.ErrValidation)
	}

	// Opening balance is the projection through the day before the period.
	opening, err := s.ProjectedBalance(ctx, adminID, accountID, from.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.ListMovementsByAccount(ctx, adminID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list period movements: %w", err)
	}

	inflows, outflows, unreconciled := accounting.PeriodTotals(movements)
	periodNet := inflows - outflows

	return &dto.TreasurySummaryResponse{
		BankAccountID:   accountID,
		From:            from.Format(dto.DateLayout),
		To:              to.Format(dto.DateLayout),
		OpeningBalance:  utils.FromCents(opening),
		TotalInflows:    utils.FromCents(inflows),
		TotalOutflows:   utils.FromCents(outflows),
		PeriodNet:       utils.FromCents(periodNet),
		ClosingBalance:  utils.FromCents(opening + periodNet),
		UnreconciledNet: utils.FromCents(unreconciled),
	}, nil
}
