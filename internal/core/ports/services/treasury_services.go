package services

import (
	"context"
	"time"

	"github.com/caixazul/treasury_backend/internal/dto"
)

// TreasurySvcFacade exposes the read-only balance projections backing the
// treasury screen.
type TreasurySvcFacade interface {
	// ProjectedBalance is the account's starting balance plus the signed sum
	// of all movements dated on or before asOf, in centavos. Reversed pairs
	// net to zero inside the sum.
	ProjectedBalance(ctx context.Context, adminID, accountID string, asOf time.Time) (int64, error)

	// PeriodSummary computes the treasury KPIs for one account and period.
	PeriodSummary(ctx context.Context, adminID, accountID string, from, to time.Time) (*dto.TreasurySummaryResponse, error)
}
