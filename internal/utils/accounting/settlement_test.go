package accounting_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/caixazul/treasury_backend/internal/core/domain"
	"github.com/caixazul/treasury_backend/internal/utils/accounting"
)

func TestRecomputeStatus(t *testing.T) {
	today := time.Date(2026, 6, 15, 10, 30, 0, 0, time.UTC)
	future := today.AddDate(0, 0, 10)
	past := today.AddDate(0, 0, -10)

	tests := []struct {
		name         string
		remaining    int64
		totalApplied int64
		dueDate      time.Time
		kind         domain.AccrualKind
		want         domain.SettlementStatus
	}{
		{"payable fully settled", 0, 100000, past, domain.KindPayable, domain.StatusPaid},
		{"receivable fully settled", 0, 100000, past, domain.KindReceivable, domain.StatusReceived},
		{"payable partially settled", 60000, 40000, future, domain.KindPayable, domain.StatusPartiallyPaid},
		{"receivable partially settled", 60000, 40000, future, domain.KindReceivable, domain.StatusPartiallyReceived},
		{"partial wins over overdue", 60000, 40000, past, domain.KindPayable, domain.StatusPartiallyPaid},
		{"untouched and overdue", 100000, 0, past, domain.KindPayable, domain.StatusOverdue},
		{"untouched and open", 100000, 0, future, domain.KindPayable, domain.StatusPending},
		{"due today is not overdue", 100000, 0, today.Add(-2 * time.Hour), domain.KindPayable, domain.StatusPending},
		{"negative remaining counts as settled", -500, 100500, future, domain.KindPayable, domain.StatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.RecomputeStatus(tt.remaining, tt.totalApplied, tt.dueDate, today, tt.kind)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProjectedBalanceReversedPairNetsToZero(t *testing.T) {
	base := []domain.BankMovement{
		{Amount: 50000},
		{Amount: -20000},
	}
	withReversal := append(base,
		domain.BankMovement{Amount: -30000, Reversed: true},
		domain.BankMovement{Amount: 30000, OriginType: domain.OriginReversal, Reconciled: true},
	)

	got := accounting.ProjectedBalance(10000, withReversal)
	assert.Equal(t, int64(40000), got)
	assert.Equal(t, accounting.ProjectedBalance(10000, base), got, "reversal must not change the running balance")
}

func TestPeriodTotals(t *testing.T) {
	movements := []domain.BankMovement{
		{Amount: 80000, Reconciled: true},
		{Amount: 20000, Reconciled: false},
		{Amount: -35000, Reconciled: false},
		{Amount: -15000, Reversed: true},
		{Amount: 15000, OriginType: domain.OriginReversal, Reconciled: true},
	}

	// The reversed outflow and its counter-entry both stay out of the
	// gross totals.
	inflows, outflows, unreconciled := accounting.PeriodTotals(movements)
	assert.Equal(t, int64(100000), inflows)
	assert.Equal(t, int64(35000), outflows, "outflows come back as a positive magnitude")
	assert.Equal(t, int64(-15000), unreconciled)
}

func TestPeriodTotalsEmpty(t *testing.T) {
	inflows, outflows, unreconciled := accounting.PeriodTotals(nil)
	assert.Zero(t, inflows)
	assert.Zero(t, outflows)
	assert.Zero(t, unreconciled)
}
