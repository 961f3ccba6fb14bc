package accounting

import (
	"time"

	"github.com/caixazul/treasury_backend/internal/core/domain"
)

// RecomputeStatus derives an accrual header's status from its running totals.
// The rule is identical for payables and receivables; only the display names
// differ. Applied after every settlement or reversal:
//   - remaining <= 0            -> settled (Pago / Recebido)
//   - totalApplied > 0          -> partially settled
//   - dueDate before today      -> Vencido
//   - otherwise                 -> Pendente
func RecomputeStatus(remaining, totalApplied int64, dueDate, today time.Time, kind domain.AccrualKind) domain.SettlementStatus {
	if remaining <= 0 {
		if kind == domain.KindPayable {
			return domain.StatusPaid
		}
		return domain.StatusReceived
	}
	if totalApplied > 0 {
		if kind == domain.KindPayable {
			return domain.StatusPartiallyPaid
		}
		return domain.StatusPartiallyReceived
	}
	if truncateToDay(dueDate).Before(truncateToDay(today)) {
		return domain.StatusOverdue
	}
	return domain.StatusPending
}

// ProjectedBalance is the account's starting balance plus the signed sum of
// every movement, reversed ones included. A reversed original and its
// counter-entry carry opposite amounts and the same transaction date, so the
// pair nets to zero and a reversal never moves the running balance.
func ProjectedBalance(startingBalance int64, movements []domain.BankMovement) int64 {
	balance := startingBalance
	for _, m := range movements {
		balance += m.Amount
	}
	return balance
}

// PeriodTotals sums a period's movements into the treasury KPIs: gross
// inflows, gross outflows (as a positive number) and the unreconciled net.
// Both members of a reversed pair are excluded so a reversal does not
// inflate the gross totals; the pair nets to zero, keeping the closing
// balance consistent with the full-sum projection.
func PeriodTotals(movements []domain.BankMovement) (inflows, outflows, unreconciled int64) {
	for _, m := range movements {
		if m.Reversed || m.OriginType == domain.OriginReversal {
			continue
		}
		if m.Amount > 0 {
			inflows += m.Amount
		} else {
			outflows -= m.Amount
		}
		if !m.Reconciled {
			unreconciled += m.Amount
		}
	}
	return inflows, outflows, unreconciled
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
