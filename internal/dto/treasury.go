package dto

import "github.com/shopspring/decimal"

// TreasurySummaryResponse carries the treasury screen KPIs for one account
// and period. All values are currency amounts.
type TreasurySummaryResponse struct {
	BankAccountID   string          `json:"contaBancariaId"`
	From            string          `json:"de"`
	To              string          `json:"ate"`
	OpeningBalance  decimal.Decimal `json:"saldoAnterior"`
	TotalInflows    decimal.Decimal `json:"totalEntradas"`
	TotalOutflows   decimal.Decimal `json:"totalSaidas"`
	PeriodNet       decimal.Decimal `json:"saldoPeriodo"`
	ClosingBalance  decimal.Decimal `json:"saldoFinal"`
	UnreconciledNet decimal.Decimal `json:"saldoAConciliar"`
}

// BalanceResponse is the projected running balance of an account at a date.
type BalanceResponse struct {
	BankAccountID    string          `json:"contaBancariaId"`
	AsOf             string          `json:"data"`
	ProjectedBalance decimal.Decimal `json:"saldoProjetado"`
}

// TreasuryPeriodParams filters the treasury summary.
type TreasuryPeriodParams struct {
	BankAccountID string `form:"contaBancariaId" binding:"required"`
	From          string `form:"de" binding:"required,datetime=2006-01-02"`
	To            string `form:"ate" binding:"required,datetime=2006-01-02"`
}

// BalanceParams selects the projection date.
type BalanceParams struct {
	AsOf string `form:"data" binding:"required,datetime=2006-01-02"`
}
