package dto

import (
	"github.com/caixazul/treasury_backend/internal/core/domain"
	"github.com/caixazul/treasury_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest registers a bank account with its starting balance.
type CreateBankAccountRequest struct {
	Name            string          `json:"nome" binding:"required"`
	StartingBalance decimal.Decimal `json:"saldoInicial"`
}

// BankAccountResponse is the API representation of a bank account.
type BankAccountResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"nome"`
	StartingBalance decimal.Decimal `json:"saldoInicial"`
	IsActive        bool            `json:"ativo"`
}

// ToBankAccountResponse maps a domain bank account.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:              a.AccountID,
		Name:            a.Name,
		StartingBalance: utils.FromCents(a.StartingBalance),
		IsActive:        a.IsActive,
	}
}

// ToBankAccountResponses maps a slice of bank accounts.
func ToBankAccountResponses(accounts []domain.BankAccount) []BankAccountResponse {
	out := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToBankAccountResponse(&accounts[i])
	}
	return out
}
