package services

import (
	"context"

	"github.com/caixazul/treasury_backend/internal/core/domain"
	"github.com/caixazul/treasury_backend/internal/dto"
)

// BankAccountSvcFacade exposes bank account operations.
type BankAccountSvcFacade interface {
	CreateBankAccount(ctx context.Context, adminID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error)
	GetBankAccountByID(ctx context.Context, adminID, accountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, adminID string) ([]domain.BankAccount, error)
}
