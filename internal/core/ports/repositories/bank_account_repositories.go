package repositories

import (
	"context"

	"github.com/caixazul/treasury_backend/internal/core/domain"
)

// BankAccountRepositoryFacade defines the operations for bank accounts. The
// reversal protocol only ever reads accounts; the starting balance is the
// base of every running-balance projection.
type BankAccountRepositoryFacade interface {
	FindBankAccountByID(ctx context.Context, adminID, accountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, adminID string) ([]domain.BankAccount, error)
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
}
