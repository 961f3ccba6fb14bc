package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/caixazul/treasury_backend/internal/core/domain"
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/dto"
	"github.com/caixazul/treasury_backend/internal/utils"
)

// bankAccountService provides bank account management.
type bankAccountService struct {
	accountRepo portsrepo.BankAccountRepositoryFacade
}

// NewBankAccountService creates a new bank account service.
func NewBankAccountService(accountRepo portsrepo.BankAccountRepositoryFacade) portssvc.BankAccountSvcFacade {
	return &bankAccountService{accountRepo: accountRepo}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

// CreateBankAccount registers an account. The starting balance anchors every
// running-balance projection and is immutable afterwards.
func (s *bankAccountService) CreateBankAccount(ctx context.Context, adminID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	cents, err := utils.ToCents(req.StartingBalance)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := domain.BankAccount{
		AccountID:       uuid.NewString(),
		AdminID:         adminID,
		Name:            req.Name,
		StartingBalance: cents,
		IsActive:        true,
		AuditFields:     stampAudit(now, adminID),
	}
	if err := s.accountRepo.SaveBankAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save bank account: %w", err)
	}
	return &account, nil
}

// GetBankAccountByID retrieves one account.
func (s *bankAccountService) GetBankAccountByID(ctx context.Context, adminID, accountID string) (*domain.BankAccount, error) {
	return s.accountRepo.FindBankAccountByID(ctx, adminID, accountID)
}

// ListBankAccounts retrieves the tenant's accounts.
func (s *bankAccountService) ListBankAccounts(ctx context.Context, adminID string) ([]domain.BankAccount, error) {
	return s.accountRepo.ListBankAccounts(ctx, adminID)
}
