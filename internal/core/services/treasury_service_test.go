package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/caixazul/treasury_backend/internal/apperrors"
	"github.com/caixazul/treasury_backend/internal/core/domain"
	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/core/services"
)

type TreasuryServiceTestSuite struct {
	suite.Suite
	movementRepo *MockMovementRepository
	accountRepo  *MockBankAccountRepository
	service      portssvc.TreasurySvcFacade

	adminID string
}

func (s *TreasuryServiceTestSuite) SetupTest() {
	s.movementRepo = new(MockMovementRepository)
	s.accountRepo = new(MockBankAccountRepository)
	s.adminID = uuid.NewString()
	s.service = services.NewTreasuryService(s.movementRepo, s.accountRepo)
}

func (s *TreasuryServiceTestSuite) TestProjectedBalance() {
	ctx := context.Background()
	account := &domain.BankAccount{AccountID: uuid.NewString(), AdminID: s.adminID, StartingBalance: 100000, IsActive: true}
	asOf := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	s.accountRepo.On("FindBankAccountByID", ctx, s.adminID, account.AccountID).Return(account, nil)
	s.movementRepo.On("SumMovementsThrough", ctx, s.adminID, account.AccountID, asOf).Return(int64(-25000), nil)

	balance, err := s.service.ProjectedBalance(ctx, s.adminID, account.AccountID, asOf)
	s.Require().NoError(err)
	s.Equal(int64(75000), balance)
}

func (s *TreasuryServiceTestSuite) TestProjectedBalanceUnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	s.accountRepo.On("FindBankAccountByID", ctx, s.adminID, accountID).Return(nil, apperrors.ErrNotFound)

	_, err := s.service.ProjectedBalance(ctx, s.adminID, accountID, time.Now().UTC())
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.movementRepo.AssertNotCalled(s.T(), "SumMovementsThrough", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *TreasuryServiceTestSuite) TestPeriodSummary() {
	ctx := context.Background()
	account := &domain.BankAccount{AccountID: uuid.NewString(), AdminID: s.adminID, StartingBalance: 50000, IsActive: true}
	from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	dayBefore := from.AddDate(0, 0, -1)

	s.accountRepo.On("FindBankAccountByID", ctx, s.adminID, account.AccountID).Return(account, nil)
	s.movementRepo.On("SumMovementsThrough", ctx, s.adminID, account.AccountID, dayBefore).Return(int64(10000), nil)

	movements := []domain.BankMovement{
		{Amount: 30000, Reconciled: true},
		{Amount: -12000, Reconciled: false},
		// A reversed pair nets to zero and stays out of the gross totals.
		{Amount: -5000, Reversed: true},
		{Amount: 5000, OriginType: domain.OriginReversal, Reconciled: true},
	}
	s.movementRepo.On("ListMovementsByAccount", ctx, s.adminID, account.AccountID, from, to).Return(movements, nil)

	summary, err := s.service.PeriodSummary(ctx, s.adminID, account.AccountID, from, to)
	s.Require().NoError(err)

	s.Equal(account.AccountID, summary.BankAccountID)
	s.Equal("2026-06-01", summary.From)
	s.Equal("2026-06-30", summary.To)
	s.True(decimal.NewFromInt(600).Equal(summary.OpeningBalance), "opening is projection through the day before")
	s.True(decimal.NewFromInt(300).Equal(summary.TotalInflows), "got %s", summary.TotalInflows)
	s.True(decimal.NewFromInt(120).Equal(summary.TotalOutflows), "outflows reported as a positive magnitude")
	s.True(decimal.NewFromInt(180).Equal(summary.PeriodNet))
	s.True(decimal.NewFromInt(780).Equal(summary.ClosingBalance), "closing is opening plus period net")
	s.True(decimal.NewFromInt(-120).Equal(summary.UnreconciledNet))
}

func (s *TreasuryServiceTestSuite) TestPeriodSummaryInvertedRange() {
	from := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -7)

	_, err := s.service.PeriodSummary(context.Background(), s.adminID, uuid.NewString(), from, to)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.accountRepo.AssertNotCalled(s.T(), "FindBankAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestTreasuryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TreasuryServiceTestSuite))
}
