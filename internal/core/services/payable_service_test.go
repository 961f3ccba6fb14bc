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
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
	"github.com/caixazul/treasury_backend/internal/core/services"
	"github.com/caixazul/treasury_backend/internal/dto"
)

type PayableServiceTestSuite struct {
	suite.Suite
	payableRepo    *MockPayableRepository
	settlementRepo *MockSettlementRepository
	movementRepo   *MockMovementRepository
	accountRepo    *MockBankAccountRepository
	service        portssvc.PayableSvcFacade

	adminID string
}

func (s *PayableServiceTestSuite) SetupTest() {
	s.payableRepo = new(MockPayableRepository)
	s.settlementRepo = new(MockSettlementRepository)
	s.movementRepo = new(MockMovementRepository)
	s.accountRepo = new(MockBankAccountRepository)
	s.adminID = uuid.NewString()

	txManager := &fakeTxManager{repos: portsrepo.RepositoryProvider{
		BankAccountRepo: s.accountRepo,
		MovementRepo:    s.movementRepo,
		PayableRepo:     s.payableRepo,
		SettlementRepo:  s.settlementRepo,
	}}
	s.service = services.NewPayableService(txManager, s.payableRepo, s.settlementRepo)
}

func (s *PayableServiceTestSuite) TestCreatePayable() {
	ctx := context.Background()

	var saved domain.Payable
	s.payableRepo.On("SavePayable", ctx, mock.MatchedBy(func(p domain.Payable) bool {
		saved = p
		return true
	})).Return(nil)

	got, err := s.service.CreatePayable(ctx, s.adminID, dto.CreatePayableRequest{
		Description: "Aluguel",
		Amount:      decimal.NewFromFloat(1500.50),
		DueDate:     "2030-01-15",
	})
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(int64(150050), saved.OriginalAmount)
	s.Equal(int64(0), saved.TotalPaid)
	s.Equal(int64(150050), saved.RemainingBalance)
	s.Equal(domain.StatusPending, saved.Status, "future due date starts pending")
	s.Equal(s.adminID, saved.AdminID)
}

func (s *PayableServiceTestSuite) TestCreatePayablePastDueStartsOverdue() {
	ctx := context.Background()

	s.payableRepo.On("SavePayable", ctx, mock.MatchedBy(func(p domain.Payable) bool {
		return p.Status == domain.StatusOverdue
	})).Return(nil)

	_, err := s.service.CreatePayable(ctx, s.adminID, dto.CreatePayableRequest{
		Description: "Conta antiga",
		Amount:      decimal.NewFromInt(100),
		DueDate:     "2020-01-01",
	})
	s.NoError(err)
	s.payableRepo.AssertExpectations(s.T())
}

func (s *PayableServiceTestSuite) TestCreatePayableRejectsNonPositiveAmount() {
	_, err := s.service.CreatePayable(context.Background(), s.adminID, dto.CreatePayableRequest{
		Description: "Inválida",
		Amount:      decimal.Zero,
		DueDate:     "2030-01-15",
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.payableRepo.AssertNotCalled(s.T(), "SavePayable", mock.Anything, mock.Anything)
}

func (s *PayableServiceTestSuite) openPayable() *domain.Payable {
	return &domain.Payable{
		PayableID:        uuid.NewString(),
		AdminID:          s.adminID,
		Description:      "Fornecedor X",
		OriginalAmount:   100000,
		TotalPaid:        0,
		RemainingBalance: 100000,
		DueDate:          time.Now().UTC().AddDate(0, 1, 0),
		Status:           domain.StatusPending,
		Version:          3,
	}
}

func (s *PayableServiceTestSuite) TestSettlePayablePartial() {
	ctx := context.Background()
	payable := s.openPayable()
	account := &domain.BankAccount{AccountID: uuid.NewString(), AdminID: s.adminID, IsActive: true}

	s.payableRepo.On("FindPayableByIDForUpdate", ctx, s.adminID, payable.PayableID).Return(payable, nil)
	s.accountRepo.On("FindBankAccountByID", ctx, s.adminID, account.AccountID).Return(account, nil)

	var line domain.Settlement
	s.settlementRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(sl domain.Settlement) bool {
		line = sl
		return sl.Kind == domain.SettlementPayment
	})).Return(nil)

	var movement domain.BankMovement
	s.movementRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.BankMovement) bool {
		movement = m
		return m.OriginType == domain.OriginPayablePayment
	})).Return(nil)

	// 400.00 principal, 10.00 interest, 5.00 discount: 405.00 leaves the bank.
	s.payableRepo.On("UpdatePayableTotals", ctx, s.adminID, payable.PayableID,
		int64(40000), int64(60000), domain.StatusPartiallyPaid,
		payable.Version, s.adminID, mock.AnythingOfType("time.Time")).Return(nil)

	got, err := s.service.SettlePayable(ctx, s.adminID, payable.PayableID, dto.SettleRequest{
		BankAccountID: account.AccountID,
		Date:          "2026-06-01",
		Principal:     decimal.NewFromInt(400),
		Interest:      decimal.NewFromInt(10),
		Discount:      decimal.NewFromInt(5),
	})
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(int64(40000), line.Principal)
	s.Equal(int64(1000), line.Interest)
	s.Equal(int64(500), line.Discount)
	s.Equal(payable.PayableID, line.ParentID)
	s.Equal(domain.KindPayable, line.AccrualKind)

	s.Equal(int64(-40500), movement.Amount, "cash out is principal plus interest net of discount")
	s.Equal("Pagamento: Fornecedor X", movement.Description)
	s.Require().NotNil(movement.OriginID)
	s.Equal(line.SettlementID, *movement.OriginID)
	s.Require().NotNil(movement.OriginParentID)
	s.Equal(payable.PayableID, *movement.OriginParentID)
	s.Require().NotNil(line.MovementID)
	s.Equal(movement.MovementID, *line.MovementID)

	s.payableRepo.AssertExpectations(s.T())
}

func (s *PayableServiceTestSuite) TestSettlePayableFull() {
	ctx := context.Background()
	payable := s.openPayable()
	account := &domain.BankAccount{AccountID: uuid.NewString(), AdminID: s.adminID, IsActive: true}

	s.payableRepo.On("FindPayableByIDForUpdate", ctx, s.adminID, payable.PayableID).Return(payable, nil)
	s.accountRepo.On("FindBankAccountByID", ctx, s.adminID, account.AccountID).Return(account, nil)
	s.settlementRepo.On("SaveSettlement", ctx, mock.AnythingOfType("domain.Settlement")).Return(nil)
	s.movementRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.BankMovement")).Return(nil)
	s.payableRepo.On("UpdatePayableTotals", ctx, s.adminID, payable.PayableID,
		int64(100000), int64(0), domain.StatusPaid,
		payable.Version, s.adminID, mock.AnythingOfType("time.Time")).Return(nil)

	_, err := s.service.SettlePayable(ctx, s.adminID, payable.PayableID, dto.SettleRequest{
		BankAccountID: account.AccountID,
		Date:          "2026-06-01",
		Principal:     decimal.NewFromInt(1000),
	})
	s.NoError(err)
	s.payableRepo.AssertExpectations(s.T())
}

func (s *PayableServiceTestSuite) TestSettlePayableOverSettlementRejected() {
	ctx := context.Background()
	payable := s.openPayable()

	s.payableRepo.On("FindPayableByIDForUpdate", ctx, s.adminID, payable.PayableID).Return(payable, nil)

	_, err := s.service.SettlePayable(ctx, s.adminID, payable.PayableID, dto.SettleRequest{
		BankAccountID: uuid.NewString(),
		Date:          "2026-06-01",
		Principal:     decimal.NewFromInt(1001),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.settlementRepo.AssertNotCalled(s.T(), "SaveSettlement", mock.Anything, mock.Anything)
	s.movementRepo.AssertNotCalled(s.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (s *PayableServiceTestSuite) TestSettlePayableInactiveAccount() {
	ctx := context.Background()
	payable := s.openPayable()
	account := &domain.BankAccount{AccountID: uuid.NewString(), AdminID: s.adminID, IsActive: false}

	s.payableRepo.On("FindPayableByIDForUpdate", ctx, s.adminID, payable.PayableID).Return(payable, nil)
	s.accountRepo.On("FindBankAccountByID", ctx, s.adminID, account.AccountID).Return(account, nil)

	_, err := s.service.SettlePayable(ctx, s.adminID, payable.PayableID, dto.SettleRequest{
		BankAccountID: account.AccountID,
		Date:          "2026-06-01",
		Principal:     decimal.NewFromInt(100),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.settlementRepo.AssertNotCalled(s.T(), "SaveSettlement", mock.Anything, mock.Anything)
}

func (s *PayableServiceTestSuite) TestSettlePayableNegativeInterest() {
	_, err := s.service.SettlePayable(context.Background(), s.adminID, uuid.NewString(), dto.SettleRequest{
		BankAccountID: uuid.NewString(),
		Date:          "2026-06-01",
		Principal:     decimal.NewFromInt(100),
		Interest:      decimal.NewFromInt(-1),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.payableRepo.AssertNotCalled(s.T(), "FindPayableByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
}

func (s *PayableServiceTestSuite) TestListSettlementsUnknownPayable() {
	ctx := context.Background()
	payableID := uuid.NewString()

	s.payableRepo.On("FindPayableByID", ctx, s.adminID, payableID).Return(nil, apperrors.ErrNotFound)

	_, err := s.service.ListSettlements(ctx, s.adminID, payableID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.settlementRepo.AssertNotCalled(s.T(), "ListSettlementsByParent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPayableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PayableServiceTestSuite))
}
