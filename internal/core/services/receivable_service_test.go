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

type ReceivableServiceTestSuite struct {
	suite.Suite
	receivableRepo *MockReceivableRepository
	settlementRepo *MockSettlementRepository
	movementRepo   *MockMovementRepository
	accountRepo    *MockBankAccountRepository
	service        portssvc.ReceivableSvcFacade

	adminID string
}

func (s *ReceivableServiceTestSuite) SetupTest() {
	s.receivableRepo = new(MockReceivableRepository)
	s.settlementRepo = new(MockSettlementRepository)
	s.movementRepo = new(MockMovementRepository)
	s.accountRepo = new(MockBankAccountRepository)
	s.adminID = uuid.NewString()

	txManager := &fakeTxManager{repos: portsrepo.RepositoryProvider{
		BankAccountRepo: s.accountRepo,
		MovementRepo:    s.movementRepo,
		ReceivableRepo:  s.receivableRepo,
		SettlementRepo:  s.settlementRepo,
	}}
	s.service = services.NewReceivableService(txManager, s.receivableRepo, s.settlementRepo)
}

func (s *ReceivableServiceTestSuite) TestCreateReceivable() {
	ctx := context.Background()

	var saved domain.Receivable
	s.receivableRepo.On("SaveReceivable", ctx, mock.MatchedBy(func(r domain.Receivable) bool {
		saved = r
		return true
	})).Return(nil)

	got, err := s.service.CreateReceivable(ctx, s.adminID, dto.CreateReceivableRequest{
		Description: "Mensalidade",
		Amount:      decimal.NewFromInt(800),
		DueDate:     "2030-02-10",
	})
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(int64(80000), saved.OriginalAmount)
	s.Equal(int64(0), saved.TotalReceived)
	s.Equal(int64(80000), saved.PendingBalance)
	s.Equal(domain.StatusPending, saved.Status)
}

func (s *ReceivableServiceTestSuite) openReceivable() *domain.Receivable {
	return &domain.Receivable{
		ReceivableID:   uuid.NewString(),
		AdminID:        s.adminID,
		Description:    "Cliente Y",
		OriginalAmount: 60000,
		TotalReceived:  0,
		PendingBalance: 60000,
		DueDate:        time.Now().UTC().AddDate(0, 1, 0),
		Status:         domain.StatusPending,
		Version:        1,
	}
}

func (s *ReceivableServiceTestSuite) TestSettleReceivablePartial() {
	ctx := context.Background()
	receivable := s.openReceivable()
	account := &domain.BankAccount{AccountID: uuid.NewString(), AdminID: s.adminID, IsActive: true}

	s.receivableRepo.On("FindReceivableByIDForUpdate", ctx, s.adminID, receivable.ReceivableID).Return(receivable, nil)
	s.accountRepo.On("FindBankAccountByID", ctx, s.adminID, account.AccountID).Return(account, nil)

	var line domain.Settlement
	s.settlementRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(sl domain.Settlement) bool {
		line = sl
		return sl.Kind == domain.SettlementReceipt
	})).Return(nil)

	var movement domain.BankMovement
	s.movementRepo.On("SaveMovement", ctx, mock.MatchedBy(func(m domain.BankMovement) bool {
		movement = m
		return m.OriginType == domain.OriginReceivableReceipt
	})).Return(nil)

	s.receivableRepo.On("UpdateReceivableTotals", ctx, s.adminID, receivable.ReceivableID,
		int64(25000), int64(35000), domain.StatusPartiallyReceived,
		receivable.Version, s.adminID, mock.AnythingOfType("time.Time")).Return(nil)

	got, err := s.service.SettleReceivable(ctx, s.adminID, receivable.ReceivableID, dto.SettleRequest{
		BankAccountID: account.AccountID,
		Date:          "2026-07-01",
		Principal:     decimal.NewFromInt(250),
		Interest:      decimal.NewFromInt(2),
	})
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(int64(25000), line.Principal)
	s.Equal(domain.KindReceivable, line.AccrualKind)
	s.Equal(receivable.ReceivableID, line.ParentID)

	s.Equal(int64(25200), movement.Amount, "cash in is principal plus interest net of discount")
	s.Equal("Recebimento: Cliente Y", movement.Description)
	s.Require().NotNil(movement.OriginID)
	s.Equal(line.SettlementID, *movement.OriginID)
	s.Require().NotNil(movement.OriginParentID)
	s.Equal(receivable.ReceivableID, *movement.OriginParentID)

	s.receivableRepo.AssertExpectations(s.T())
}

func (s *ReceivableServiceTestSuite) TestSettleReceivableFull() {
	ctx := context.Background()
	receivable := s.openReceivable()
	account := &domain.BankAccount{AccountID: uuid.NewString(), AdminID: s.adminID, IsActive: true}

	s.receivableRepo.On("FindReceivableByIDForUpdate", ctx, s.adminID, receivable.ReceivableID).Return(receivable, nil)
	s.accountRepo.On("FindBankAccountByID", ctx, s.adminID, account.AccountID).Return(account, nil)
	s.settlementRepo.On("SaveSettlement", ctx, mock.AnythingOfType("domain.Settlement")).Return(nil)
	s.movementRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.BankMovement")).Return(nil)
	s.receivableRepo.On("UpdateReceivableTotals", ctx, s.adminID, receivable.ReceivableID,
		int64(60000), int64(0), domain.StatusReceived,
		receivable.Version, s.adminID, mock.AnythingOfType("time.Time")).Return(nil)

	_, err := s.service.SettleReceivable(ctx, s.adminID, receivable.ReceivableID, dto.SettleRequest{
		BankAccountID: account.AccountID,
		Date:          "2026-07-01",
		Principal:     decimal.NewFromInt(600),
	})
	s.NoError(err)
	s.receivableRepo.AssertExpectations(s.T())
}

func (s *ReceivableServiceTestSuite) TestSettleReceivableOverSettlementRejected() {
	ctx := context.Background()
	receivable := s.openReceivable()

	s.receivableRepo.On("FindReceivableByIDForUpdate", ctx, s.adminID, receivable.ReceivableID).Return(receivable, nil)

	_, err := s.service.SettleReceivable(ctx, s.adminID, receivable.ReceivableID, dto.SettleRequest{
		BankAccountID: uuid.NewString(),
		Date:          "2026-07-01",
		Principal:     decimal.NewFromInt(601),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.movementRepo.AssertNotCalled(s.T(), "SaveMovement", mock.Anything, mock.Anything)
}

func (s *ReceivableServiceTestSuite) TestListSettlementsUnknownReceivable() {
	ctx := context.Background()
	receivableID := uuid.NewString()

	s.receivableRepo.On("FindReceivableByID", ctx, s.adminID, receivableID).Return(nil, apperrors.ErrNotFound)

	_, err := s.service.ListSettlements(ctx, s.adminID, receivableID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	s.settlementRepo.AssertNotCalled(s.T(), "ListSettlementsByParent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReceivableServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReceivableServiceTestSuite))
}
