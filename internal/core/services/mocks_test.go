package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/caixazul/treasury_backend/internal/core/domain"
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/caixazul/treasury_backend/internal/core/ports/services"
)

// --- Fake TransactionManager ---

// fakeTxManager runs the closure directly against a fixed repository set. The
// services under test only care that everything inside the closure shares one
// provider.
type fakeTxManager struct {
	repos portsrepo.RepositoryProvider
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.RepositoryProvider) error) error {
	return fn(ctx, f.repos)
}

var _ portsrepo.TransactionManager = (*fakeTxManager)(nil)

// --- Mock MovementRepository ---

type MockMovementRepository struct {
	mock.Mock
}

var _ portsrepo.MovementRepositoryFacade = (*MockMovementRepository)(nil)

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, adminID, movementID string) (*domain.BankMovement, error) {
	args := m.Called(ctx, adminID, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankMovement), args.Error(1)
}

func (m *MockMovementRepository) FindMovementByIDForUpdate(ctx context.Context, adminID, movementID string) (*domain.BankMovement, error) {
	args := m.Called(ctx, adminID, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankMovement), args.Error(1)
}

func (m *MockMovementRepository) ListMovementsByAccount(ctx context.Context, adminID, accountID string, from, to time.Time) ([]domain.BankMovement, error) {
	args := m.Called(ctx, adminID, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankMovement), args.Error(1)
}

func (m *MockMovementRepository) SumMovementsThrough(ctx context.Context, adminID, accountID string, asOf time.Time) (int64, error) {
	args := m.Called(ctx, adminID, accountID, asOf)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovementRepository) FindExistingMovementIDs(ctx context.Context, adminID string, movementIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, adminID, movementIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockMovementRepository) SaveMovement(ctx context.Context, movement domain.BankMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) SaveMovements(ctx context.Context, movements []domain.BankMovement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockMovementRepository) MarkMovementReversed(ctx context.Context, adminID, movementID, reason, userID string, now time.Time) error {
	args := m.Called(ctx, adminID, movementID, reason, userID, now)
	return args.Error(0)
}

func (m *MockMovementRepository) SetReconciled(ctx context.Context, adminID string, movementIDs []string, value bool, userID string, now time.Time) error {
	args := m.Called(ctx, adminID, movementIDs, value, userID, now)
	return args.Error(0)
}

// --- Mock BankAccountRepository ---

type MockBankAccountRepository struct {
	mock.Mock
}

var _ portsrepo.BankAccountRepositoryFacade = (*MockBankAccountRepository)(nil)

func (m *MockBankAccountRepository) FindBankAccountByID(ctx context.Context, adminID, accountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, adminID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) ListBankAccounts(ctx context.Context, adminID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// --- Mock PayableRepository ---

type MockPayableRepository struct {
	mock.Mock
}

var _ portsrepo.PayableRepositoryFacade = (*MockPayableRepository)(nil)

func (m *MockPayableRepository) FindPayableByID(ctx context.Context, adminID, payableID string) (*domain.Payable, error) {
	args := m.Called(ctx, adminID, payableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) FindPayableByIDForUpdate(ctx context.Context, adminID, payableID string) (*domain.Payable, error) {
	args := m.Called(ctx, adminID, payableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) ListPayables(ctx context.Context, adminID string, statuses []domain.SettlementStatus) ([]domain.Payable, error) {
	args := m.Called(ctx, adminID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payable), args.Error(1)
}

func (m *MockPayableRepository) SavePayable(ctx context.Context, payable domain.Payable) error {
	args := m.Called(ctx, payable)
	return args.Error(0)
}

func (m *MockPayableRepository) UpdatePayableTotals(ctx context.Context, adminID, payableID string, totalPaid, remainingBalance int64, status domain.SettlementStatus, expectedVersion int64, userID string, now time.Time) error {
	args := m.Called(ctx, adminID, payableID, totalPaid, remainingBalance, status, expectedVersion, userID, now)
	return args.Error(0)
}

// --- Mock ReceivableRepository ---

type MockReceivableRepository struct {
	mock.Mock
}

var _ portsrepo.ReceivableRepositoryFacade = (*MockReceivableRepository)(nil)

func (m *MockReceivableRepository) FindReceivableByID(ctx context.Context, adminID, receivableID string) (*domain.Receivable, error) {
	args := m.Called(ctx, adminID, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) FindReceivableByIDForUpdate(ctx context.Context, adminID, receivableID string) (*domain.Receivable, error) {
	args := m.Called(ctx, adminID, receivableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) ListReceivables(ctx context.Context, adminID string, statuses []domain.SettlementStatus) ([]domain.Receivable, error) {
	args := m.Called(ctx, adminID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Receivable), args.Error(1)
}

func (m *MockReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) error {
	args := m.Called(ctx, receivable)
	return args.Error(0)
}

func (m *MockReceivableRepository) UpdateReceivableTotals(ctx context.Context, adminID, receivableID string, totalReceived, pendingBalance int64, status domain.SettlementStatus, expectedVersion int64, userID string, now time.Time) error {
	args := m.Called(ctx, adminID, receivableID, totalReceived, pendingBalance, status, expectedVersion, userID, now)
	return args.Error(0)
}

// --- Mock SettlementRepository ---

type MockSettlementRepository struct {
	mock.Mock
}

var _ portsrepo.SettlementRepositoryFacade = (*MockSettlementRepository)(nil)

func (m *MockSettlementRepository) FindSettlementByID(ctx context.Context, adminID, settlementID string) (*domain.Settlement, error) {
	args := m.Called(ctx, adminID, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) FindSettlementByIDForUpdate(ctx context.Context, adminID, settlementID string) (*domain.Settlement, error) {
	args := m.Called(ctx, adminID, settlementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) ListSettlementsByParent(ctx context.Context, adminID string, kind domain.AccrualKind, parentID string) ([]domain.Settlement, error) {
	args := m.Called(ctx, adminID, kind, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	args := m.Called(ctx, settlement)
	return args.Error(0)
}

func (m *MockSettlementRepository) MarkSettlementReversed(ctx context.Context, adminID, settlementID, userID string, now time.Time) error {
	args := m.Called(ctx, adminID, settlementID, userID, now)
	return args.Error(0)
}

// --- Mock NotificationRepository ---

type MockNotificationRepository struct {
	mock.Mock
}

var _ portsrepo.NotificationRepositoryFacade = (*MockNotificationRepository)(nil)

func (m *MockNotificationRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, adminID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, adminID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkNotificationsRead(ctx context.Context, adminID string, notificationIDs []string, now time.Time) error {
	args := m.Called(ctx, adminID, notificationIDs, now)
	return args.Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock NotificationService ---

type MockNotificationService struct {
	mock.Mock
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

func (m *MockNotificationService) ListNotifications(ctx context.Context, adminID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	args := m.Called(ctx, adminID, unreadOnly, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, adminID string, notificationIDs []string) error {
	args := m.Called(ctx, adminID, notificationIDs)
	return args.Error(0)
}

func (m *MockNotificationService) NotifyReversal(ctx context.Context, adminID string, movement *domain.BankMovement, reason string) {
	m.Called(ctx, adminID, movement, reason)
}

func (m *MockNotificationService) RefreshDueNotifications(ctx context.Context, adminID string) (int, error) {
	args := m.Called(ctx, adminID)
	return args.Int(0), args.Error(1)
}
