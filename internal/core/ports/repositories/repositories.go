package repositories

import "context"

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	BankAccountRepo  BankAccountRepositoryFacade
	MovementRepo     MovementRepositoryFacade
	PayableRepo      PayableRepositoryFacade
	ReceivableRepo   ReceivableRepositoryFacade
	SettlementRepo   SettlementRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	UserRepo         UserRepositoryFacade
}

// TransactionManager runs a closure as one atomic, isolated unit against the
// backing store. The provider handed to fn is bound to that transaction; all
// reads and writes made through it commit or roll back together.
//
// Implementations retry fn when a document in its read set was changed by a
// concurrent writer, so fn must not perform side effects outside the provided
// repositories (no notifications, no captured mutable state). When the retry
// budget is exhausted the call fails with apperrors.ErrConcurrencyConflict.
type TransactionManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, repos RepositoryProvider) error) error
}
