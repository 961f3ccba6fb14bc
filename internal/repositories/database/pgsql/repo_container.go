package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider builds the pool-bound repository set used outside
// transactions.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return newRepositoryProvider(pool)
}

// newRepositoryProvider binds every repository to the given querier, which is
// either the shared pool or one open transaction.
func newRepositoryProvider(db DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BankAccountRepo:  newPgxBankAccountRepository(db),
		MovementRepo:     newPgxMovementRepository(db),
		PayableRepo:      newPgxPayableRepository(db),
		ReceivableRepo:   newPgxReceivableRepository(db),
		SettlementRepo:   newPgxSettlementRepository(db),
		NotificationRepo: newPgxNotificationRepository(db),
		UserRepo:         newPgxUserRepository(db),
	}
}
