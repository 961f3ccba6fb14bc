package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caixazul/treasury_backend/internal/apperrors"
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
	"github.com/caixazul/treasury_backend/internal/middleware"
)

const (
	txMaxAttempts   = 5
	txRetryBaseWait = 20 * time.Millisecond
)

// PgxTxManager runs closures inside serializable database transactions and
// retries them on serialization failures, giving callers optimistic
// transaction semantics over row locks.
type PgxTxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a transaction manager over the given pool.
func NewTxManager(pool *pgxpool.Pool) portsrepo.TransactionManager {
	return &PgxTxManager{pool: pool}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithTx executes fn inside one serializable transaction, handing it a
// repository provider bound to that transaction. Serialization failures and
// deadlocks roll back and retry with backoff; when the attempt budget runs
// out the call fails with apperrors.ErrConcurrencyConflict.
func (m *PgxTxManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.RepositoryProvider) error) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	var lastErr error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err := m.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err

		logger.Warn("Transaction serialization conflict, retrying",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(txRetryBaseWait * time.Duration(attempt)):
		}
	}
	return fmt.Errorf("%w: transaction aborted after %d attempts: %v", apperrors.ErrConcurrencyConflict, txMaxAttempts, lastErr)
}

func (m *PgxTxManager) runOnce(ctx context.Context, fn func(ctx context.Context, repos portsrepo.RepositoryProvider) error) error {
	tx, err := m.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if err := fn(ctx, newRepositoryProvider(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isSerializationFailure matches serialization_failure (40001) and
// deadlock_detected (40P01).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
