package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/caixazul/treasury_backend/internal/apperrors"
	"github.com/caixazul/treasury_backend/internal/core/domain"
	portsrepo "github.com/caixazul/treasury_backend/internal/core/ports/repositories"
)

type PgxReceivableRepository struct {
	BaseRepository
}

// newPgxReceivableRepository creates a new repository for receivables.
func newPgxReceivableRepository(db DB) portsrepo.ReceivableRepositoryFacade {
	return &PgxReceivableRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.ReceivableRepositoryFacade = (*PgxReceivableRepository)(nil)

const receivableColumns = `receivable_id, admin_id, description, original_amount, total_received, pending_balance,
	due_date, status, version, created_at, created_by, last_updated_at, last_updated_by`

func scanReceivable(row pgx.Row) (*domain.Receivable, error) {
	var rc domain.Receivable
	err := row.Scan(
		&rc.ReceivableID, &rc.AdminID, &rc.Description, &rc.OriginalAmount, &rc.TotalReceived, &rc.PendingBalance,
		&rc.DueDate, &rc.Status, &rc.Version, &rc.CreatedAt, &rc.CreatedBy, &rc.LastUpdatedAt, &rc.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}

// FindReceivableByID retrieves a receivable scoped to one tenant.
func (r *PgxReceivableRepository) FindReceivableByID(ctx context.Context, adminID, receivableID string) (*domain.Receivable, error) {
	return r.findReceivable(ctx, adminID, receivableID, "")
}

// FindReceivableByIDForUpdate locks the header row for the enclosing
// transaction.
func (r *PgxReceivableRepository) FindReceivableByIDForUpdate(ctx context.Context, adminID, receivableID string) (*domain.Receivable, error) {
	return r.findReceivable(ctx, adminID, receivableID, " FOR UPDATE")
}

func (r *PgxReceivableRepository) findReceivable(ctx context.Context, adminID, receivableID, lockSuffix string) (*domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE admin_id = $1 AND receivable_id = $2` + lockSuffix
	receivable, err := scanReceivable(r.db.QueryRow(ctx, query, adminID, receivableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: receivable %s not found", apperrors.ErrNotFound, receivableID)
		}
		return nil, fmt.Errorf("failed to find receivable %s: %w", receivableID, err)
	}
	return receivable, nil
}

// ListReceivables retrieves the tenant's receivables ordered by due date,
// optionally filtered to a set of statuses.
func (r *PgxReceivableRepository) ListReceivables(ctx context.Context, adminID string, statuses []domain.SettlementStatus) ([]domain.Receivable, error) {
	query := `SELECT ` + receivableColumns + ` FROM receivables WHERE admin_id = $1`
	args := []any{adminID}
	if len(statuses) > 0 {
		query += ` AND status = ANY($2)`
		args = append(args, statusStrings(statuses))
	}
	query += ` ORDER BY due_date, created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list receivables: %w", err)
	}
	defer rows.Close()

	var receivables []domain.Receivable
	for rows.Next() {
		rc, err := scanReceivable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan receivable: %w", err)
		}
		receivables = append(receivables, *rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receivables: %w", err)
	}
	return receivables, nil
}

// SaveReceivable inserts a new receivable header.
func (r *PgxReceivableRepository) SaveReceivable(ctx context.Context, receivable domain.Receivable) error {
	query := `INSERT INTO receivables (` + receivableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		receivable.ReceivableID, receivable.AdminID, receivable.Description, receivable.OriginalAmount, receivable.TotalReceived, receivable.PendingBalance,
		receivable.DueDate, receivable.Status, receivable.Version, receivable.CreatedAt, receivable.CreatedBy, receivable.LastUpdatedAt, receivable.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: receivable %s already exists", apperrors.ErrDuplicate, receivable.ReceivableID)
		}
		return fmt.Errorf("failed to save receivable %s: %w", receivable.ReceivableID, err)
	}
	return nil
}

// UpdateReceivableTotals writes recomputed totals and status behind the same
// version compare-and-swap as the payable side.
func (r *PgxReceivableRepository) UpdateReceivableTotals(ctx context.Context, adminID, receivableID string, totalReceived, pendingBalance int64, status domain.SettlementStatus, expectedVersion int64, userID string, now time.Time) error {
	query := `UPDATE receivables
		SET total_received = $1, pending_balance = $2, status = $3, version = version + 1,
			last_updated_at = $4, last_updated_by = $5
		WHERE admin_id = $6 AND receivable_id = $7 AND version = $8`
	tag, err := r.db.Exec(ctx, query, totalReceived, pendingBalance, status, now, userID, adminID, receivableID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update receivable %s totals: %w", receivableID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindReceivableByID(ctx, adminID, receivableID); err != nil {
			return err
		}
		return fmt.Errorf("%w: receivable %s version %d is stale", apperrors.ErrConcurrencyConflict, receivableID, expectedVersion)
	}
	return nil
}
