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

type PgxPayableRepository struct {
	BaseRepository
}

// newPgxPayableRepository creates a new repository for payables.
func newPgxPayableRepository(db DB) portsrepo.PayableRepositoryFacade {
	return &PgxPayableRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.PayableRepositoryFacade = (*PgxPayableRepository)(nil)

const payableColumns = `payable_id, admin_id, description, original_amount, total_paid, remaining_balance,
	due_date, status, version, created_at, created_by, last_updated_at, last_updated_by`

func scanPayable(row pgx.Row) (*domain.Payable, error) {
	var p domain.Payable
	err := row.Scan(
		&p.PayableID, &p.AdminID, &p.Description, &p.OriginalAmount, &p.TotalPaid, &p.RemainingBalance,
		&p.DueDate, &p.Status, &p.Version, &p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPayableByID retrieves a payable scoped to one tenant.
func (r *PgxPayableRepository) FindPayableByID(ctx context.Context, adminID, payableID string) (*domain.Payable, error) {
	return r.findPayable(ctx, adminID, payableID, "")
}

// FindPayableByIDForUpdate locks the header row for the enclosing transaction.
func (r *PgxPayableRepository) FindPayableByIDForUpdate(ctx context.Context, adminID, payableID string) (*domain.Payable, error) {
	return r.findPayable(ctx, adminID, payableID, " FOR UPDATE")
}

func (r *PgxPayableRepository) findPayable(ctx context.Context, adminID, payableID, lockSuffix string) (*domain.Payable, error) {
	query := `SELECT ` + payableColumns + ` FROM payables WHERE admin_id = $1 AND payable_id = $2` + lockSuffix
	payable, err := scanPayable(r.db.QueryRow(ctx, query, adminID, payableID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: payable %s not found", apperrors.ErrNotFound, payableID)
		}
		return nil, fmt.Errorf("failed to find payable %s: %w", payableID, err)
	}
	return payable, nil
}

// ListPayables retrieves the tenant's payables ordered by due date, optionally
// filtered to a set of statuses.
func (r *PgxPayableRepository) ListPayables(ctx context.Context, adminID string, statuses []domain.SettlementStatus) ([]domain.Payable, error) {
	query := `SELECT ` + payableColumns + ` FROM payables WHERE admin_id = $1`
	args := []any{adminID}
	if len(statuses) > 0 {
		query += ` AND status = ANY($2)`
		args = append(args, statusStrings(statuses))
	}
	query += ` ORDER BY due_date, created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payables: %w", err)
	}
	defer rows.Close()

	var payables []domain.Payable
	for rows.Next() {
		p, err := scanPayable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payable: %w", err)
		}
		payables = append(payables, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payables: %w", err)
	}
	return payables, nil
}

// SavePayable inserts a new payable header.
func (r *PgxPayableRepository) SavePayable(ctx context.Context, payable domain.Payable) error {
	query := `INSERT INTO payables (` + payableColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		payable.PayableID, payable.AdminID, payable.Description, payable.OriginalAmount, payable.TotalPaid, payable.RemainingBalance,
		payable.DueDate, payable.Status, payable.Version, payable.CreatedAt, payable.CreatedBy, payable.LastUpdatedAt, payable.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: payable %s already exists", apperrors.ErrDuplicate, payable.PayableID)
		}
		return fmt.Errorf("failed to save payable %s: %w", payable.PayableID, err)
	}
	return nil
}

// UpdatePayableTotals writes recomputed totals and status. The version guard
// turns the write into a compare-and-swap; a stale expectedVersion means a
// concurrent settlement or reversal won, and the caller must re-read.
func (r *PgxPayableRepository) UpdatePayableTotals(ctx context.Context, adminID, payableID string, totalPaid, remainingBalance int64, status domain.SettlementStatus, expectedVersion int64, userID string, now time.Time) error {
	query := `UPDATE payables
		SET total_paid = $1, remaining_balance = $2, status = $3, version = version + 1,
			last_updated_at = $4, last_updated_by = $5
		WHERE admin_id = $6 AND payable_id = $7 AND version = $8`
	tag, err := r.db.Exec(ctx, query, totalPaid, remainingBalance, status, now, userID, adminID, payableID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update payable %s totals: %w", payableID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindPayableByID(ctx, adminID, payableID); err != nil {
			return err
		}
		return fmt.Errorf("%w: payable %s version %d is stale", apperrors.ErrConcurrencyConflict, payableID, expectedVersion)
	}
	return nil
}

// statusStrings converts statuses for array binding.
func statusStrings(statuses []domain.SettlementStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
