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

type PgxMovementRepository struct {
	BaseRepository
}

// newPgxMovementRepository creates a new repository for bank movements.
func newPgxMovementRepository(db DB) portsrepo.MovementRepositoryFacade {
	return &PgxMovementRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.MovementRepositoryFacade = (*PgxMovementRepository)(nil)

const movementColumns = `movement_id, admin_id, bank_account_id, transaction_date, amount, description,
	origin_type, origin_id, origin_parent_id, reconciled, reconciled_at, reconciled_by,
	reversed, reversal_of_id, reversal_reason, transfer_pair_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanMovement(row pgx.Row) (*domain.BankMovement, error) {
	var m domain.BankMovement
	err := row.Scan(
		&m.MovementID, &m.AdminID, &m.BankAccountID, &m.TransactionDate, &m.Amount, &m.Description,
		&m.OriginType, &m.OriginID, &m.OriginParentID, &m.Reconciled, &m.ReconciledAt, &m.ReconciledBy,
		&m.Reversed, &m.ReversalOfID, &m.ReversalReason, &m.TransferPairID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMovementByID retrieves a movement scoped to one tenant.
func (r *PgxMovementRepository) FindMovementByID(ctx context.Context, adminID, movementID string) (*domain.BankMovement, error) {
	return r.findMovement(ctx, adminID, movementID, "")
}

// FindMovementByIDForUpdate locks the movement row for the enclosing
// transaction.
func (r *PgxMovementRepository) FindMovementByIDForUpdate(ctx context.Context, adminID, movementID string) (*domain.BankMovement, error) {
	return r.findMovement(ctx, adminID, movementID, " FOR UPDATE")
}

func (r *PgxMovementRepository) findMovement(ctx context.Context, adminID, movementID, lockSuffix string) (*domain.BankMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM bank_movements WHERE admin_id = $1 AND movement_id = $2` + lockSuffix
	movement, err := scanMovement(r.db.QueryRow(ctx, query, adminID, movementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: movement %s not found", apperrors.ErrNotFound, movementID)
		}
		return nil, fmt.Errorf("failed to find movement %s: %w", movementID, err)
	}
	return movement, nil
}

// ListMovementsByAccount retrieves the account's movements with transaction
// date within [from, to], ordered by date then creation.
func (r *PgxMovementRepository) ListMovementsByAccount(ctx context.Context, adminID, accountID string, from, to time.Time) ([]domain.BankMovement, error) {
	query := `SELECT ` + movementColumns + `
		FROM bank_movements
		WHERE admin_id = $1 AND bank_account_id = $2 AND transaction_date >= $3 AND transaction_date <= $4
		ORDER BY transaction_date, created_at`
	rows, err := r.db.Query(ctx, query, adminID, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.BankMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movements: %w", err)
	}
	return movements, nil
}

// SumMovementsThrough returns the signed sum of all movements of an account
// with transaction date on or before asOf. Reversed movements stay in the
// sum: a counter-entry shares its original's transaction date, so the pair
// nets to zero on either side of any cutoff.
func (r *PgxMovementRepository) SumMovementsThrough(ctx context.Context, adminID, accountID string, asOf time.Time) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0)
		FROM bank_movements
		WHERE admin_id = $1 AND bank_account_id = $2 AND transaction_date <= $3`
	var sum int64
	if err := r.db.QueryRow(ctx, query, adminID, accountID, asOf).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum movements: %w", err)
	}
	return sum, nil
}

// FindExistingMovementIDs reports which of the given ids exist for the tenant.
func (r *PgxMovementRepository) FindExistingMovementIDs(ctx context.Context, adminID string, movementIDs []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(movementIDs))
	if len(movementIDs) == 0 {
		return existing, nil
	}

	query := `SELECT movement_id FROM bank_movements WHERE admin_id = $1 AND movement_id = ANY($2)`
	rows, err := r.db.Query(ctx, query, adminID, movementIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query movement ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan movement id: %w", err)
		}
		existing[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate movement ids: %w", err)
	}
	return existing, nil
}

const insertMovementQuery = `
	INSERT INTO bank_movements (` + movementColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`

func movementArgs(m domain.BankMovement) []any {
	return []any{
		m.MovementID, m.AdminID, m.BankAccountID, m.TransactionDate, m.Amount, m.Description,
		m.OriginType, m.OriginID, m.OriginParentID, m.Reconciled, m.ReconciledAt, m.ReconciledBy,
		m.Reversed, m.ReversalOfID, m.ReversalReason, m.TransferPairID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// SaveMovement inserts a single movement.
func (r *PgxMovementRepository) SaveMovement(ctx context.Context, movement domain.BankMovement) error {
	_, err := r.db.Exec(ctx, insertMovementQuery, movementArgs(movement)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: movement %s already exists", apperrors.ErrDuplicate, movement.MovementID)
		}
		return fmt.Errorf("failed to save movement %s: %w", movement.MovementID, err)
	}
	return nil
}

// SaveMovements inserts several movements as one batched write.
func (r *PgxMovementRepository) SaveMovements(ctx context.Context, movements []domain.BankMovement) error {
	if len(movements) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, m := range movements {
		batch.Queue(insertMovementQuery, movementArgs(m)...)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for _, m := range movements {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
				return fmt.Errorf("%w: movement %s already exists", apperrors.ErrDuplicate, m.MovementID)
			}
			return fmt.Errorf("failed to save movement %s: %w", m.MovementID, err)
		}
	}
	return nil
}

// MarkMovementReversed flags the movement reversed, and reconciled so the
// flagged pair stops counting as pending work. The reversed = false guard
// makes the flag a one-way latch: a second caller finds zero rows updated.
func (r *PgxMovementRepository) MarkMovementReversed(ctx context.Context, adminID, movementID, reason, userID string, now time.Time) error {
	query := `UPDATE bank_movements
		SET reversed = true, reversal_reason = $1,
			reconciled = true, reconciled_at = $2, reconciled_by = $3,
			last_updated_at = $2, last_updated_by = $3
		WHERE admin_id = $4 AND movement_id = $5 AND reversed = false`
	tag, err := r.db.Exec(ctx, query, reason, now, userID, adminID, movementID)
	if err != nil {
		return fmt.Errorf("failed to mark movement %s reversed: %w", movementID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindMovementByID(ctx, adminID, movementID); err != nil {
			return err
		}
		return fmt.Errorf("%w: movement %s", apperrors.ErrAlreadyReversed, movementID)
	}
	return nil
}

// SetReconciled applies the reconciliation flag to every named movement as one
// batched write. Clearing the flag also clears the stamp.
func (r *PgxMovementRepository) SetReconciled(ctx context.Context, adminID string, movementIDs []string, value bool, userID string, now time.Time) error {
	if len(movementIDs) == 0 {
		return nil
	}

	var reconciledAt *time.Time
	reconciledBy := ""
	if value {
		reconciledAt = &now
		reconciledBy = userID
	}

	query := `UPDATE bank_movements
		SET reconciled = $1, reconciled_at = $2, reconciled_by = $3,
			last_updated_at = $4, last_updated_by = $5
		WHERE admin_id = $6 AND movement_id = $7`
	batch := &pgx.Batch{}
	for _, id := range movementIDs {
		batch.Queue(query, value, reconciledAt, reconciledBy, now, userID, adminID, id)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for _, id := range movementIDs {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("failed to reconcile movement %s: %w", id, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: movement %s not found", apperrors.ErrNotFound, id)
		}
	}
	return nil
}
