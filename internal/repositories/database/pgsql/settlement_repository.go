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

type PgxSettlementRepository struct {
	BaseRepository
}

// newPgxSettlementRepository creates a new repository for settlement lines.
func newPgxSettlementRepository(db DB) portsrepo.SettlementRepositoryFacade {
	return &PgxSettlementRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.SettlementRepositoryFacade = (*PgxSettlementRepository)(nil)

const settlementColumns = `settlement_id, admin_id, accrual_kind, parent_id, kind, principal, interest, discount,
	settled_on, reversed, reversal_of_id, reason, movement_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSettlement(row pgx.Row) (*domain.Settlement, error) {
	var s domain.Settlement
	err := row.Scan(
		&s.SettlementID, &s.AdminID, &s.AccrualKind, &s.ParentID, &s.Kind, &s.Principal, &s.Interest, &s.Discount,
		&s.SettledOn, &s.Reversed, &s.ReversalOfID, &s.Reason, &s.MovementID,
		&s.CreatedAt, &s.CreatedBy, &s.LastUpdatedAt, &s.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindSettlementByID retrieves a settlement line scoped to one tenant.
func (r *PgxSettlementRepository) FindSettlementByID(ctx context.Context, adminID, settlementID string) (*domain.Settlement, error) {
	return r.findSettlement(ctx, adminID, settlementID, "")
}

// FindSettlementByIDForUpdate locks the settlement row for the enclosing
// transaction.
func (r *PgxSettlementRepository) FindSettlementByIDForUpdate(ctx context.Context, adminID, settlementID string) (*domain.Settlement, error) {
	return r.findSettlement(ctx, adminID, settlementID, " FOR UPDATE")
}

func (r *PgxSettlementRepository) findSettlement(ctx context.Context, adminID, settlementID, lockSuffix string) (*domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements WHERE admin_id = $1 AND settlement_id = $2` + lockSuffix
	settlement, err := scanSettlement(r.db.QueryRow(ctx, query, adminID, settlementID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: settlement %s not found", apperrors.ErrNotFound, settlementID)
		}
		return nil, fmt.Errorf("failed to find settlement %s: %w", settlementID, err)
	}
	return settlement, nil
}

// ListSettlementsByParent retrieves every line of one accrual header, oldest
// first.
func (r *PgxSettlementRepository) ListSettlementsByParent(ctx context.Context, adminID string, kind domain.AccrualKind, parentID string) ([]domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + `
		FROM settlements
		WHERE admin_id = $1 AND accrual_kind = $2 AND parent_id = $3
		ORDER BY settled_on, created_at`
	rows, err := r.db.Query(ctx, query, adminID, kind, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settlements: %w", err)
	}
	defer rows.Close()

	var settlements []domain.Settlement
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan settlement: %w", err)
		}
		settlements = append(settlements, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate settlements: %w", err)
	}
	return settlements, nil
}

// SaveSettlement inserts a settlement line.
func (r *PgxSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement) error {
	query := `INSERT INTO settlements (` + settlementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.db.Exec(ctx, query,
		settlement.SettlementID, settlement.AdminID, settlement.AccrualKind, settlement.ParentID, settlement.Kind,
		settlement.Principal, settlement.Interest, settlement.Discount,
		settlement.SettledOn, settlement.Reversed, settlement.ReversalOfID, settlement.Reason, settlement.MovementID,
		settlement.CreatedAt, settlement.CreatedBy, settlement.LastUpdatedAt, settlement.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fmt.Errorf("%w: settlement %s already exists", apperrors.ErrDuplicate, settlement.SettlementID)
		}
		return fmt.Errorf("failed to save settlement %s: %w", settlement.SettlementID, err)
	}
	return nil
}

// MarkSettlementReversed flags the line reversed. The reversed = false guard
// keeps the flag a one-way latch; a flagged line fails with
// ErrOriginAlreadyReversed.
func (r *PgxSettlementRepository) MarkSettlementReversed(ctx context.Context, adminID, settlementID, userID string, now time.Time) error {
	query := `UPDATE settlements
		SET reversed = true, last_updated_at = $1, last_updated_by = $2
		WHERE admin_id = $3 AND settlement_id = $4 AND reversed = false`
	tag, err := r.db.Exec(ctx, query, now, userID, adminID, settlementID)
	if err != nil {
		return fmt.Errorf("failed to mark settlement %s reversed: %w", settlementID, err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.FindSettlementByID(ctx, adminID, settlementID); err != nil {
			return err
		}
		return fmt.Errorf("%w: settlement %s", apperrors.ErrOriginAlreadyReversed, settlementID)
	}
	return nil
}
