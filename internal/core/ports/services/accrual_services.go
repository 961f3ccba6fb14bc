package services

import (
	"context"

	"github.com/caixazul/treasury_backend/internal/core/domain"
	"github.com/caixazul/treasury_backend/internal/dto"
)

// PayableSvcFacade exposes the payable (despesa) operations.
type PayableSvcFacade interface {
	CreatePayable(ctx context.Context, adminID string, req dto.CreatePayableRequest) (*domain.Payable, error)
	GetPayableByID(ctx context.Context, adminID, payableID string) (*domain.Payable, error)
	ListPayables(ctx context.Context, adminID string, statuses []domain.SettlementStatus) ([]domain.Payable, error)
	ListSettlements(ctx context.Context, adminID, payableID string) ([]domain.Settlement, error)

	// SettlePayable applies a payment: inserts the settlement line, records
	// the matching bank movement and updates the header's totals and status,
	// all atomically. Principal beyond the remaining balance is rejected.
	SettlePayable(ctx context.Context, adminID, payableID string, req dto.SettleRequest) (*domain.Settlement, error)
}

// ReceivableSvcFacade exposes the receivable (receita) operations.
type ReceivableSvcFacade interface {
	CreateReceivable(ctx context.Context, adminID string, req dto.CreateReceivableRequest) (*domain.Receivable, error)
	GetReceivableByID(ctx context.Context, adminID, receivableID string) (*domain.Receivable, error)
	ListReceivables(ctx context.Context, adminID string, statuses []domain.SettlementStatus) ([]domain.Receivable, error)
	ListSettlements(ctx context.Context, adminID, receivableID string) ([]domain.Settlement, error)

	// SettleReceivable mirrors SettlePayable for the receipt side.
	SettleReceivable(ctx context.Context, adminID, receivableID string, req dto.SettleRequest) (*domain.Settlement, error)
}
