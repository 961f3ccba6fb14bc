package dto

import (
	"time"

	"github.com/caixazul/treasury_backend/internal/core/domain"
	"github.com/caixazul/treasury_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for transaction and due dates.
const DateLayout = "2006-01-02"

// CreateMovementRequest creates a manual ledger entry. Direction decides the
// sign applied to the (positive) amount.
type CreateMovementRequest struct {
	BankAccountID string          `json:"contaBancariaId" binding:"required"`
	Date          string          `json:"dataTransacao" binding:"required,datetime=2006-01-02"`
	Amount        decimal.Decimal `json:"valor" binding:"required"`
	Direction     string          `json:"tipo" binding:"required,oneof=ENTRADA SAIDA"`
	Description   string          `json:"descricao" binding:"required"`
}

// TransferRequest moves money between two accounts of the same tenant,
// creating a linked pair of movements.
type TransferRequest struct {
	FromAccountID string          `json:"contaOrigemId" binding:"required"`
	ToAccountID   string          `json:"contaDestinoId" binding:"required"`
	Date          string          `json:"dataTransacao" binding:"required,datetime=2006-01-02"`
	Amount        decimal.Decimal `json:"valor" binding:"required"`
	Description   string          `json:"descricao"`
}

// ReverseMovementRequest carries the mandatory reversal reason.
type ReverseMovementRequest struct {
	Reason string `json:"motivo" binding:"required"`
}

// ReconcileRequest toggles the reconciliation flag on a set of movements.
type ReconcileRequest struct {
	MovementIDs []string `json:"movimentacaoIds" binding:"required,min=1"`
	Reconciled  bool     `json:"conciliado"`
}

// ListMovementsParams filters a movement listing.
type ListMovementsParams struct {
	BankAccountID string `form:"contaBancariaId" binding:"required"`
	From          string `form:"de" binding:"required,datetime=2006-01-02"`
	To            string `form:"ate" binding:"required,datetime=2006-01-02"`
}

// MovementResponse is the API representation of a bank movement.
type MovementResponse struct {
	ID              string            `json:"id"`
	BankAccountID   string            `json:"contaBancariaId"`
	TransactionDate string            `json:"dataTransacao"`
	Amount          decimal.Decimal   `json:"valor"`
	Description     string            `json:"descricao"`
	OriginType      domain.OriginType `json:"origemTipo"`
	Reconciled      bool              `json:"conciliado"`
	ReconciledAt    *time.Time        `json:"dataConciliacao,omitempty"`
	Reversed        bool              `json:"estornado"`
	ReversalOfID    *string           `json:"estornoDeId,omitempty"`
	ReversalReason  string            `json:"motivoEstorno,omitempty"`
}

// ToMovementResponse maps a domain movement to its API representation.
func ToMovementResponse(m *domain.BankMovement) MovementResponse {
	return MovementResponse{
		ID:              m.MovementID,
		BankAccountID:   m.BankAccountID,
		TransactionDate: m.TransactionDate.Format(DateLayout),
		Amount:          utils.FromCents(m.Amount),
		Description:     m.Description,
		OriginType:      m.OriginType,
		Reconciled:      m.Reconciled,
		ReconciledAt:    m.ReconciledAt,
		Reversed:        m.Reversed,
		ReversalOfID:    m.ReversalOfID,
		ReversalReason:  m.ReversalReason,
	}
}

// ToMovementResponses maps a slice of movements.
func ToMovementResponses(movements []domain.BankMovement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = ToMovementResponse(&movements[i])
	}
	return out
}
