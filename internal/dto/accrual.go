package dto

import (
	"github.com/caixazul/treasury_backend/internal/core/domain"
	"github.com/caixazul/treasury_backend/internal/utils"
	"github.com/shopspring/decimal"
)

// CreatePayableRequest registers a new obligation (despesa).
type CreatePayableRequest struct {
	Description string          `json:"descricao" binding:"required"`
	Amount      decimal.Decimal `json:"valorOriginal" binding:"required"`
	DueDate     string          `json:"vencimento" binding:"required,datetime=2006-01-02"`
}

// CreateReceivableRequest registers a new receivable (receita).
type CreateReceivableRequest struct {
	Description string          `json:"descricao" binding:"required"`
	Amount      decimal.Decimal `json:"valorOriginal" binding:"required"`
	DueDate     string          `json:"dataVencimento" binding:"required,datetime=2006-01-02"`
}

// SettleRequest applies a payment or receipt against an accrual header and
// records the matching bank movement.
type SettleRequest struct {
	BankAccountID string          `json:"contaBancariaId" binding:"required"`
	Date          string          `json:"data" binding:"required,datetime=2006-01-02"`
	Principal     decimal.Decimal `json:"valorPrincipal" binding:"required"`
	Interest      decimal.Decimal `json:"juros"`
	Discount      decimal.Decimal `json:"desconto"`
}

// PayableResponse is the API representation of a payable header.
type PayableResponse struct {
	ID               string                  `json:"id"`
	Description      string                  `json:"descricao"`
	OriginalAmount   decimal.Decimal         `json:"valorOriginal"`
	TotalPaid        decimal.Decimal         `json:"totalPago"`
	RemainingBalance decimal.Decimal         `json:"valorSaldo"`
	DueDate          string                  `json:"vencimento"`
	Status           domain.SettlementStatus `json:"status"`
}

// ReceivableResponse is the API representation of a receivable header.
type ReceivableResponse struct {
	ID             string                  `json:"id"`
	Description    string                  `json:"descricao"`
	OriginalAmount decimal.Decimal         `json:"valorOriginal"`
	TotalReceived  decimal.Decimal         `json:"totalRecebido"`
	PendingBalance decimal.Decimal         `json:"saldoPendente"`
	DueDate        string                  `json:"dataVencimento"`
	Status         domain.SettlementStatus `json:"status"`
}

// SettlementResponse is the API representation of a settlement line.
type SettlementResponse struct {
	ID         string                `json:"id"`
	ParentID   string                `json:"parentId"`
	Kind       domain.SettlementKind `json:"kind"`
	Principal  decimal.Decimal       `json:"valorPrincipal"`
	Interest   decimal.Decimal       `json:"juros"`
	Discount   decimal.Decimal       `json:"desconto"`
	SettledOn  string                `json:"data"`
	Reversed   bool                  `json:"estornado"`
	Reason     string                `json:"motivo,omitempty"`
	MovementID *string               `json:"movimentacaoId,omitempty"`
}

// ToPayableResponse maps a domain payable.
func ToPayableResponse(p *domain.Payable) PayableResponse {
	return PayableResponse{
		ID:               p.PayableID,
		Description:      p.Description,
		OriginalAmount:   utils.FromCents(p.OriginalAmount),
		TotalPaid:        utils.FromCents(p.TotalPaid),
		RemainingBalance: utils.FromCents(p.RemainingBalance),
		DueDate:          p.DueDate.Format(DateLayout),
		Status:           p.Status,
	}
}

// ToReceivableResponse maps a domain receivable.
func ToReceivableResponse(r *domain.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:             r.ReceivableID,
		Description:    r.Description,
		OriginalAmount: utils.FromCents(r.OriginalAmount),
		TotalReceived:  utils.FromCents(r.TotalReceived),
		PendingBalance: utils.FromCents(r.PendingBalance),
		DueDate:        r.DueDate.Format(DateLayout),
		Status:         r.Status,
	}
}

// ToSettlementResponse maps a domain settlement line.
func ToSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		ID:         s.SettlementID,
		ParentID:   s.ParentID,
		Kind:       s.Kind,
		Principal:  utils.FromCents(s.Principal),
		Interest:   utils.FromCents(s.Interest),
		Discount:   utils.FromCents(s.Discount),
		SettledOn:  s.SettledOn.Format(DateLayout),
		Reversed:   s.Reversed,
		Reason:     s.Reason,
		MovementID: s.MovementID,
	}
}

// ToSettlementResponses maps a slice of settlement lines.
func ToSettlementResponses(settlements []domain.Settlement) []SettlementResponse {
	out := make([]SettlementResponse, len(settlements))
	for i := range settlements {
		out[i] = ToSettlementResponse(&settlements[i])
	}
	return out
}
