package domain

import "time"

// OriginType tags where a bank movement came from.
type OriginType string

const (
	OriginOtherInflow       OriginType = "OUTRAS_ENTRADAS"
	OriginOtherOutflow      OriginType = "OUTRAS_SAIDAS"
	OriginTransferIn        OriginType = "TRANSFERENCIA_ENTRADA"
	OriginTransferOut       OriginType = "TRANSFERENCIA_SAIDA"
	OriginPayablePayment    OriginType = "PAGAMENTO_DESPESA"
	OriginReceivableReceipt OriginType = "RECEBIMENTO_RECEITA"
	OriginReversal          OriginType = "ESTORNO"
)

// HasAccrualOrigin reports whether movements of this type are linked to a
// settlement record on a payable or receivable.
func (t OriginType) HasAccrualOrigin() bool {
	return t == OriginPayablePayment || t == OriginReceivableReceipt
}

// BankMovement is a single ledger entry against one bank account. Amounts are
// signed integer centavos: positive is an inflow, negative an outflow.
// A movement is never deleted; reversal flags it and inserts a counter-entry.
type BankMovement struct {
	MovementID      string     `json:"id"`
	AdminID         string     `json:"adminId"`
	BankAccountID   string     `json:"contaBancariaId"`
	TransactionDate time.Time  `json:"dataTransacao"`
	Amount          int64      `json:"valor"`
	Description     string     `json:"descricao"`
	OriginType      OriginType `json:"origemTipo"`
	OriginID        *string    `json:"origemId,omitempty"`       // settlement record, when accrual-linked
	OriginParentID  *string    `json:"origemParentId,omitempty"` // accrual header, when accrual-linked
	Reconciled      bool       `json:"conciliado"`
	ReconciledAt    *time.Time `json:"dataConciliacao,omitempty"`
	ReconciledBy    string     `json:"usuarioConciliacao,omitempty"`
	Reversed        bool       `json:"estornado"`
	ReversalOfID    *string    `json:"estornoDeId,omitempty"`
	ReversalReason  string     `json:"motivoEstorno,omitempty"`
	TransferPairID  *string    `json:"transferenciaParId,omitempty"` // the other leg of a transfer
	AuditFields
}
