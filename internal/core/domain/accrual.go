package domain

import "time"

// AccrualKind distinguishes the two accrual hierarchies.
type AccrualKind string

const (
	KindPayable    AccrualKind = "DESPESA"
	KindReceivable AccrualKind = "RECEITA"
)

// SettlementStatus is the lifecycle state of an accrual header. Display
// values match the original ledger records.
type SettlementStatus string

const (
	StatusPending           SettlementStatus = "Pendente"
	StatusOverdue           SettlementStatus = "Vencido"
	StatusPartiallyPaid     SettlementStatus = "Pago Parcialmente"
	StatusPaid              SettlementStatus = "Pago"
	StatusPartiallyReceived SettlementStatus = "Recebido Parcialmente"
	StatusReceived          SettlementStatus = "Recebido"
)

// Payable is an obligation tracked independently of cash movement (despesa).
// TotalPaid and RemainingBalance are running totals in centavos, mutated only
// through settlement and reversal; Version is bumped on every such mutation.
type Payable struct {
	PayableID        string           `json:"id"`
	AdminID          string           `json:"adminId"`
	Description      string           `json:"descricao"`
	OriginalAmount   int64            `json:"valorOriginal"`
	TotalPaid        int64            `json:"totalPago"`
	RemainingBalance int64            `json:"valorSaldo"`
	DueDate          time.Time        `json:"vencimento"`
	Status           SettlementStatus `json:"status"`
	Version          int64            `json:"-"`
	AuditFields
}

// Receivable mirrors Payable for the receipt side (receita).
type Receivable struct {
	ReceivableID   string           `json:"id"`
	AdminID        string           `json:"adminId"`
	Description    string           `json:"descricao"`
	OriginalAmount int64            `json:"valorOriginal"`
	TotalReceived  int64            `json:"totalRecebido"`
	PendingBalance int64            `json:"saldoPendente"`
	DueDate        time.Time        `json:"dataVencimento"`
	Status         SettlementStatus `json:"status"`
	Version        int64            `json:"-"`
	AuditFields
}

// SettlementKind tags a settlement line: money applied against the header, or
// an audit line recording a reversal event.
type SettlementKind string

const (
	SettlementPayment  SettlementKind = "PAGAMENTO"
	SettlementReceipt  SettlementKind = "RECEBIMENTO"
	SettlementReversal SettlementKind = "ESTORNO"
)

// Settlement is a child line of exactly one accrual header. Principal,
// interest and discount are centavos. Reversal audit lines carry the reversed
// principal and the supplied reason, and never count toward applied totals.
type Settlement struct {
	SettlementID string         `json:"id"`
	AdminID      string         `json:"adminId"`
	AccrualKind  AccrualKind    `json:"accrualKind"`
	ParentID     string         `json:"parentId"`
	Kind         SettlementKind `json:"kind"`
	Principal    int64          `json:"valorPrincipal"`
	Interest     int64          `json:"juros"`
	Discount     int64          `json:"desconto"`
	SettledOn    time.Time      `json:"data"`
	Reversed     bool           `json:"estornado"`
	ReversalOfID *string        `json:"estornoDeId,omitempty"`
	Reason       string         `json:"motivo,omitempty"`
	MovementID   *string        `json:"movimentacaoId,omitempty"`
	AuditFields
}
