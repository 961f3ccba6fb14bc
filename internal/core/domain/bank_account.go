package domain

// BankAccount holds the starting balance every running-balance projection is
// computed from. Read-only from the reversal protocol's perspective.
type BankAccount struct {
	AccountID       string `json:"id"`
	AdminID         string `json:"adminId"`
	Name            string `json:"nome"`
	StartingBalance int64  `json:"saldoInicial"` // centavos
	IsActive        bool   `json:"ativo"`
	AuditFields
}
