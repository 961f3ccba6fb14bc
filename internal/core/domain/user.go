package domain

// User is a tenant of the system; every ledger and accrual record is scoped
// to one user's AdminID.
type User struct {
	UserID       string `json:"userID"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	AuditFields
}
