package utils

import (
	"fmt"

	"github.com/caixazul/treasury_backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

var centsFactor = decimal.NewFromInt(100)

// ToCents converts a decimal currency amount to integer centavos. Amounts
// with sub-cent precision are rejected rather than rounded.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Mul(centsFactor)
	if !cents.IsInteger() {
		return 0, fmt.Errorf("%w: amount %s has sub-cent precision", apperrors.ErrValidation, amount.String())
	}
	return cents.IntPart(), nil
}

// FromCents converts integer centavos back to a decimal currency amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(centsFactor)
}
