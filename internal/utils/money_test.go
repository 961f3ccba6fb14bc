package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caixazul/treasury_backend/internal/apperrors"
	"github.com/caixazul/treasury_backend/internal/utils"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"0.01", 1},
		{"1500.50", 150050},
		{"-123.45", -12345},
		{"1000000", 100000000},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := utils.ToCents(decimal.RequireFromString(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToCentsRejectsSubCent(t *testing.T) {
	for _, in := range []string{"10.005", "0.001", "-0.999"} {
		t.Run(in, func(t *testing.T) {
			_, err := utils.ToCents(decimal.RequireFromString(in))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestFromCentsRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, -1, 150050, -987654321} {
		got, err := utils.ToCents(utils.FromCents(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, got)
	}
}
