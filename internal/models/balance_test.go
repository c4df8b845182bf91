package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bal(amount, currency string) Balance {
	return NewBalance(decimal.RequireFromString(amount), currency)
}

func TestBalance_Sign(t *testing.T) {
	owed := bal("-4", "GBP")
	assert.True(t, owed.IsNegative())
	assert.False(t, owed.IsPositive())

	zero := bal("0", "GBP")
	assert.False(t, zero.IsNegative())
	assert.False(t, zero.IsPositive())
}

func TestBalance_IsNoise(t *testing.T) {
	eps := decimal.RequireFromString("0.01")

	tests := []struct {
		amount string
		noise  bool
	}{
		{"0.009", true},
		{"-0.009", true},
		{"0.01", false},
		{"-0.01", false},
		{"3", false},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.noise, bal(tt.amount, "USD").IsNoise(eps))
		})
	}
}

func TestMergeBalances(t *testing.T) {
	merged := MergeBalances([]Balance{
		bal("5", "USD"),
		bal("3", "EUR"),
		bal("-2", "USD"),
	})

	require.Len(t, merged, 2)
	assert.Equal(t, "USD", merged[0].CurrencyCode)
	assert.True(t, merged[0].Amount.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "EUR", merged[1].CurrencyCode)
	assert.True(t, merged[1].Amount.Equal(decimal.NewFromInt(3)))
	assert.Nil(t, MergeBalances(nil))
}
