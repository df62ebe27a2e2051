package payment

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0.000001", "<0.00001"},
		{"0", "<0.00001"},
		{"0.00001", "0.00001"},
		{"0.123456", "0.12346"},
		{"5", "5"},
		{"5.50000", "5.5"},
		{"1234.1", "1234.1"},
		{"0.999999", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatUnits(t *testing.T) {
	wei, _ := new(big.Int).SetString("1500000000000000000", 10)
	assert.Equal(t, "1.5", FormatUnits(wei, 18).String())
	assert.Equal(t, "2.5", FormatUnits(big.NewInt(2500000), 6).String())
	assert.True(t, FormatUnits(nil, 18).IsZero())
}
