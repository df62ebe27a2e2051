package intent

import (
	"errors"
	"testing"

	"github.com/Complexlity/paywithglide/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		amount   string
		currency string
		chain    string
	}{
		{"amount currency chain", "0.1 eth on base", "0.1", "eth", "base"},
		{"no chain", "5 usdc", "5", "usdc", ""},
		{"mixed case", "10 USDC ON Optimism", "10", "usdc", "optimism"},
		{"surrounding space", "  2.50   degen   on   degen  ", "2.50", "degen", "degen"},
		{"integer", "100 dai on arb", "100", "dai", "arb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.input, got.RawText)
			assert.Equal(t, tt.amount, got.Amount)
			assert.Equal(t, tt.currency, got.CurrencyCode)
			assert.Equal(t, tt.chain, got.ChainHint)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"eth",
		"five usdc",
		"5",
		".5 usdc",
		"-1 usdc",
		"5 usdc on",
		"5 usdc to base",
		"5 usdc on base please",
		"5. usdc",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			var perr *model.ParseError
			require.True(t, errors.As(err, &perr), "expected ParseError for %q", input)
			assert.Equal(t, input, perr.Input)
		})
	}
}
