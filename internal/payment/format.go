package payment

import (
	"math/big"

	"github.com/shopspring/decimal"
)

var displayFloor = decimal.New(1, -5)

// FormatAmount renders amounts below 0.00001 as "<0.00001" and everything else
// rounded to five decimal places without trailing zeros.
func FormatAmount(d decimal.Decimal) string {
	if d.LessThan(displayFloor) {
		return "<0.00001"
	}
	return d.Round(5).String()
}

// FormatUnits scales an integer base-unit amount by decimals
func FormatUnits(v *big.Int, decimals int32) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v, -decimals)
}
