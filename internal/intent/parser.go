package intent

import (
	"regexp"
	"strings"

	"github.com/Complexlity/paywithglide/internal/model"
)

// ExpectedFormat is shown to users whose instruction fails to parse
const ExpectedFormat = `"<number> <currency> on <chain>"`

// amount, currency, optional "on <chain>"
var instructionPattern = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)\s+(\w+)(?:\s+on\s+(\w+))?\s*$`)

// Parse turns text such as "0.1 eth on base" or "5 usdc" into a PaymentIntent.
// Currency and chain are lower-cased; the amount is kept as written.
func Parse(text string) (model.PaymentIntent, error) {
	m := instructionPattern.FindStringSubmatch(text)
	if m == nil {
		return model.PaymentIntent{}, &model.ParseError{Input: text}
	}

	return model.PaymentIntent{
		RawText:      text,
		Amount:       m[1],
		CurrencyCode: strings.ToLower(m[2]),
		ChainHint:    strings.ToLower(m[3]),
	}, nil
}
