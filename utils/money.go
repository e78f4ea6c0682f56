package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount as a string like "$12,500.00".
// Uses comma as thousands separator and always two decimals.
func FormatMoney(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	if neg {
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	// Pre-allocate: digits + separators + sign + $ + cents
	b.Grow(len(whole) + len(whole)/3 + 5)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(whole) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(whole[:rem])
	for i := rem; i < len(whole); i += 3 {
		b.WriteByte(',')
		b.WriteString(whole[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(cents)

	return b.String()
}
