package cart

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyUnit is the display unit appended by FormatPrice.
const CurrencyUnit = "Toman"

// FormatPrice renders a monetary amount as grouped digits followed by the
// currency unit, e.g. 144000 -> "144,000 Toman". Amounts are whole
// currency units; any fractional part left by upstream math is rounded.
func FormatPrice(amount decimal.Decimal) string {
	digits := amount.Round(0).String()

	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteByte(' ')
	b.WriteString(CurrencyUnit)
	return b.String()
}
