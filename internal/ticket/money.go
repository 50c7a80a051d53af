package ticket

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var maxInt64 = decimal.NewFromInt(1<<63 - 1)

// FormatMoney renders an amount with locale grouping, prefixed by the upper
// cased currency code when one is given. Unset amounts render as "".
// The value is rounded to cents as a decimal; only the two fraction digits
// ever pass through a float.
func FormatMoney(a Amount, currency string, tag language.Tag) string {
	if !a.Valid {
		return ""
	}
	v := a.Value.Round(2)
	p := message.NewPrinter(tag)

	whole := v.Truncate(0).Abs()
	var s string
	if whole.LessThanOrEqual(maxInt64) {
		s = p.Sprintf("%v", number.Decimal(whole.IntPart()))
	} else {
		s = whole.String()
	}
	if frac := v.Abs().Sub(whole); !frac.IsZero() {
		// "0.57" in the locale's digits; keep the separator and digits
		f := p.Sprintf("%v", number.Decimal(frac.InexactFloat64(), number.MaxFractionDigits(2)))
		_, size := utf8.DecodeRuneInString(f)
		s += f[size:]
	}
	if v.IsNegative() {
		s = "-" + s
	}

	if c := strings.ToUpper(strings.TrimSpace(currency)); c != "" {
		return c + " " + s
	}
	return s
}

// PriceLabel is the record's resolved amount formatted for display.
func (r *Record) PriceLabel(tag language.Tag) string {
	a, ok := r.Total()
	if !ok {
		return ""
	}
	return FormatMoney(a, r.Currency.String(), tag)
}
