// Package money holds the fixed-point helpers shared by salary, payroll and
// reporting code. Every stored amount has exactly two decimal places.
package money

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

const Places = 2

var hundred = decimal.NewFromInt(100)

// Round2 rounds half away from zero to two places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// ApplyPercent returns round2(amount * (1 + percent/100)).
func ApplyPercent(amount, percent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(percent.Div(hundred))
	return Round2(amount.Mul(factor))
}

// Format renders an amount the way statements and reports print it.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// FormatCurrency renders "$85,000.00".
func FormatCurrency(d decimal.Decimal) string {
	s := Round2(d).Abs().StringFixed(Places)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if d.IsNegative() && !Round2(d).IsZero() {
		sign = "-"
	}
	return sign + "$" + b.String() + "." + frac
}

// Text is a request field that accepts a JSON number, a JSON string or null
// and keeps the raw text, so parsing errors can be reported per field by the
// service instead of failing the whole body decode.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*t = ""
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	*t = Text(raw)
	return nil
}

// Parse reports ok=false when the text is empty and err when it is not a number.
func (t Text) Parse() (d decimal.Decimal, ok bool, err error) {
	v := strings.TrimSpace(string(t))
	if v == "" {
		return decimal.Zero, false, nil
	}
	d, err = decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, true, err
	}
	return d, true, nil
}
