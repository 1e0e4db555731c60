package report

import (
	"fmt"
	"math"
	"strings"
)

// FormatMoney formats a dollar amount with comma separators and two
// decimals, e.g. 1234567.5 → "1,234,567.50".
func FormatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	whole := int64(v)
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents == 100 {
		whole++
		cents = 0
	}

	s := fmt.Sprintf("%d", whole)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	start := len(s) % 3
	if start > 0 {
		b.WriteString(s[:start])
	}
	for i := start; i < len(s); i += 3 {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	fmt.Fprintf(&b, ".%02d", cents)
	return b.String()
}

// FormatPct formats a fraction as a signed percentage, e.g. 0.123 →
// "+12.3%". Drops the decimal for magnitudes >= 100% to keep width compact.
func FormatPct(f float64) string {
	pct := f * 100
	if math.Abs(pct) >= 100 {
		return fmt.Sprintf("%+.0f%%", pct)
	}
	return fmt.Sprintf("%+.1f%%", pct)
}

// FormatRatio formats a ratio such as the profit factor, rendering the
// no-losses case as "inf".
func FormatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", v)
}
