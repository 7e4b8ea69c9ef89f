// Package format renders amounts for human-readable output (close reports, tickets).
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Moneda formats an amount in Argentine pesos: "$ 1.234,56".
func Moneda(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	entero, dec, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range entero {
		if i > 0 && (len(entero)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	signo := ""
	if d.IsNegative() && !d.Round(2).IsZero() {
		signo = "-"
	}
	return "$ " + signo + b.String() + "," + dec
}

// Centrar pads s with spaces on both sides up to width runes, like a centered banner.
func Centrar(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	total := width - n
	left := total / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", total-left)
}
