// Package currency is the sole conversion and formatting authority for
// amounts shown to the user. All internal amounts are stored in the canonical
// unit; conversion to a display currency happens here and nowhere else.
package currency

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Canonical is the reference unit every internal amount is stored in.
const Canonical = "USD"

type rate struct {
	factor float64 // display units per canonical unit
	symbol string
	name   string
}

var _rates = map[string]rate{
	"USD": {factor: 1, symbol: "$", name: "US Dollar"},
	"INR": {factor: 83.50, symbol: "₹", name: "Indian Rupee"},
}

// Unknown codes fall back to the canonical unit at rate 1.
func lookup(code string) rate {
	if r, ok := _rates[strings.ToUpper(code)]; ok {
		return r
	}
	return _rates[Canonical]
}

func Known(code string) bool {
	_, ok := _rates[strings.ToUpper(code)]
	return ok
}

func ToDisplay(canonical float64, code string) float64 {
	return canonical * lookup(code).factor
}

func ToCanonical(display float64, code string) float64 {
	return display / lookup(code).factor
}

func Symbol(code string) string {
	return lookup(code).symbol
}

func Name(code string) string {
	return lookup(code).name
}

// Format converts a canonical amount to the display currency and renders it
// by the magnitude of the displayed value: >=1000 with thousands separators
// and 2 fraction digits, >=1 with 2 fraction digits, <1 with 8 fraction
// digits to keep sub-unit crypto precision.
func Format(canonical float64, code string) string {
	r := lookup(code)
	display := canonical * r.factor
	d := decimal.NewFromFloat(display)

	var rendered string
	switch {
	case math.Abs(display) >= 1000:
		rendered = groupThousands(d.Abs().StringFixed(2))
	case math.Abs(display) >= 1:
		rendered = d.Abs().StringFixed(2)
	default:
		rendered = d.Abs().StringFixed(8)
	}

	if d.IsNegative() {
		return "-" + r.symbol + rendered
	}
	return r.symbol + rendered
}

// groupThousands inserts comma separators into the integer part of a fixed
// decimal string, sign preserved.
func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	if fracPart == "" {
		return sign + b.String()
	}
	return sign + b.String() + "." + fracPart
}
