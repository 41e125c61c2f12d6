package currency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	amounts := []float64{0, 0.00000001, 0.42, 1, 999.99, 1000, 83.5, 123456.789}
	codes := []string{"USD", "INR", "EUR"} // EUR is unknown, falls back to canonical

	for _, code := range codes {
		for _, a := range amounts {
			back := ToCanonical(ToDisplay(a, code), code)
			assert.InDelta(t, a, back, 1e-8, "code=%s amount=%f", code, a)
		}
	}
}

func TestFormatMagnitudeRules(t *testing.T) {
	tests := []struct {
		name      string
		canonical float64
		code      string
		want      string
	}{
		{"large usd gets separators", 1234567.891, "USD", "$1,234,567.89"},
		{"exactly thousand", 1000, "USD", "$1,000.00"},
		{"mid range two digits", 999.994, "USD", "$999.99"},
		{"unit boundary", 1, "USD", "$1.00"},
		{"sub unit keeps crypto precision", 0.00012345, "USD", "$0.00012345"},
		{"zero", 0, "USD", "$0.00000000"},
		{"inr conversion before formatting", 100, "INR", "₹8,350.00"},
		{"inr sub unit", 0.001, "INR", "₹0.08350000"},
		{"negative large", -2500.5, "USD", "-$2,500.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.canonical, tt.code))
		})
	}
}

func TestFormatNegativeKeepsSignOutsideGrouping(t *testing.T) {
	got := Format(-1234567.891, "USD")
	assert.Equal(t, "-$1,234,567.89", got)
}

func TestFormatIdempotent(t *testing.T) {
	for _, a := range []float64{0.5, 12.34, 1234.56, 98765432.1} {
		first := Format(a, "INR")
		second := Format(a, "INR")
		assert.Equal(t, first, second)
	}
}

func TestUnknownCurrencyFallsBackToCanonical(t *testing.T) {
	assert.Equal(t, ToDisplay(42, "XYZ"), ToDisplay(42, Canonical))
	assert.Equal(t, "$", Symbol("XYZ"))
	assert.False(t, Known("XYZ"))
	assert.True(t, Known("inr"))
}

func TestSymbolAndName(t *testing.T) {
	assert.Equal(t, "₹", Symbol("INR"))
	assert.Equal(t, "Indian Rupee", Name("INR"))
	assert.Equal(t, "US Dollar", Name("USD"))
}

func TestGroupThousands(t *testing.T) {
	assert.Equal(t, "1,000.00", groupThousands("1000.00"))
	assert.Equal(t, "12,345.67", groupThousands("12345.67"))
	assert.Equal(t, "123.45", groupThousands("123.45"))
	assert.Equal(t, "-1,234.00", groupThousands("-1234.00"))
	assert.Equal(t, "1,234,567", groupThousands("1234567"))
}

func TestConversionIsLinear(t *testing.T) {
	// conversion must not drift for values near float noise
	a, b := 10.0, 20.0
	sum := ToDisplay(a, "INR") + ToDisplay(b, "INR")
	assert.True(t, math.Abs(sum-ToDisplay(a+b, "INR")) < 1e-8)
}
