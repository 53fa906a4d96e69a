// Package money holds fixed-point currency amounts.
//
// All ledger arithmetic runs on Cents. Conversion to and from decimal form only
// happens at the wire boundary.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is an amount in minor currency units.
type Cents int64

// Tolerance is the largest difference accepted when comparing a sum of
// shares against a total (0.01 currency units).
const Tolerance Cents = 1

var hundred = decimal.NewFromInt(100)

// FromFloat converts a decimal amount to cents, rounding half away from zero
// at the third decimal place.
func FromFloat(f float64) Cents {
	return FromDecimal(decimal.NewFromFloat(f))
}

// FromDecimal converts d to cents with half-up rounding.
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Mul(hundred).Round(0).IntPart())
}

// Parse reads a decimal string such as "12.34".
func Parse(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// Decimal returns c as a two-place decimal.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// Float64 returns c in currency units. Display only.
func (c Cents) Float64() float64 {
	return c.Decimal().InexactFloat64()
}

// String formats c as "12.34".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Abs returns |c|.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Within reports whether c and other differ by at most Tolerance.
func (c Cents) Within(other Cents) bool {
	return (c - other).Abs() <= Tolerance
}

// Percent returns pct percent of c, rounded half-up to the cent.
func (c Cents) Percent(pct decimal.Decimal) Cents {
	return FromDecimal(c.Decimal().Mul(pct).Div(hundred))
}

// Sum adds up amounts.
func Sum(amounts ...Cents) Cents {
	var total Cents
	for _, a := range amounts {
		total += a
	}
	return total
}
