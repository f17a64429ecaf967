// Package engine derives totals, tax splits, balances and lifecycle status for
// invoices and quotations, and compensation figures for offer letters.
//
// Everything here is pure: no storage, no clock, no globals. Amounts are kept
// in integer minor units and only rendered as decimals at the edges.
package engine

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units (paise).
type Money int64

const minorPerMajor = 100

// MaxAmount bounds every amount the engine produces, ten trillion in major
// units. Results past it saturate at ±MaxAmount and fail validation, so no
// sum of bounded amounts can overflow int64.
const MaxAmount Money = 1_000_000_000_000_000

var (
	hundred   = decimal.NewFromInt(100)
	twelve    = decimal.NewFromInt(12)
	maxAmount = decimal.NewFromInt(int64(MaxAmount))
)

// FromMajor builds Money from whole currency units.
func FromMajor(n int64) Money { return Money(n * minorPerMajor) }

// ParseMoney coerces a raw form value. Anything that does not parse is 0.
// Thousands separators are tolerated.
func ParseMoney(raw string) Money {
	d, ok := parseDecimal(raw)
	if !ok {
		return 0
	}
	return MoneyFromDecimal(d)
}

// MoneyFromDecimal rounds a major-unit decimal to the nearest minor unit,
// half away from zero.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return saturate(d.Mul(hundred).Round(0))
}

// saturate converts a minor-unit decimal, pinning it to ±MaxAmount instead of
// letting IntPart wrap.
func saturate(minor decimal.Decimal) Money {
	switch {
	case minor.GreaterThan(maxAmount):
		return MaxAmount
	case minor.LessThan(maxAmount.Neg()):
		return -MaxAmount
	}
	return Money(minor.IntPart())
}

// InRange reports whether m is strictly inside ±MaxAmount. A saturated value
// is out of range.
func (m Money) InRange() bool { return m > -MaxAmount && m < MaxAmount }

// Add sums two amounts, saturating at ±MaxAmount.
func (m Money) Add(o Money) Money {
	sum := m + o
	switch {
	case sum > MaxAmount:
		return MaxAmount
	case sum < -MaxAmount:
		return -MaxAmount
	}
	return sum
}

// ParseQuantity coerces a raw quantity, clamps negatives to 0 and keeps three
// decimal places.
func ParseQuantity(raw string) decimal.Decimal {
	d, ok := parseDecimal(raw)
	if !ok {
		return decimal.Zero
	}
	return normalizeQuantity(d)
}

// ParseRate coerces a raw tax percentage. Negative or non-numeric is 0.
func ParseRate(raw string) decimal.Decimal {
	d, ok := parseDecimal(raw)
	if !ok || d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(4)
}

func normalizeQuantity(q decimal.Decimal) decimal.Decimal {
	if q.IsNegative() {
		return decimal.Zero
	}
	return q.Round(3)
}

func parseDecimal(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", ""))
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// NonNegative clamps negative amounts to 0.
func (m Money) NonNegative() Money {
	if m < 0 {
		return 0
	}
	return m
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal { return decimal.New(int64(m), -2) }

// String renders the amount with exactly two decimals, e.g. "1080.00".
func (m Money) String() string { return m.Decimal().StringFixed(2) }

// MulQuantity multiplies by a fractional quantity and rounds to a minor unit.
func (m Money) MulQuantity(q decimal.Decimal) Money {
	return saturate(decimal.NewFromInt(int64(m)).Mul(q).Round(0))
}

// Percent returns rate percent of m, rounded to a minor unit.
func (m Money) Percent(rate decimal.Decimal) Money {
	return saturate(decimal.NewFromInt(int64(m)).Mul(rate).Div(hundred).Round(0))
}

// MarshalJSON writes a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalJSON accepts a number, a numeric string or null. It never fails:
// garbage coerces to 0 like every other amount input.
func (m *Money) UnmarshalJSON(b []byte) error {
	var raw Raw
	_ = raw.UnmarshalJSON(b)
	*m = ParseMoney(string(raw))
	return nil
}

// Raw is a form value as typed by the user. It decodes from a JSON string,
// number, bool or null so request binding never rejects an amount field.
type Raw string

func (r *Raw) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		*r = ""
		return nil
	}
	switch t := v.(type) {
	case string:
		*r = Raw(t)
	case float64:
		*r = Raw(strings.TrimSpace(string(b)))
	default:
		*r = ""
	}
	return nil
}
