// Package core provides money parsing and handling utilities.
//
// Amounts are kept as integer cents. Parsing and display go through
// shopspring/decimal so that no float ever touches a stored value.
package core

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount bounds a single parsed amount at one billion units, so that sums
// over any realistic ledger stay far inside int64 cents.
var MaxAmount = Money{Cents: 1_000_000_000_00}

var maxCents = decimal.NewFromInt(MaxAmount.Cents)

// ParseAmount converts user input such as "12.34" or "12,34" to a strictly positive amount.
//
// Values are rounded half-up to the cent:
//
//	ParseAmount("12.345") -> 12.35
//	ParseAmount("12.344") -> 12.34
func ParseAmount(s string) (Money, error) {
	m, err := parseMoney(s)
	if err != nil {
		return Money{}, err
	}
	if m.Cents <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return m, nil
}

// ParseNonNegativeAmount is ParseAmount that also accepts zero.
func ParseNonNegativeAmount(s string) (Money, error) {
	return parseMoney(s)
}

func parseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" || s == "." || strings.Count(s, ".") > 1 {
		return Money{}, ErrInvalidAmount
	}
	// Only plain digits and one separator: signs and exponents are rejected.
	for _, r := range s {
		if r != '.' && (r < '0' || r > '9') {
			return Money{}, ErrInvalidAmount
		}
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	s = strings.TrimSuffix(s, ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Round(2).Shift(2)
	if cents.GreaterThan(maxCents) {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// MoneyFromDecimal rounds d half-up to the cent.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{Cents: d.Round(2).Shift(2).IntPart()}
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the amount with exactly two decimals, e.g. "12.30".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Display renders the amount for people, e.g. "$12.30".
func (m Money) Display() string {
	if m.Cents < 0 {
		return "-$" + Money{Cents: -m.Cents}.String()
	}
	return "$" + m.String()
}

func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// CheckedAdd is Add for non-negative amounts that reports int64 overflow
// as ErrInvalidAmount instead of wrapping.
func (m Money) CheckedAdd(other Money) (Money, error) {
	if other.Cents > 0 && m.Cents > math.MaxInt64-other.Cents {
		return Money{}, ErrInvalidAmount
	}
	return m.Add(other), nil
}

func (m Money) IsZero() bool {
	return m.Cents == 0
}
