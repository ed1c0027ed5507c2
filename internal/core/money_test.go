package core

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{".5", 50, true},
		{"12.345", 1235, true}, // half-up rounding
		{"12.344", 1234, true},
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"1e3", 0, false},
		{"0", 0, false},
		{"0.001", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"1000000000", 100_000_000_000, true},
		{"1000000000.01", 0, false},
		{"50000000000000000", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error, got %d", tc.in, got.Cents)
		}
	}
}

func TestParseNonNegativeAmount(t *testing.T) {
	got, err := ParseNonNegativeAmount("0")
	if err != nil || got.Cents != 0 {
		t.Fatalf("expected zero, got %d (err=%v)", got.Cents, err)
	}
	if _, err := ParseNonNegativeAmount("-5"); err == nil {
		t.Fatalf("expected error for negative")
	}
}

func TestMoneyFormatting(t *testing.T) {
	m := Money{Cents: 1230}
	if m.String() != "12.30" {
		t.Fatalf("unexpected string %q", m.String())
	}
	if m.Display() != "$12.30" {
		t.Fatalf("unexpected display %q", m.Display())
	}
	if (Money{Cents: -5}).Display() != "-$0.05" {
		t.Fatalf("unexpected negative display %q", (Money{Cents: -5}).Display())
	}
	if !m.Decimal().Equal(decimal.RequireFromString("12.3")) {
		t.Fatalf("unexpected decimal %s", m.Decimal())
	}
	if got := MoneyFromDecimal(decimal.RequireFromString("20.005")); got.Cents != 2001 {
		t.Fatalf("expected 2001, got %d", got.Cents)
	}
}

func TestCheckedAdd(t *testing.T) {
	got, err := Money{Cents: 150}.CheckedAdd(Money{Cents: 250})
	if err != nil || got.Cents != 400 {
		t.Fatalf("expected 400, got %d (err=%v)", got.Cents, err)
	}
	if _, err := (Money{Cents: math.MaxInt64 - 1}).CheckedAdd(Money{Cents: 2}); err != ErrInvalidAmount {
		t.Fatalf("expected ErrInvalidAmount on overflow, got %v", err)
	}
}

func TestTotalOfMaximumAmountsStaysPositive(t *testing.T) {
	items := make([]Expense, 1000)
	for i := range items {
		items[i].Amount = MaxAmount
	}
	if got := Total(items); got.Cents != 1000*MaxAmount.Cents {
		t.Fatalf("total of 1000 max amounts = %d", got.Cents)
	}
}
