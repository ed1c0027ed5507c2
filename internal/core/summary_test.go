package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSavingsProgress(t *testing.T) {
	tests := []struct {
		name      string
		savings   Savings
		progress  string
		display   string
		remaining int64
		reached   bool
	}{
		{"goal unset", Savings{Current: Money{Cents: 5000}}, "0", "0", -5000, false},
		{"halfway", Savings{Goal: Money{Cents: 10000}, Current: Money{Cents: 5000}}, "50", "50", 5000, false},
		{"exceeded", Savings{Goal: Money{Cents: 10000}, Current: Money{Cents: 15000}}, "150", "100", -5000, true},
		{"exact", Savings{Goal: Money{Cents: 10000}, Current: Money{Cents: 10000}}, "100", "100", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.savings.Progress(); !got.Equal(decimal.RequireFromString(tt.progress)) {
				t.Errorf("Progress() = %s, want %s", got, tt.progress)
			}
			if got := tt.savings.DisplayProgress(); !got.Equal(decimal.RequireFromString(tt.display)) {
				t.Errorf("DisplayProgress() = %s, want %s", got, tt.display)
			}
			if got := tt.savings.Remaining().Cents; got != tt.remaining {
				t.Errorf("Remaining() = %d, want %d", got, tt.remaining)
			}
			if got := tt.savings.GoalReached(); got != tt.reached {
				t.Errorf("GoalReached() = %v, want %v", got, tt.reached)
			}
		})
	}
}

func TestSavingsValidate(t *testing.T) {
	if err := (Savings{}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Savings{Current: Money{Cents: -1}}).Validate(); err == nil {
		t.Fatalf("expected error for negative savings")
	}
}

func TestConfirmationAndRemainingText(t *testing.T) {
	e := Expense{Amount: Money{Cents: 1234}, Category: FoodDining}
	if got, want := e.Confirmation(), "$12.34 expense added to Food & Dining"; got != want {
		t.Errorf("Confirmation() = %q, want %q", got, want)
	}

	s := Savings{Goal: Money{Cents: 100000}, Current: Money{Cents: 25050}}
	if got, want := s.RemainingText(), "$749.50 left to reach your goal"; got != want {
		t.Errorf("RemainingText() = %q, want %q", got, want)
	}
	s.Current = Money{Cents: 100000}
	if got, want := s.RemainingText(), "🎉 Goal achieved! Consider setting a new goal."; got != want {
		t.Errorf("RemainingText() = %q, want %q", got, want)
	}
}
