package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

var hundred = decimal.NewFromInt(100)

// Progress returns current/goal as a percentage, unclamped. Zero when the goal is unset.
func (s Savings) Progress() decimal.Decimal {
	if s.Goal.Cents <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(s.Current.Cents).
		Div(decimal.NewFromInt(s.Goal.Cents)).
		Mul(hundred)
}

// DisplayProgress is Progress clamped to 100 for progress bars.
func (s Savings) DisplayProgress() decimal.Decimal {
	return decimal.Min(s.Progress(), hundred)
}

// Remaining is what is left to reach the goal; negative once the goal is exceeded.
func (s Savings) Remaining() Money {
	return Money{Cents: s.Goal.Cents - s.Current.Cents}
}

func (s Savings) HasGoal() bool {
	return s.Goal.Cents > 0
}

func (s Savings) GoalReached() bool {
	return s.HasGoal() && s.Remaining().Cents <= 0
}

// Confirmation is the user-facing acknowledgement for a recorded expense,
// e.g. "$12.34 expense added to Food & Dining".
func (e Expense) Confirmation() string {
	return e.Amount.Display() + " expense added to " + e.Category.String()
}

// RemainingText describes the distance to the goal, or celebrates reaching it.
func (s Savings) RemainingText() string {
	if s.GoalReached() {
		return "🎉 Goal achieved! Consider setting a new goal."
	}
	return s.Remaining().Display() + " left to reach your goal"
}
