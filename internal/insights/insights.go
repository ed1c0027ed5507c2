// Package insights derives spending statistics from an expense list ordered
// newest-first. Every function is pure: the input is never modified and the
// same input always yields the same output.
package insights

import (
	"sort"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

const (
	predictionMinExpenses = 2
	predictionWindow      = 3

	recentWindow         = 5
	topCategoriesLimit   = 5
	highValueCents       = 100_00
	highAverageCents     = 50_00
	foodShareNumerator   = 2 // food share above 2/5 (0.4) triggers an alert
	foodShareDenominator = 5
)

type AlertKind string

const (
	AlertHighDailySpending AlertKind = "high_daily_spending"
	AlertHighFoodSpending  AlertKind = "high_food_spending"
	AlertRecentHighValue   AlertKind = "recent_high_value"
	AlertHealthy           AlertKind = "healthy"
)

var alertMessages = map[AlertKind]string{
	AlertHighDailySpending: "⚠️ High daily spending detected - consider budgeting",
	AlertHighFoodSpending:  "🍔 High food spending - try meal planning to save money",
	AlertRecentHighValue:   "💳 Recent high-value purchase detected - monitor spending",
	AlertHealthy:           "✅ Your spending looks healthy - keep it up!",
}

type Alert struct {
	Kind    AlertKind `json:"kind"`
	Message string    `json:"message"`
}

func newAlert(kind AlertKind) Alert {
	return Alert{Kind: kind, Message: alertMessages[kind]}
}

func (a Alert) String() string {
	return a.Message
}

// Insights bundles the three computations.
type Insights struct {
	Prediction    decimal.NullDecimal
	Alerts        []Alert
	TopCategories []core.CategoryAmount
}

// Compute runs Predict, Alerts and TopCategories over the same list.
func Compute(expenses []core.Expense) Insights {
	return Insights{
		Prediction:    Predict(expenses),
		Alerts:        Alerts(expenses),
		TopCategories: TopCategories(expenses),
	}
}

// Predict estimates the next expense as the mean of the three most recent
// amounts. The result is invalid when fewer than two expenses exist.
func Predict(expenses []core.Expense) decimal.NullDecimal {
	if len(expenses) < predictionMinExpenses {
		return decimal.NullDecimal{}
	}
	recent := expenses[:min(predictionWindow, len(expenses))]
	return decimal.NewNullDecimal(mean(recent))
}

// Alerts evaluates the spending rules in a fixed order. The healthy alert is
// emitted only when no other rule triggered; an empty list yields no alerts.
func Alerts(expenses []core.Expense) []Alert {
	if len(expenses) == 0 {
		return []Alert{}
	}
	alerts := make([]Alert, 0, 3)

	// Per-expense average; no calendar-day bucketing happens here.
	if mean(expenses).GreaterThan(decimal.New(highAverageCents, -2)) {
		alerts = append(alerts, newAlert(AlertHighDailySpending))
	}

	food := 0
	for _, e := range expenses {
		if e.Category == core.FoodDining {
			food++
		}
	}
	if food*foodShareDenominator > len(expenses)*foodShareNumerator {
		alerts = append(alerts, newAlert(AlertHighFoodSpending))
	}

	for _, e := range expenses[:min(recentWindow, len(expenses))] {
		if e.Amount.Cents > highValueCents {
			alerts = append(alerts, newAlert(AlertRecentHighValue))
			break
		}
	}

	if len(alerts) == 0 {
		alerts = append(alerts, newAlert(AlertHealthy))
	}
	return alerts
}

// TopCategories sums amounts per category and returns the five largest totals,
// descending. Equal totals are ordered alphabetically by category label.
func TopCategories(expenses []core.Expense) []core.CategoryAmount {
	totals := make(map[core.Category]int64)
	for _, e := range expenses {
		totals[e.Category] += e.Amount.Cents
	}

	out := make([]core.CategoryAmount, 0, len(totals))
	for c, cents := range totals {
		out = append(out, core.CategoryAmount{Category: c, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Category < out[j].Category
	})

	if len(out) > topCategoriesLimit {
		out = out[:topCategoriesLimit]
	}
	return out
}

func mean(expenses []core.Expense) decimal.Decimal {
	return core.Total(expenses).Decimal().Div(decimal.NewFromInt(int64(len(expenses))))
}
