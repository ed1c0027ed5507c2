package http

import (
	"time"

	"fintrack/internal/core"
	"fintrack/internal/insights"
	"fintrack/internal/services"
)

// Dates on the page follow the original list: "Jan 2, 2006".
const displayDate = "Jan 2, 2006"

type expenseView struct {
	ID          string
	Description string
	Amount      string
	Category    string
	BadgeClass  string
	Date        string
}

type categoryView struct {
	Category   string
	Amount     string
	BadgeClass string
}

type savingsView struct {
	Current         string
	Goal            string
	HasGoal         bool
	Progress        string
	DisplayProgress string
	RemainingText   string
}

type dashboardView struct {
	Expenses      []expenseView
	Total         string
	Savings       savingsView
	Prediction    string
	Alerts        []string
	TopCategories []categoryView
}

func newExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.Display(),
		Category:    e.Category.String(),
		BadgeClass:  core.CategoryColor(e.Category).Class,
		Date:        e.Date.Local().Format(displayDate),
	}
}

func newSavingsView(s core.Savings) savingsView {
	v := savingsView{
		Current: s.Current.Display(),
		HasGoal: s.HasGoal(),
	}
	if v.HasGoal {
		v.Goal = s.Goal.Display()
		v.Progress = s.Progress().StringFixed(1)
		v.DisplayProgress = s.DisplayProgress().StringFixed(0)
		v.RemainingText = s.RemainingText()
	}
	return v
}

func newDashboardView(d services.Dashboard) dashboardView {
	v := dashboardView{
		Total:   d.Total.Display(),
		Savings: newSavingsView(d.Savings),
	}
	for _, e := range d.Expenses {
		v.Expenses = append(v.Expenses, newExpenseView(e))
	}
	if d.Insights.Prediction.Valid {
		v.Prediction = "$" + d.Insights.Prediction.Decimal.StringFixed(2)
	}
	for _, a := range d.Insights.Alerts {
		v.Alerts = append(v.Alerts, a.Message)
	}
	for _, c := range d.Insights.TopCategories {
		v.TopCategories = append(v.TopCategories, categoryView{
			Category:   c.Category.String(),
			Amount:     c.Amount.Display(),
			BadgeClass: core.CategoryColor(c.Category).Class,
		})
	}
	return v
}

// JSON shapes for the /api endpoints. Amounts are decimal strings so no
// precision is lost in transit.

type expenseJSON struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Category    string    `json:"category"`
	Date        time.Time `json:"date"`
}

type categoryJSON struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type insightsJSON struct {
	Prediction    *string          `json:"prediction"`
	Alerts        []insights.Alert `json:"alerts"`
	TopCategories []categoryJSON   `json:"topCategories"`
}

type savingsJSON struct {
	Goal            string `json:"savingsGoal"`
	Current         string `json:"currentSavings"`
	Progress        string `json:"progress"`
	DisplayProgress string `json:"displayProgress"`
	Remaining       string `json:"remaining"`
	GoalReached     bool   `json:"goalReached"`
}

func newExpenseJSON(e core.Expense) expenseJSON {
	return expenseJSON{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount.String(),
		Category:    e.Category.String(),
		Date:        e.Date.UTC(),
	}
}

func newInsightsJSON(in insights.Insights) insightsJSON {
	out := insightsJSON{
		Alerts:        in.Alerts,
		TopCategories: []categoryJSON{},
	}
	if out.Alerts == nil {
		out.Alerts = []insights.Alert{}
	}
	if in.Prediction.Valid {
		p := in.Prediction.Decimal.StringFixed(2)
		out.Prediction = &p
	}
	for _, c := range in.TopCategories {
		out.TopCategories = append(out.TopCategories, categoryJSON{
			Category: c.Category.String(),
			Amount:   c.Amount.String(),
		})
	}
	return out
}

func newSavingsJSON(s core.Savings) savingsJSON {
	return savingsJSON{
		Goal:            s.Goal.String(),
		Current:         s.Current.String(),
		Progress:        s.Progress().StringFixed(2),
		DisplayProgress: s.DisplayProgress().StringFixed(2),
		Remaining:       s.Remaining().String(),
		GoalReached:     s.GoalReached(),
	}
}
