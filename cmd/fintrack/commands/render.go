package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/core"
	"fintrack/internal/insights"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")) // Blue
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))             // Dark grey
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))            // Green
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))            // Yellow
	amountStyle  = lipgloss.NewStyle().Bold(true).Width(12).Align(lipgloss.Right)
	barFilled    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

const listDate = "Jan 2, 2006"

// badge paints a category label with its table color.
func badge(c core.Category) string {
	color := core.CategoryColor(c)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color.Foreground)).
		Background(lipgloss.Color(color.Background)).
		Padding(0, 1).
		Render(c.String())
}

func renderExpenses(w io.Writer, items []core.Expense, limit int) {
	fmt.Fprintln(w, titleStyle.Render("Recent Expenses"))
	if len(items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("No expenses yet. Add your first expense above!"))
		return
	}

	shown := items
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for _, e := range shown {
		fmt.Fprintf(w, "%s %s  %s %s\n",
			mutedStyle.Render(e.Date.Local().Format(listDate)),
			amountStyle.Render(e.Amount.Display()),
			e.Description,
			badge(e.Category))
	}
	if len(shown) < len(items) {
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("... and %d more", len(items)-len(shown))))
	}
	fmt.Fprintf(w, "Total: %s\n", core.Total(items).Display())
}

func renderInsights(w io.Writer, in insights.Insights) {
	fmt.Fprintln(w, titleStyle.Render("Spending Prediction"))
	if in.Prediction.Valid {
		fmt.Fprintf(w, "  $%s %s\n", in.Prediction.Decimal.StringFixed(2),
			mutedStyle.Render("predicted next expense based on recent spending"))
	} else {
		fmt.Fprintln(w, mutedStyle.Render("  Add at least two expenses to see a prediction"))
	}

	fmt.Fprintln(w, titleStyle.Render("Financial Alerts"))
	if len(in.Alerts) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  No expenses to analyse yet"))
	}
	for _, a := range in.Alerts {
		style := warningStyle
		if a.Kind == insights.AlertHealthy {
			style = successStyle
		}
		fmt.Fprintln(w, "  "+style.Render(a.Message))
	}

	if len(in.TopCategories) > 0 {
		fmt.Fprintln(w, titleStyle.Render("Top Spending Categories"))
		for _, c := range in.TopCategories {
			fmt.Fprintf(w, "  %s %s\n", amountStyle.Render(c.Amount.Display()), badge(c.Category))
		}
	}
}

func renderSavings(w io.Writer, s core.Savings) {
	fmt.Fprintln(w, titleStyle.Render("Savings Goal"))
	fmt.Fprintf(w, "  Current Savings  %s\n", s.Current.Display())
	if !s.HasGoal() {
		fmt.Fprintf(w, "  Goal             %s\n", mutedStyle.Render("Not set"))
		return
	}
	fmt.Fprintf(w, "  Goal             %s\n", s.Goal.Display())
	fmt.Fprintf(w, "  Progress         %s%% %s\n", s.Progress().StringFixed(1), progressBar(s, 20))

	remaining := mutedStyle.Render(s.RemainingText())
	if s.GoalReached() {
		remaining = successStyle.Render(s.RemainingText())
	}
	fmt.Fprintln(w, "  "+remaining)
}

// progressBar draws the clamped progress as width cells.
func progressBar(s core.Savings, width int) string {
	filled := int(s.DisplayProgress().IntPart()) * width / 100
	return "[" + barFilled.Render(strings.Repeat("#", filled)) + strings.Repeat(".", width-filled) + "]"
}
