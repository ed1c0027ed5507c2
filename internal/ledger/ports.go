package ledger

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

var ErrNotFound = errors.New("expense not found")

// Ports for outbound adapters.
type (
	ExpenseWriter interface {
		// Append records e as the newest expense.
		Append(ctx context.Context, e core.Expense) error
	}

	ExpenseLister interface {
		// ListExpenses returns every expense, newest first.
		ListExpenses(ctx context.Context) ([]core.Expense, error)
	}

	ExpenseReader interface {
		// GetExpense returns ErrNotFound for unknown ids.
		GetExpense(ctx context.Context, id string) (core.Expense, error)
	}

	SavingsStore interface {
		LoadSavings(ctx context.Context) (core.Savings, error)
		SaveSavings(ctx context.Context, s core.Savings) error
	}

	// Ledger is everything the service needs from a backend.
	Ledger interface {
		ExpenseWriter
		ExpenseLister
		ExpenseReader
		SavingsStore
	}

	// ExpenseMirror receives recorded expenses for an external copy (e.g. a spreadsheet).
	ExpenseMirror interface {
		Append(ctx context.Context, e core.Expense) (rowRef string, err error)
	}
)
