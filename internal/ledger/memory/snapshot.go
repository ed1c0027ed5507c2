package memory

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// snapshot is the on-disk layout: dates as RFC 3339 strings, amounts as
// decimal text with two places.
type snapshot struct {
	Expenses       []expenseRecord `json:"expenses"`
	SavingsGoal    string          `json:"savingsGoal"`
	CurrentSavings string          `json:"currentSavings"`
}

type expenseRecord struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

func encodeSnapshot(items []core.Expense, savings core.Savings) snapshot {
	snap := snapshot{
		Expenses:       make([]expenseRecord, len(items)),
		SavingsGoal:    savings.Goal.String(),
		CurrentSavings: savings.Current.String(),
	}
	for i, e := range items {
		snap.Expenses[i] = expenseRecord{
			ID:          e.ID,
			Description: e.Description,
			Amount:      e.Amount.String(),
			Category:    e.Category.String(),
			Date:        e.Date.UTC().Format(time.RFC3339Nano),
		}
	}
	return snap
}

func (snap snapshot) decode() ([]core.Expense, core.Savings, error) {
	items := make([]core.Expense, 0, len(snap.Expenses))
	for i, r := range snap.Expenses {
		amount, err := parseStoredAmount(r.Amount)
		if err != nil {
			return nil, core.Savings{}, fmt.Errorf("expense %d amount: %w", i, err)
		}
		date, err := time.Parse(time.RFC3339Nano, r.Date)
		if err != nil {
			return nil, core.Savings{}, fmt.Errorf("expense %d date: %w", i, err)
		}
		e := core.Expense{
			ID:          r.ID,
			Description: r.Description,
			Amount:      amount,
			Category:    core.Category(r.Category),
			Date:        date,
		}
		if err := e.Validate(); err != nil {
			return nil, core.Savings{}, fmt.Errorf("expense %d: %w", i, err)
		}
		items = append(items, e)
	}

	var savings core.Savings
	var err error
	if savings.Goal, err = parseStoredAmount(snap.SavingsGoal); err != nil {
		return nil, core.Savings{}, fmt.Errorf("savings goal: %w", err)
	}
	if savings.Current, err = parseStoredAmount(snap.CurrentSavings); err != nil {
		return nil, core.Savings{}, fmt.Errorf("current savings: %w", err)
	}
	return items, savings, savings.Validate()
}

var maxStoredCents = decimal.NewFromInt(math.MaxInt64)

// parseStoredAmount treats an empty value as zero. Values that do not fit in
// int64 cents are rejected rather than wrapped.
func parseStoredAmount(s string) (core.Money, error) {
	if s == "" {
		return core.Money{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return core.Money{}, err
	}
	if d.Round(2).Shift(2).Abs().GreaterThan(maxStoredCents) {
		return core.Money{}, fmt.Errorf("amount %s out of range: %w", s, core.ErrInvalidAmount)
	}
	return core.MoneyFromDecimal(d), nil
}

// readSnapshot returns nil without error when path does not exist.
func readSnapshot(path string) (*snapshot, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// writeSnapshot writes via a temp file in the same directory, then renames.
func writeSnapshot(path string, snap snapshot) error {
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
