package core

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// Category is one label of the closed category set.
type Category string

const (
	FoodDining     Category = "Food & Dining"
	Transportation Category = "Transportation"
	Shopping       Category = "Shopping"
	Entertainment  Category = "Entertainment"
	BillsUtilities Category = "Bills & Utilities"
	Education      Category = "Education"
	HealthFitness  Category = "Health & Fitness"
	Other          Category = "Other"
)

const maxDescriptionLen = 200

// Categories lists the closed set in display order.
var Categories = []Category{
	FoodDining,
	Transportation,
	Shopping,
	Entertainment,
	BillsUtilities,
	Education,
	HealthFitness,
	Other,
}

type (
	Money struct {
		Cents int64
	}

	// Expense is immutable once recorded.
	Expense struct {
		ID          string
		Description string
		Amount      Money
		Category    Category
		Date        time.Time
	}

	// Savings holds the goal and the amount saved so far. A zero goal means unset.
	Savings struct {
		Goal    Money
		Current Money
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrUnknownCategory    = errors.New("unknown category")
	ErrZeroDate           = errors.New("date cannot be zero")
	ErrEmptyID            = errors.New("empty id")
)

// Valid reports whether c belongs to the closed set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// Validate accepts amounts in (0, MaxAmount].
func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxAmount.Cents {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return ErrEmptyID
	}
	if e.Date.IsZero() {
		return ErrZeroDate
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if utf8.RuneCountInString(e.Description) > maxDescriptionLen {
		return ErrDescriptionTooLong
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if !e.Category.Valid() {
		return ErrUnknownCategory
	}
	return nil
}

func (s Savings) Validate() error {
	if s.Goal.Cents < 0 || s.Current.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Total sums the amounts of all expenses.
func Total(expenses []Expense) Money {
	var cents int64
	for _, e := range expenses {
		cents += e.Amount.Cents
	}
	return Money{Cents: cents}
}
