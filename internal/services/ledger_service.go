package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/categorize"
	"fintrack/internal/core"
	"fintrack/internal/insights"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

// EventPublisher announces recorded expenses to downstream consumers.
type EventPublisher interface {
	PublishExpenseRecorded(ctx context.Context, id string) error
}

// Dashboard is a consistent read of everything the UI shows.
type Dashboard struct {
	Expenses []core.Expense
	Total    core.Money
	Savings  core.Savings
	Insights insights.Insights
}

// LedgerService records expenses and savings on top of a ledger backend.
type LedgerService struct {
	store       ledger.Ledger
	categorizer *categorize.Categorizer
	publisher   EventPublisher
	logger      *log.Logger
	now         func() time.Time
	newID       func() string

	// guards read-modify-write of savings
	savingsMu sync.Mutex
}

type Option func(*LedgerService)

func WithPublisher(p EventPublisher) Option {
	return func(s *LedgerService) { s.publisher = p }
}

func WithCategorizer(c *categorize.Categorizer) Option {
	return func(s *LedgerService) { s.categorizer = c }
}

func WithLogger(l *log.Logger) Option {
	return func(s *LedgerService) { s.logger = l.WithComponent(log.ComponentLedger) }
}

func WithClock(now func() time.Time) Option {
	return func(s *LedgerService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *LedgerService) { s.newID = newID }
}

func NewLedgerService(store ledger.Ledger, opts ...Option) *LedgerService {
	s := &LedgerService{
		store:       store,
		categorizer: categorize.New(categorize.DefaultRules()),
		logger:      log.New(log.DefaultConfig()).WithComponent(log.ComponentLedger),
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordExpense validates the input, categorizes it and stores it as the newest expense.
func (s *LedgerService) RecordExpense(ctx context.Context, description, amount string) (core.Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return core.Expense{}, core.ErrEmptyDescription
	}
	money, err := core.ParseAmount(amount)
	if err != nil {
		return core.Expense{}, err
	}

	match := s.categorizer.Explain(description)
	e := core.Expense{
		ID:          s.newID(),
		Description: description,
		Amount:      money,
		Category:    match.Category,
		Date:        s.now().UTC(),
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.Append(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	fields := log.NewFields().
		WithOperation(log.OpRecord).
		WithExpense(e.ID, e.Description, e.Amount.String(), e.Category.String())
	if match.Keyword != "" {
		fields[log.FieldKeyword] = match.Keyword
	}
	s.logger.InfoContext(ctx, "Expense recorded", fields.ToSlice()...)

	if s.publisher != nil {
		if err := s.publisher.PublishExpenseRecorded(ctx, e.ID); err != nil {
			// The expense is already saved; the mirror can catch up later.
			fields := log.NewFields().WithOperation(log.OpRecord).WithError(err)
			fields[log.FieldExpenseID] = e.ID
			s.logger.ErrorContext(ctx, "Failed to publish expense event", fields.ToSlice()...)
		}
	}

	return e, nil
}

// Expenses returns every expense, newest first.
func (s *LedgerService) Expenses(ctx context.Context) ([]core.Expense, error) {
	items, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return items, nil
}

func (s *LedgerService) Savings(ctx context.Context) (core.Savings, error) {
	savings, err := s.store.LoadSavings(ctx)
	if err != nil {
		return core.Savings{}, fmt.Errorf("load savings: %w", err)
	}
	return savings, nil
}

// SetGoal replaces the savings goal. The goal must be greater than zero.
func (s *LedgerService) SetGoal(ctx context.Context, amount string) (core.Savings, error) {
	goal, err := core.ParseAmount(amount)
	if err != nil {
		return core.Savings{}, err
	}
	return s.updateSavings(ctx, log.OpSetGoal, func(cur core.Savings) (core.Savings, error) {
		cur.Goal = goal
		return cur, nil
	})
}

// AddSavings adds a non-negative deposit to the current savings.
func (s *LedgerService) AddSavings(ctx context.Context, amount string) (core.Savings, error) {
	deposit, err := core.ParseNonNegativeAmount(amount)
	if err != nil {
		return core.Savings{}, err
	}
	return s.updateSavings(ctx, log.OpDeposit, func(cur core.Savings) (core.Savings, error) {
		total, err := cur.Current.CheckedAdd(deposit)
		if err != nil {
			return core.Savings{}, err
		}
		cur.Current = total
		return cur, nil
	})
}

func (s *LedgerService) updateSavings(ctx context.Context, op string, apply func(core.Savings) (core.Savings, error)) (core.Savings, error) {
	s.savingsMu.Lock()
	defer s.savingsMu.Unlock()

	cur, err := s.store.LoadSavings(ctx)
	if err != nil {
		return core.Savings{}, fmt.Errorf("load savings: %w", err)
	}
	next, err := apply(cur)
	if err != nil {
		return core.Savings{}, err
	}
	if err := s.store.SaveSavings(ctx, next); err != nil {
		return core.Savings{}, fmt.Errorf("save savings: %w", err)
	}

	s.logger.InfoContext(ctx, "Savings updated",
		log.FieldOperation, op,
		"goal", next.Goal.String(),
		"current", next.Current.String())
	return next, nil
}

// Insights computes prediction, alerts and top categories over all expenses.
func (s *LedgerService) Insights(ctx context.Context) (insights.Insights, error) {
	items, err := s.Expenses(ctx)
	if err != nil {
		return insights.Insights{}, err
	}
	return insights.Compute(items), nil
}

// Dashboard loads expenses and savings concurrently and derives the insights.
func (s *LedgerService) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.Expenses(gctx)
		d.Expenses = items
		return err
	})
	g.Go(func() error {
		savings, err := s.Savings(gctx)
		d.Savings = savings
		return err
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	d.Total = core.Total(d.Expenses)
	d.Insights = insights.Compute(d.Expenses)
	return d, nil
}

// Categorize exposes the configured categorizer for previews.
func (s *LedgerService) Categorize(description string) categorize.Match {
	return s.categorizer.Explain(description)
}
