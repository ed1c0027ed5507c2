package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"fintrack/internal/categorize"
	"fintrack/internal/core"
	"fintrack/internal/insights"
	"fintrack/internal/ledger/memory"
	"fintrack/internal/log"
)

type fakePublisher struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (p *fakePublisher) PublishExpenseRecorded(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ids = append(p.ids, id)
	return p.err
}

type failingLedger struct {
	*memory.Store
}

func (failingLedger) ListExpenses(context.Context) ([]core.Expense, error) {
	return nil, errors.New("disk on fire")
}

func newTestService(t *testing.T, opts ...Option) (*LedgerService, *memory.Store) {
	t.Helper()
	store := memory.New()
	n := 0
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	quiet := log.New(log.Config{Output: &bytes.Buffer{}})
	defaults := []Option{
		WithLogger(quiet),
		WithClock(func() time.Time { return base.Add(time.Duration(n) * time.Minute) }),
		WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	}
	return NewLedgerService(store, append(defaults, opts...)...), store
}

func TestLedgerService_RecordExpense(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc, store := newTestService(t, WithPublisher(pub))

	e, err := svc.RecordExpense(ctx, "  Morning Coffee  ", "4,5")
	if err != nil {
		t.Fatalf("RecordExpense() error = %v", err)
	}
	if e.ID != "id-1" || e.Description != "Morning Coffee" || e.Amount.Cents != 450 || e.Category != core.FoodDining {
		t.Errorf("RecordExpense() = %+v", e)
	}
	if e.Confirmation() != "$4.50 expense added to Food & Dining" {
		t.Errorf("Confirmation() = %q", e.Confirmation())
	}

	stored, err := store.GetExpense(ctx, "id-1")
	if err != nil || stored != e {
		t.Errorf("stored expense = %+v, %v", stored, err)
	}
	if len(pub.ids) != 1 || pub.ids[0] != "id-1" {
		t.Errorf("published ids = %v, want [id-1]", pub.ids)
	}
}

func TestLedgerService_RecordExpenseValidation(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	tests := []struct {
		name        string
		description string
		amount      string
		wantErr     error
	}{
		{"empty description", "   ", "10", core.ErrEmptyDescription},
		{"zero amount", "lunch", "0", core.ErrInvalidAmount},
		{"negative amount", "lunch", "-3", core.ErrInvalidAmount},
		{"not a number", "lunch", "ten", core.ErrInvalidAmount},
		{"too long", string(bytes.Repeat([]byte("a"), 201)), "1", core.ErrDescriptionTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RecordExpense(ctx, tt.description, tt.amount); !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordExpense() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	items, _ := store.ListExpenses(ctx)
	if len(items) != 0 {
		t.Errorf("invalid input should not be stored, got %d items", len(items))
	}
}

func TestLedgerService_PublishFailureDoesNotFailRecording(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc, store := newTestService(t, WithPublisher(pub))

	if _, err := svc.RecordExpense(ctx, "uber home", "12"); err != nil {
		t.Fatalf("RecordExpense() error = %v, want nil", err)
	}
	items, _ := store.ListExpenses(ctx)
	if len(items) != 1 || items[0].Category != core.Transportation {
		t.Errorf("expected the expense to be stored, got %+v", items)
	}
}

func TestLedgerService_Savings(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	if _, err := svc.SetGoal(ctx, "0"); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("SetGoal(0) error = %v, want ErrInvalidAmount", err)
	}
	if _, err := svc.AddSavings(ctx, "-1"); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("AddSavings(-1) error = %v, want ErrInvalidAmount", err)
	}

	s, err := svc.SetGoal(ctx, "1000")
	if err != nil {
		t.Fatalf("SetGoal() error = %v", err)
	}
	if s.Goal.Cents != 100000 || s.Current.Cents != 0 {
		t.Errorf("SetGoal() = %+v", s)
	}

	for _, amt := range []string{"250.25", "0", "249.75"} {
		if s, err = svc.AddSavings(ctx, amt); err != nil {
			t.Fatalf("AddSavings(%s) error = %v", amt, err)
		}
	}
	if s.Current.Cents != 50000 {
		t.Errorf("current savings = %d, want 50000", s.Current.Cents)
	}
	if got := s.DisplayProgress().String(); got != "50" {
		t.Errorf("DisplayProgress() = %s, want 50", got)
	}

	got, err := svc.Savings(ctx)
	if err != nil || got != s {
		t.Errorf("Savings() = %+v, %v; want %+v", got, err, s)
	}
}

func TestLedgerService_ConcurrentDeposits(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AddSavings(ctx, "1.00"); err != nil {
				t.Errorf("AddSavings() error = %v", err)
			}
		}()
	}
	wg.Wait()

	s, _ := svc.Savings(ctx)
	if s.Current.Cents != 2000 {
		t.Errorf("current savings = %d, want 2000", s.Current.Cents)
	}
}

func TestLedgerService_Dashboard(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	for _, in := range [][2]string{{"lunch", "30"}, {"bus", "10"}, {"lunch again", "20"}} {
		if _, err := svc.RecordExpense(ctx, in[0], in[1]); err != nil {
			t.Fatalf("RecordExpense(%v) error = %v", in, err)
		}
	}
	if _, err := svc.SetGoal(ctx, "500"); err != nil {
		t.Fatalf("SetGoal() error = %v", err)
	}

	d, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard() error = %v", err)
	}
	if len(d.Expenses) != 3 || d.Expenses[0].Description != "lunch again" {
		t.Errorf("Dashboard().Expenses = %+v", d.Expenses)
	}
	if d.Total.Cents != 6000 {
		t.Errorf("Dashboard().Total = %d, want 6000", d.Total.Cents)
	}
	if d.Savings.Goal.Cents != 50000 {
		t.Errorf("Dashboard().Savings = %+v", d.Savings)
	}
	// newest three: 20, 10, 30
	if !d.Insights.Prediction.Valid || d.Insights.Prediction.Decimal.StringFixed(2) != "20.00" {
		t.Errorf("Dashboard().Insights.Prediction = %+v", d.Insights.Prediction)
	}
	if len(d.Insights.Alerts) != 1 || d.Insights.Alerts[0].Kind != insights.AlertHighFoodSpending {
		t.Errorf("Dashboard().Insights.Alerts = %+v", d.Insights.Alerts)
	}
	if len(d.Insights.TopCategories) != 2 || d.Insights.TopCategories[0].Category != core.FoodDining {
		t.Errorf("Dashboard().Insights.TopCategories = %+v", d.Insights.TopCategories)
	}
}

func TestLedgerService_DashboardPropagatesErrors(t *testing.T) {
	quiet := log.New(log.Config{Output: &bytes.Buffer{}})
	svc := NewLedgerService(failingLedger{memory.New()}, WithLogger(quiet))
	if _, err := svc.Dashboard(context.Background()); err == nil {
		t.Fatal("Dashboard() expected error from failing store")
	}
	if _, err := svc.Insights(context.Background()); err == nil {
		t.Fatal("Insights() expected error from failing store")
	}
}

func TestLedgerService_Categorize(t *testing.T) {
	svc, _ := newTestService(t)
	m := svc.Categorize("Netflix and a movie")
	if m.Category != core.Entertainment || m.Keyword != "movie" {
		t.Errorf("Categorize() = %+v", m)
	}
}

func TestLedgerService_WithCategorizer(t *testing.T) {
	rules := []categorize.Rule{{Keywords: []string{"gym"}, Category: core.HealthFitness}}
	svc, _ := newTestService(t, WithCategorizer(categorize.New(rules)))

	e, err := svc.RecordExpense(context.Background(), "Gym membership", "35")
	if err != nil {
		t.Fatalf("RecordExpense() error = %v", err)
	}
	if e.Category != core.HealthFitness {
		t.Errorf("category = %s, want %s", e.Category, core.HealthFitness)
	}
	if m := svc.Categorize("lunch"); m.Category != core.Other {
		t.Errorf("custom rules should replace the defaults, got %+v", m)
	}
}

func TestLedgerService_AddSavingsOverflow(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)

	full := core.Savings{Goal: core.Money{Cents: 100}, Current: core.Money{Cents: math.MaxInt64 - 50}}
	if err := store.SaveSavings(ctx, full); err != nil {
		t.Fatalf("SaveSavings() error = %v", err)
	}
	if _, err := svc.AddSavings(ctx, "1"); !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("AddSavings() error = %v, want ErrInvalidAmount", err)
	}
	got, _ := svc.Savings(ctx)
	if got != full {
		t.Errorf("savings changed after rejected deposit: %+v", got)
	}
}
