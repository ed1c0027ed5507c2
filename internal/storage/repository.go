package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// Dialect selects the SQL engine and its migration set.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) driverName() string {
	return string(d)
}

// SQLRepository is the durable ledger backend.
type SQLRepository struct {
	db      *sql.DB
	queries *Queries
	dialect Dialect
}

var _ ledger.Ledger = (*SQLRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	return open(DialectSQLite, dbPath)
}

func NewPostgresRepository(url string) (*SQLRepository, error) {
	return open(DialectPostgres, url)
}

func open(d Dialect, dsn string) (*SQLRepository, error) {
	db, err := sql.Open(d.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", d, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if d == DialectSQLite {
		// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	if err := RunMigrations(d, dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLRepository{
		db:      db,
		queries: NewQueries(db, d),
		dialect: d,
	}, nil
}

func (r *SQLRepository) Dialect() Dialect {
	return r.dialect
}

func (r *SQLRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Append implements ledger.ExpenseWriter
func (r *SQLRepository) Append(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		ID:              e.ID,
		Description:     e.Description,
		AmountCents:     e.Amount.Cents,
		Category:        e.Category.String(),
		CreatedAtUnixNs: e.Date.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("create expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"dialect", r.dialect,
		"id", e.ID,
		"amount_cents", e.Amount.Cents,
		"category", e.Category)

	return nil
}

// ListExpenses implements ledger.ExpenseLister
func (r *SQLRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.queries.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	expenses := make([]core.Expense, len(rows))
	for i, row := range rows {
		expenses[i] = toExpense(row)
	}
	return expenses, nil
}

// GetExpense implements ledger.ExpenseReader
func (r *SQLRepository) GetExpense(ctx context.Context, id string) (core.Expense, error) {
	row, err := r.queries.GetExpense(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %s: %w", id, err)
	}
	return toExpense(row), nil
}

// LoadSavings implements ledger.SavingsStore. No row yet means zero savings.
func (r *SQLRepository) LoadSavings(ctx context.Context) (core.Savings, error) {
	row, err := r.queries.GetSavings(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Savings{}, nil
	}
	if err != nil {
		return core.Savings{}, fmt.Errorf("get savings: %w", err)
	}
	return core.Savings{
		Goal:    core.Money{Cents: row.GoalCents},
		Current: core.Money{Cents: row.CurrentCents},
	}, nil
}

// SaveSavings implements ledger.SavingsStore
func (r *SQLRepository) SaveSavings(ctx context.Context, s core.Savings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := r.queries.UpsertSavings(ctx, Savings{GoalCents: s.Goal.Cents, CurrentCents: s.Current.Cents}); err != nil {
		return fmt.Errorf("save savings: %w", err)
	}
	slog.DebugContext(ctx, "Savings updated",
		"goal_cents", s.Goal.Cents,
		"current_cents", s.Current.Cents)
	return nil
}

func toExpense(row Expense) core.Expense {
	return core.Expense{
		ID:          row.ID,
		Description: row.Description,
		Amount:      core.Money{Cents: row.AmountCents},
		Category:    core.Category(row.Category),
		Date:        time.Unix(0, row.CreatedAtUnixNs).UTC(),
	}
}
