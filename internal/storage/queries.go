package storage

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries runs the statements below, rewritten for the connection's dialect.
type Queries struct {
	db      DBTX
	dialect Dialect
}

func NewQueries(db DBTX, d Dialect) *Queries {
	return &Queries{db: db, dialect: d}
}

// Expense is a row of the expenses table.
type Expense struct {
	Seq             int64
	ID              string
	Description     string
	AmountCents     int64
	Category        string
	CreatedAtUnixNs int64
}

type Savings struct {
	GoalCents    int64
	CurrentCents int64
}

const createExpense = `INSERT INTO expenses (id, description, amount_cents, category, created_at_unix_ns)
VALUES (?, ?, ?, ?, ?)`

type CreateExpenseParams struct {
	ID              string
	Description     string
	AmountCents     int64
	Category        string
	CreatedAtUnixNs int64
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) error {
	_, err := q.db.ExecContext(ctx, q.rebind(createExpense),
		arg.ID,
		arg.Description,
		arg.AmountCents,
		arg.Category,
		arg.CreatedAtUnixNs,
	)
	return err
}

const getExpense = `SELECT seq, id, description, amount_cents, category, created_at_unix_ns
FROM expenses WHERE id = ?`

func (q *Queries) GetExpense(ctx context.Context, id string) (Expense, error) {
	row := q.db.QueryRowContext(ctx, q.rebind(getExpense), id)
	var i Expense
	err := row.Scan(
		&i.Seq,
		&i.ID,
		&i.Description,
		&i.AmountCents,
		&i.Category,
		&i.CreatedAtUnixNs,
	)
	return i, err
}

const listExpenses = `SELECT seq, id, description, amount_cents, category, created_at_unix_ns
FROM expenses ORDER BY seq DESC`

func (q *Queries) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		var i Expense
		if err := rows.Scan(
			&i.Seq,
			&i.ID,
			&i.Description,
			&i.AmountCents,
			&i.Category,
			&i.CreatedAtUnixNs,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getSavings = `SELECT goal_cents, current_cents FROM savings WHERE id = 1`

func (q *Queries) GetSavings(ctx context.Context) (Savings, error) {
	row := q.db.QueryRowContext(ctx, getSavings)
	var i Savings
	err := row.Scan(&i.GoalCents, &i.CurrentCents)
	return i, err
}

const upsertSavings = `INSERT INTO savings (id, goal_cents, current_cents) VALUES (1, ?, ?)
ON CONFLICT (id) DO UPDATE SET goal_cents = excluded.goal_cents, current_cents = excluded.current_cents`

func (q *Queries) UpsertSavings(ctx context.Context, arg Savings) error {
	_, err := q.db.ExecContext(ctx, q.rebind(upsertSavings), arg.GoalCents, arg.CurrentCents)
	return err
}

// rebind turns ? placeholders into $n for postgres.
func (q *Queries) rebind(query string) string {
	if q.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
