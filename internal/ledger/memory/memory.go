package memory

import (
	"context"
	"fmt"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// Store keeps the ledger in memory, newest expense first. When created with a
// snapshot path every mutation is mirrored to that file.
type Store struct {
	mu       sync.Mutex
	items    []core.Expense
	savings  core.Savings
	snapshot string
}

var _ ledger.Ledger = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// NewFromFile restores a store from path. A missing file yields an empty store.
func NewFromFile(path string) (*Store, error) {
	s := &Store{snapshot: path}
	snap, err := readSnapshot(path)
	if err != nil {
		return nil, fmt.Errorf("restore snapshot %s: %w", path, err)
	}
	if snap != nil {
		if s.items, s.savings, err = snap.decode(); err != nil {
			return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
		}
	}
	return s, nil
}

// Append prepends the expense.
func (s *Store) Append(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.ID == e.ID {
			return fmt.Errorf("duplicate expense id %q", e.ID)
		}
	}
	items := make([]core.Expense, 0, len(s.items)+1)
	items = append(items, e)
	items = append(items, s.items...)
	if err := s.persist(items, s.savings); err != nil {
		return err
	}
	s.items = items
	return nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

func (s *Store) GetExpense(_ context.Context, id string) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, ledger.ErrNotFound
}

func (s *Store) LoadSavings(_ context.Context) (core.Savings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savings, nil
}

func (s *Store) SaveSavings(_ context.Context, savings core.Savings) error {
	if err := savings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(s.items, savings); err != nil {
		return err
	}
	s.savings = savings
	return nil
}

// persist writes the would-be state before it is committed in memory, so a
// failed write leaves both copies unchanged. Caller holds s.mu.
func (s *Store) persist(items []core.Expense, savings core.Savings) error {
	if s.snapshot == "" {
		return nil
	}
	if err := writeSnapshot(s.snapshot, encodeSnapshot(items, savings)); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
