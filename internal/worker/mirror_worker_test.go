package worker

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger/memory"
	"fintrack/internal/log"
)

type fakeMirror struct {
	rows []core.Expense
	err  error
}

func (m *fakeMirror) Append(_ context.Context, e core.Expense) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.rows = append(m.rows, e)
	return "Expenses!A2:E2", nil
}

type brokenReader struct{}

func (brokenReader) GetExpense(context.Context, string) (core.Expense, error) {
	return core.Expense{}, errors.New("database is locked")
}

func quietLogger() *log.Logger {
	return log.New(log.Config{Output: &bytes.Buffer{}})
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	err := store.Append(context.Background(), core.Expense{
		ID:          "e1",
		Description: "concert tickets",
		Amount:      core.Money{Cents: 8000},
		Category:    core.Entertainment,
		Date:        time.Date(2025, 2, 14, 19, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store
}

func TestMirrorWorker_HandleExpenseRecorded(t *testing.T) {
	ctx := context.Background()

	t.Run("mirrors stored expense", func(t *testing.T) {
		mirror := &fakeMirror{}
		w := NewMirrorWorker(seededStore(t), mirror, quietLogger())

		if err := w.HandleExpenseRecorded(ctx, &amqp.ExpenseRecordedMessage{ID: "e1"}); err != nil {
			t.Fatalf("HandleExpenseRecorded() error = %v", err)
		}
		if len(mirror.rows) != 1 || mirror.rows[0].Description != "concert tickets" {
			t.Errorf("mirrored rows = %+v", mirror.rows)
		}
		if got := w.Stats(); got != (Stats{Mirrored: 1}) {
			t.Errorf("Stats() = %+v", got)
		}
	})

	t.Run("unknown expense is skipped", func(t *testing.T) {
		mirror := &fakeMirror{}
		w := NewMirrorWorker(seededStore(t), mirror, quietLogger())

		if err := w.HandleExpenseRecorded(ctx, &amqp.ExpenseRecordedMessage{ID: "gone"}); err != nil {
			t.Fatalf("HandleExpenseRecorded() error = %v, want nil", err)
		}
		if len(mirror.rows) != 0 {
			t.Errorf("nothing should be mirrored, got %+v", mirror.rows)
		}
		if got := w.Stats(); got != (Stats{Skipped: 1}) {
			t.Errorf("Stats() = %+v", got)
		}
	})

	t.Run("storage failure is retried", func(t *testing.T) {
		w := NewMirrorWorker(brokenReader{}, &fakeMirror{}, quietLogger())
		if err := w.HandleExpenseRecorded(ctx, &amqp.ExpenseRecordedMessage{ID: "e1"}); err == nil {
			t.Fatal("HandleExpenseRecorded() should return the storage error")
		}
		if got := w.Stats(); got != (Stats{Failed: 1}) {
			t.Errorf("Stats() = %+v", got)
		}
	})

	t.Run("mirror failure is retried", func(t *testing.T) {
		w := NewMirrorWorker(seededStore(t), &fakeMirror{err: errors.New("quota exceeded")}, quietLogger())
		err := w.HandleExpenseRecorded(ctx, &amqp.ExpenseRecordedMessage{ID: "e1"})
		if err == nil {
			t.Fatal("HandleExpenseRecorded() should return the mirror error")
		}
	})
}

func TestMirrorWorker_WithHandleDelivery(t *testing.T) {
	mirror := &fakeMirror{}
	w := NewMirrorWorker(seededStore(t), mirror, quietLogger())
	ack := &recordingAck{}

	amqp.HandleDelivery(context.Background(), []byte(`{"id":"e1"}`), ack, w.HandleExpenseRecorded)

	if !ack.acked || len(mirror.rows) != 1 {
		t.Errorf("expected ack and one mirrored row, got ack=%v rows=%d", ack.acked, len(mirror.rows))
	}
}

type recordingAck struct {
	acked, nacked bool
}

func (a *recordingAck) Ack(bool) error        { a.acked = true; return nil }
func (a *recordingAck) Nack(bool, bool) error { a.nacked = true; return nil }
