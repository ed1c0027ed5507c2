package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"fintrack/internal/amqp"
	"fintrack/internal/ledger"
	"fintrack/internal/log"
)

// MirrorWorker copies recorded expenses from the database to an external mirror.
type MirrorWorker struct {
	reader ledger.ExpenseReader
	mirror ledger.ExpenseMirror
	logger *log.Logger

	mirrored atomic.Int64
	skipped  atomic.Int64
	failed   atomic.Int64
}

// Stats is a snapshot of the worker counters.
type Stats struct {
	Mirrored int64
	Skipped  int64
	Failed   int64
}

func NewMirrorWorker(reader ledger.ExpenseReader, mirror ledger.ExpenseMirror, logger *log.Logger) *MirrorWorker {
	return &MirrorWorker{
		reader: reader,
		mirror: mirror,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleExpenseRecorded mirrors the expense named by msg. Expenses that no longer
// exist are skipped so the message is acked rather than requeued forever.
func (w *MirrorWorker) HandleExpenseRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error {
	e, err := w.reader.GetExpense(ctx, msg.ID)
	if errors.Is(err, ledger.ErrNotFound) {
		w.skipped.Add(1)
		w.logger.WarnContext(ctx, "Expense not found, skipping mirror",
			log.FieldExpenseID, msg.ID,
			log.FieldOperation, log.OpSync)
		return nil
	}
	if err != nil {
		w.failed.Add(1)
		return fmt.Errorf("get expense from storage: %w", err)
	}

	ref, err := w.mirror.Append(ctx, e)
	if err != nil {
		w.failed.Add(1)
		return fmt.Errorf("append expense to mirror: %w", err)
	}

	w.mirrored.Add(1)
	fields := log.NewFields().
		WithOperation(log.OpSync).
		WithExpense(e.ID, e.Description, e.Amount.String(), e.Category.String())
	fields[log.FieldSheetsRef] = ref
	w.logger.InfoContext(ctx, "Expense mirrored", fields.ToSlice()...)
	return nil
}

func (w *MirrorWorker) Stats() Stats {
	return Stats{
		Mirrored: w.mirrored.Load(),
		Skipped:  w.skipped.Load(),
		Failed:   w.failed.Load(),
	}
}
