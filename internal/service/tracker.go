// Package service orchestrates snapshot refreshes and spreadsheet writes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"ledgerly/internal/backend"
	"ledgerly/internal/core"
)

// ErrWriteInFlight is returned when a write is submitted while a previous
// one has not finished. The sheet append path is not safe to interleave.
var ErrWriteInFlight = errors.New("a write is already in progress")

// ChangePublisher announces transaction mutations to external consumers.
// A nil publisher disables announcements.
type ChangePublisher interface {
	PublishChange(ctx context.Context, kind core.Kind, op, id string) error
}

// Change operation names shared with the event bus.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

type Tracker struct {
	backend      backend.Backend
	publisher    ChangePublisher
	refreshDelay time.Duration

	mu        sync.RWMutex
	snapshot  core.Snapshot
	refreshed bool

	writeMu sync.Mutex
	writing bool
}

type Option func(*Tracker)

// WithPublisher attaches a change-event publisher.
func WithPublisher(p ChangePublisher) Option {
	return func(t *Tracker) { t.publisher = p }
}

// WithRefreshDelay sets the pause between a successful write and the
// follow-up re-fetch. Sheets writes are not immediately visible to reads,
// so the re-fetch waits for the backend to settle.
func WithRefreshDelay(d time.Duration) Option {
	return func(t *Tracker) { t.refreshDelay = d }
}

func NewTracker(b backend.Backend, opts ...Option) *Tracker {
	t := &Tracker{
		backend:      b,
		refreshDelay: 1500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Snapshot returns the most recently fetched state. Safe for concurrent
// readers; the returned value is a copy and must not be mutated.
func (t *Tracker) Snapshot() core.Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshot
}

// Ready reports whether at least one refresh has completed.
func (t *Tracker) Ready() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.refreshed
}

// Refresh fetches expenses, incomes and categories concurrently and swaps
// in the new snapshot atomically. A failed fetch leaves the old snapshot
// in place.
func (t *Tracker) Refresh(ctx context.Context) error {
	var (
		expenses []core.Transaction
		incomes  []core.Transaction
		catalog  core.Catalog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := t.backend.ListTransactions(gctx, core.Expense)
		if err != nil {
			return fmt.Errorf("fetch expenses: %w", err)
		}
		expenses = list
		return nil
	})
	g.Go(func() error {
		list, err := t.backend.ListTransactions(gctx, core.Income)
		if err != nil {
			return fmt.Errorf("fetch incomes: %w", err)
		}
		incomes = list
		return nil
	})
	g.Go(func() error {
		cat, err := t.backend.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("fetch categories: %w", err)
		}
		catalog = cat
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	t.mu.Lock()
	t.snapshot = core.Snapshot{
		Expenses: expenses,
		Incomes:  incomes,
		Catalog:  catalog,
	}
	t.refreshed = true
	t.mu.Unlock()

	slog.InfoContext(ctx, "Snapshot refreshed",
		"expenses", len(expenses),
		"incomes", len(incomes),
		"expense_categories", len(catalog.Expenses),
		"income_categories", len(catalog.Incomes))

	return nil
}

// CreateTransaction appends a transaction and returns the assigned id.
func (t *Tracker) CreateTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	if err := t.beginWrite(); err != nil {
		return "", err
	}
	defer t.endWrite()

	id, err := t.backend.AppendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("append transaction: %w", err)
	}

	t.afterWrite(ctx, tx.Kind, OpCreate, id)
	return id, nil
}

// UpdateTransaction replaces the full row identified by tx.ID. An unknown
// id is a no-op at the backend, matching sheet semantics.
func (t *Tracker) UpdateTransaction(ctx context.Context, tx core.Transaction) error {
	if err := t.beginWrite(); err != nil {
		return err
	}
	defer t.endWrite()

	if err := t.backend.UpdateTransaction(ctx, tx); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	t.afterWrite(ctx, tx.Kind, OpUpdate, tx.ID)
	return nil
}

func (t *Tracker) DeleteTransaction(ctx context.Context, kind core.Kind, id string) error {
	if err := t.beginWrite(); err != nil {
		return err
	}
	defer t.endWrite()

	if err := t.backend.DeleteTransaction(ctx, kind, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	t.afterWrite(ctx, kind, OpDelete, id)
	return nil
}

func (t *Tracker) CreateCategory(ctx context.Context, kind core.Kind, cat core.Category) error {
	if err := t.beginWrite(); err != nil {
		return err
	}
	defer t.endWrite()

	if err := t.backend.AppendCategory(ctx, kind, cat); err != nil {
		return fmt.Errorf("append category: %w", err)
	}

	t.afterWrite(ctx, kind, OpCreate, cat.Name)
	return nil
}

func (t *Tracker) DeleteCategory(ctx context.Context, kind core.Kind, name string) error {
	if err := t.beginWrite(); err != nil {
		return err
	}
	defer t.endWrite()

	if err := t.backend.DeleteCategory(ctx, kind, name); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	t.afterWrite(ctx, kind, OpDelete, name)
	return nil
}

func (t *Tracker) beginWrite() error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	if t.writing {
		return ErrWriteInFlight
	}
	t.writing = true
	return nil
}

func (t *Tracker) endWrite() {
	t.writeMu.Lock()
	t.writing = false
	t.writeMu.Unlock()
}

// afterWrite publishes the change event and schedules the delayed
// re-fetch. Both are best-effort: the write already succeeded.
func (t *Tracker) afterWrite(ctx context.Context, kind core.Kind, op, id string) {
	if t.publisher != nil {
		if err := t.publisher.PublishChange(ctx, kind, op, id); err != nil {
			slog.WarnContext(ctx, "Failed to publish change event",
				"error", err,
				"kind", kind,
				"op", op,
				"id", id)
		}
	}

	delay := t.refreshDelay
	go func() {
		if delay > 0 {
			time.Sleep(delay)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := t.Refresh(ctx); err != nil {
			slog.WarnContext(ctx, "Post-write refresh failed", "error", err)
		}
	}()
}
