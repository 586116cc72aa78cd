package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ledgerly/internal/core"
	"ledgerly/internal/sheets/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRefreshPopulatesSnapshot(t *testing.T) {
	store := memory.NewSeeded()
	ctx := context.Background()

	if _, err := store.AppendTransaction(ctx, core.Transaction{
		Date: date(2024, time.January, 15), Amount: 100, Category: "Food", Kind: core.Expense,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := store.AppendTransaction(ctx, core.Transaction{
		Date: date(2024, time.January, 1), Amount: 5000, Category: "Salary", Kind: core.Income,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	tracker := NewTracker(store, WithRefreshDelay(0))
	if err := tracker.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	snap := tracker.Snapshot()
	if len(snap.Expenses) != 1 || len(snap.Incomes) != 1 {
		t.Fatalf("snapshot = %d expenses, %d incomes", len(snap.Expenses), len(snap.Incomes))
	}
	if len(snap.Catalog.Expenses) == 0 {
		t.Fatalf("expected seeded expense categories")
	}
}

func TestRefreshFailureKeepsOldSnapshot(t *testing.T) {
	store := memory.NewSeeded()
	ctx := context.Background()
	if _, err := store.AppendTransaction(ctx, core.Transaction{
		Date: date(2024, time.January, 15), Amount: 100, Kind: core.Expense,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	failing := &flakyBackend{Store: store}
	tracker := NewTracker(failing, WithRefreshDelay(0))
	if err := tracker.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	failing.fail = true
	if err := tracker.Refresh(ctx); err == nil {
		t.Fatalf("expected refresh error")
	}
	if got := tracker.Snapshot(); len(got.Expenses) != 1 {
		t.Fatalf("old snapshot lost: %+v", got)
	}
}

func TestWriteGuardRejectsConcurrentSubmit(t *testing.T) {
	store := memory.NewSeeded()
	slow := &slowBackend{Store: store, entered: make(chan struct{}), release: make(chan struct{})}
	tracker := NewTracker(slow, WithRefreshDelay(0))
	ctx := context.Background()

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := tracker.CreateTransaction(ctx, core.Transaction{
			Date: date(2024, time.January, 15), Amount: 10, Kind: core.Expense,
		})
		done <- err
	}()

	<-started
	<-slow.entered

	_, err := tracker.CreateTransaction(ctx, core.Transaction{
		Date: date(2024, time.January, 16), Amount: 20, Kind: core.Expense,
	})
	if !errors.Is(err, ErrWriteInFlight) {
		t.Fatalf("second submit error = %v, want ErrWriteInFlight", err)
	}

	close(slow.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}

	// Guard released: the next write goes through.
	if _, err := tracker.CreateTransaction(ctx, core.Transaction{
		Date: date(2024, time.January, 17), Amount: 30, Kind: core.Expense,
	}); err != nil {
		t.Fatalf("third submit: %v", err)
	}
}

func TestWritesPublishChangeEvents(t *testing.T) {
	store := memory.NewSeeded()
	pub := &recordingPublisher{}
	tracker := NewTracker(store, WithPublisher(pub), WithRefreshDelay(0))
	ctx := context.Background()

	id, err := tracker.CreateTransaction(ctx, core.Transaction{
		Date: date(2024, time.January, 15), Amount: 100, Kind: core.Expense,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := tracker.DeleteTransaction(ctx, core.Expense, id); err != nil {
		t.Fatalf("delete: %v", err)
	}

	events := pub.events()
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].op != OpCreate || events[0].id != id {
		t.Fatalf("first event = %+v", events[0])
	}
	if events[1].op != OpDelete {
		t.Fatalf("second event = %+v", events[1])
	}
}

func TestPublisherFailureDoesNotFailWrite(t *testing.T) {
	store := memory.NewSeeded()
	pub := &recordingPublisher{err: errors.New("bus down")}
	tracker := NewTracker(store, WithPublisher(pub), WithRefreshDelay(0))

	if _, err := tracker.CreateTransaction(context.Background(), core.Transaction{
		Date: date(2024, time.January, 15), Amount: 100, Kind: core.Expense,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

type flakyBackend struct {
	*memory.Store
	fail bool
}

func (f *flakyBackend) ListTransactions(ctx context.Context, kind core.Kind) ([]core.Transaction, error) {
	if f.fail {
		return nil, errors.New("backend unavailable")
	}
	return f.Store.ListTransactions(ctx, kind)
}

type slowBackend struct {
	*memory.Store
	enterOnce sync.Once
	entered   chan struct{}
	release   chan struct{}
}

func (s *slowBackend) AppendTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	s.enterOnce.Do(func() {
		close(s.entered)
		<-s.release
	})
	return s.Store.AppendTransaction(ctx, tx)
}

type changeEvent struct {
	kind core.Kind
	op   string
	id   string
}

type recordingPublisher struct {
	mu     sync.Mutex
	err    error
	record []changeEvent
}

func (p *recordingPublisher) PublishChange(ctx context.Context, kind core.Kind, op, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.record = append(p.record, changeEvent{kind: kind, op: op, id: id})
	return nil
}

func (p *recordingPublisher) events() []changeEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]changeEvent(nil), p.record...)
}
