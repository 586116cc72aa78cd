// Package memory is an in-process backend used for development and
// tests. It mimics the spreadsheet's behavior: rows in insertion order,
// ids assigned on append, updates and deletes silently ignoring unknown
// ids.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"ledgerly/internal/core"
	"ledgerly/internal/sheets"
)

type Store struct {
	mu           sync.Mutex
	transactions map[core.Kind][]core.Transaction
	catalog      core.Catalog
}

// Ensure interface conformance
var (
	_ sheets.TransactionLister   = (*Store)(nil)
	_ sheets.TransactionAppender = (*Store)(nil)
	_ sheets.TransactionUpdater  = (*Store)(nil)
	_ sheets.TransactionDeleter  = (*Store)(nil)
	_ sheets.CategoryLister      = (*Store)(nil)
	_ sheets.CategoryAppender    = (*Store)(nil)
	_ sheets.CategoryDeleter     = (*Store)(nil)
)

func New(catalog core.Catalog) *Store {
	return &Store{
		transactions: map[core.Kind][]core.Transaction{},
		catalog:      catalog,
	}
}

// NewSeeded returns a store preloaded with the default category taxonomy
// a fresh spreadsheet would be bootstrapped with.
func NewSeeded() *Store {
	return New(core.Catalog{
		Expenses: []core.Category{
			{Name: "Food", Icon: "🍔"},
			{Name: "Transport", Icon: "🚗"},
			{Name: "Shopping", Icon: "🛍️"},
			{Name: "Entertainment", Icon: "🎬"},
			{Name: "Bills", Icon: "💡"},
			{Name: "Health", Icon: "💊"},
			{Name: "Investments", Icon: "📈"},
			{Name: core.LendCategory, Icon: "🤝"},
		},
		Incomes: []core.Category{
			{Name: "Salary", Icon: "💰"},
			{Name: "Business", Icon: "💼"},
			{Name: "Freelance", Icon: "💻"},
			{Name: "Investments", Icon: "📈"},
			{Name: core.ReturnLendCategory, Icon: "🤝"},
		},
	})
}

func (s *Store) ListTransactions(_ context.Context, kind core.Kind) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions[kind]...), nil
}

func (s *Store) AppendTransaction(_ context.Context, t core.Transaction) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.NewString()
	s.transactions[t.Kind] = append(s.transactions[t.Kind], t)
	return t.ID, nil
}

func (s *Store) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.transactions[t.Kind]
	for i := range rows {
		if rows[i].ID == t.ID {
			rows[i] = t
			return nil
		}
	}
	// Unknown id: no-op, matching the sheet transports.
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, kind core.Kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.transactions[kind]
	for i := range rows {
		if rows[i].ID == id {
			s.transactions[kind] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ListCategories(_ context.Context) (core.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return core.Catalog{
		Expenses: append([]core.Category(nil), s.catalog.Expenses...),
		Incomes:  append([]core.Category(nil), s.catalog.Incomes...),
	}, nil
}

func (s *Store) AppendCategory(_ context.Context, kind core.Kind, cat core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if kind == core.Income {
		s.catalog.Incomes = append(s.catalog.Incomes, cat)
	} else {
		s.catalog.Expenses = append(s.catalog.Expenses, cat)
	}
	return nil
}

func (s *Store) DeleteCategory(_ context.Context, kind core.Kind, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	filter := func(in []core.Category) []core.Category {
		out := in[:0]
		for _, c := range in {
			if c.Name != name {
				out = append(out, c)
			}
		}
		return out
	}
	if kind == core.Income {
		s.catalog.Incomes = filter(s.catalog.Incomes)
	} else {
		s.catalog.Expenses = filter(s.catalog.Expenses)
	}
	return nil
}
