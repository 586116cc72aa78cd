package memory

import (
	"context"
	"testing"
	"time"

	"ledgerly/internal/core"
)

func TestAppendAssignsID(t *testing.T) {
	s := New(core.Catalog{})
	ctx := context.Background()

	id, err := s.AppendTransaction(ctx, core.Transaction{
		Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Amount:   100,
		Category: "Food",
		Kind:     core.Expense,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id == "" {
		t.Fatalf("expected assigned id")
	}

	got, err := s.ListTransactions(ctx, core.Expense)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != id {
		t.Fatalf("list = %+v", got)
	}
	if other, _ := s.ListTransactions(ctx, core.Income); len(other) != 0 {
		t.Fatalf("kinds must be partitioned, got %v", other)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	s := New(core.Catalog{})
	ctx := context.Background()

	id, _ := s.AppendTransaction(ctx, core.Transaction{Amount: 10, Kind: core.Expense})

	updated := core.Transaction{ID: id, Amount: 25, Description: "edited", Kind: core.Expense}
	if err := s.UpdateTransaction(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := s.ListTransactions(ctx, core.Expense)
	if got[0].Amount != 25 || got[0].Description != "edited" {
		t.Fatalf("update not applied: %+v", got[0])
	}

	// Unknown ids are silent no-ops on both paths.
	if err := s.UpdateTransaction(ctx, core.Transaction{ID: "missing", Kind: core.Expense}); err != nil {
		t.Fatalf("update unknown id: %v", err)
	}
	if err := s.DeleteTransaction(ctx, core.Expense, "missing"); err != nil {
		t.Fatalf("delete unknown id: %v", err)
	}

	if err := s.DeleteTransaction(ctx, core.Expense, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ = s.ListTransactions(ctx, core.Expense)
	if len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestCategoryManagement(t *testing.T) {
	s := NewSeeded()
	ctx := context.Background()

	cat, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if cat.ResolveIcon("Food", core.Expense) != "🍔" {
		t.Fatalf("seed catalog missing Food")
	}
	if cat.ResolveIcon(core.ReturnLendCategory, core.Income) != "🤝" {
		t.Fatalf("seed catalog missing lending pair")
	}

	if err := s.AppendCategory(ctx, core.Income, core.Category{Name: "Dividends", Icon: "🏦"}); err != nil {
		t.Fatalf("append category: %v", err)
	}
	cat, _ = s.ListCategories(ctx)
	if cat.ResolveIcon("Dividends", core.Income) != "🏦" {
		t.Fatalf("appended category not listed")
	}

	if err := s.DeleteCategory(ctx, core.Income, "Dividends"); err != nil {
		t.Fatalf("delete category: %v", err)
	}
	cat, _ = s.ListCategories(ctx)
	if cat.ResolveIcon("Dividends", core.Income) != "" {
		t.Fatalf("category not deleted")
	}
}
