package google

import (
	"testing"

	"ledgerly/internal/core"
)

func TestToStringRows(t *testing.T) {
	rows := toStringRows([][]any{
		{"id-1", " 15/01/2024 ", 1200.5, "Groceries", "Food"},
		{"id-2"},
	})
	if rows[0][1] != "15/01/2024" {
		t.Fatalf("cells not trimmed: %q", rows[0][1])
	}
	if rows[0][2] != "1200.5" {
		t.Fatalf("numeric cell = %q", rows[0][2])
	}
	if len(rows[1]) != 1 {
		t.Fatalf("short row padded unexpectedly: %v", rows[1])
	}
}

func TestCatalogFromRows(t *testing.T) {
	cat := catalogFromRows([][]string{
		{"Food", "🍔", "expense"},
		{"Salary", "💰", "income"},
		{"Mystery", "❓", "neither"}, // unknown type skipped
		{"", "x", "expense"},         // blank name skipped
		{"Bare"},                     // no type, skipped
	})
	if len(cat.Expenses) != 1 || cat.Expenses[0].Name != "Food" {
		t.Fatalf("expenses = %v", cat.Expenses)
	}
	if len(cat.Incomes) != 1 || cat.Incomes[0].Name != "Salary" {
		t.Fatalf("incomes = %v", cat.Incomes)
	}
}

func TestTabFor(t *testing.T) {
	if tabFor(core.Expense) != tabExpenditure {
		t.Fatalf("expense tab = %q", tabFor(core.Expense))
	}
	if tabFor(core.Income) != tabIncome {
		t.Fatalf("income tab = %q", tabFor(core.Income))
	}
}

func TestRowToValues(t *testing.T) {
	tx := core.Transaction{ID: "id-9", Amount: 42, Category: "Bills", Kind: core.Expense}
	values := rowToValues(tx.ToRow())
	if len(values) != 5 {
		t.Fatalf("values = %v", values)
	}
	if values[0] != "id-9" || values[2] != "42" || values[4] != "Bills" {
		t.Fatalf("values = %v", values)
	}
}
