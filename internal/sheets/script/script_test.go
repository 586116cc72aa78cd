package script

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ledgerly/internal/core"
)

func TestListTransactions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != "expenses" {
			t.Fatalf("action = %q", got)
		}
		_ = json.NewEncoder(w).Encode([][]string{
			{"id-1", "15/01/2024", "₹1,500", "Groceries", "Food"},
			{"id-2", "2024-02-01", "50", "", ""},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.ListTransactions(context.Background(), core.Expense)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d", len(got))
	}
	if got[0].Amount != 1500 || got[0].Category != "Food" {
		t.Fatalf("row 0 = %+v", got[0])
	}
	if got[1].Kind != core.Expense || got[1].Category != "" {
		t.Fatalf("row 1 = %+v", got[1])
	}
}

func TestAppendTransaction(t *testing.T) {
	var received scriptRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("method = %s", r.Method)
		}
		_ = json.NewDecoder(r.Body).Decode(&received)
		_ = json.NewEncoder(w).Encode(scriptResponse{ID: "assigned-id"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	tx := core.Transaction{
		Date:        mustDate(t, "2024-01-15"),
		Amount:      100,
		Description: "Lunch",
		Category:    "Food",
		Kind:        core.Expense,
	}
	id, err := c.AppendTransaction(context.Background(), tx)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if id != "assigned-id" {
		t.Fatalf("id = %q", id)
	}
	if received.Action != "create" || received.Kind != "expense" {
		t.Fatalf("request = %+v", received)
	}
	// Dates travel in the sheet's locale format.
	if received.Date != "15/01/2024" {
		t.Fatalf("date = %q", received.Date)
	}
}

func TestListCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(categoryPayload{
			Expenses: []categoryEntry{{Name: "Food", Icon: "🍔"}},
			Incomes:  []categoryEntry{{Name: "Salary", Icon: "💰"}},
		})
	}))
	defer srv.Close()

	c := New(srv.URL)
	cat, err := c.ListCategories(context.Background())
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if cat.ResolveIcon("Food", core.Expense) != "🍔" {
		t.Fatalf("catalog = %+v", cat)
	}
}

func TestErrorSurfacing(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		}))
		defer srv.Close()
		c := New(srv.URL)
		if _, err := c.ListTransactions(context.Background(), core.Income); err == nil {
			t.Fatalf("expected error on bad status")
		}
	})

	t.Run("script error field", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(scriptResponse{Error: "sheet locked"})
		}))
		defer srv.Close()
		c := New(srv.URL)
		err := c.DeleteTransaction(context.Background(), core.Expense, "id-1")
		if err == nil {
			t.Fatalf("expected script error to surface")
		}
	})
}

func mustDate(t *testing.T, iso string) time.Time {
	t.Helper()
	parsed, ok := core.ParseDate(iso)
	if !ok {
		t.Fatalf("bad test date %q", iso)
	}
	return parsed
}
