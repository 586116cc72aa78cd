package core

import (
	"testing"
	"time"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1200.50", 1200.50},
		{"₹1,200.50", 1200.50},
		{"$ 99", 99},
		{"-42.5", -42.5},
		{"", 0},
		{"abc", 0},
		{"12..3", 0}, // strips to an unparseable remainder
		{"  300  ", 300},
	}
	for _, tc := range cases {
		if got := ParseAmount(tc.in); got != tc.want {
			t.Fatalf("ParseAmount(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseAmountMatchesStripped(t *testing.T) {
	// Parsing a decorated string must equal parsing its stripped form.
	pairs := [][2]string{
		{"₹1,200.50", "1200.50"},
		{"EUR 77.25", "77.25"},
		{"(15)", "15"},
	}
	for _, p := range pairs {
		if ParseAmount(p[0]) != ParseAmount(p[1]) {
			t.Fatalf("ParseAmount(%q) != ParseAmount(%q)", p[0], p[1])
		}
	}
}

func TestToISODate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"31/01/2024", "2024-01-31"},
		{"2024-01-31", "2024-01-31"}, // idempotent on ISO input
		{"1/2/2024", "2024-02-01"},
		{"", ""},
		{"January 5", "January 5"}, // unknown formats pass through
	}
	for _, tc := range cases {
		if got := ToISODate(tc.in); got != tc.want {
			t.Fatalf("ToISODate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToLocaleDateRoundTrip(t *testing.T) {
	if got := ToLocaleDate("2024-01-31"); got != "31/01/2024" {
		t.Fatalf("ToLocaleDate = %q", got)
	}
	if got := ToISODate(ToLocaleDate("2024-01-31")); got != "2024-01-31" {
		t.Fatalf("round trip = %q", got)
	}
}

func TestFromRow(t *testing.T) {
	tx := FromRow([]string{"id-1", "15/01/2024", "₹1,500", "Groceries", "Food"}, Expense)
	if tx.ID != "id-1" || tx.Kind != Expense {
		t.Fatalf("identity fields wrong: %+v", tx)
	}
	if !tx.Date.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("date = %v", tx.Date)
	}
	if tx.Amount != 1500 {
		t.Fatalf("amount = %v", tx.Amount)
	}
	if tx.Category != "Food" {
		t.Fatalf("category = %q", tx.Category)
	}
}

func TestFromRowShortAndMalformed(t *testing.T) {
	tx := FromRow([]string{"id-2"}, Income)
	if tx.ID != "id-2" || tx.Amount != 0 || !tx.Date.IsZero() {
		t.Fatalf("short row not zero-filled: %+v", tx)
	}
	if tx.DisplayDescription() != DefaultDescription {
		t.Fatalf("display description = %q", tx.DisplayDescription())
	}
	if tx.DisplayCategory() != DefaultCategory {
		t.Fatalf("display category = %q", tx.DisplayCategory())
	}

	bad := FromRow([]string{"id-3", "not a date", "no amount", "", ""}, Expense)
	if bad.Amount != 0 || !bad.Date.IsZero() {
		t.Fatalf("malformed row should degrade to zeros: %+v", bad)
	}
}

func TestToRowPreservesEmptyFields(t *testing.T) {
	tx := Transaction{
		ID:     "id-4",
		Date:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Amount: 20,
		Kind:   Expense,
	}
	row := tx.ToRow()
	if row[1] != "05/03/2024" {
		t.Fatalf("date cell = %q", row[1])
	}
	// Empty description and category must stay empty through a round trip,
	// the display defaults are presentation-only.
	if row[3] != "" || row[4] != "" {
		t.Fatalf("empty fields not preserved: %v", row)
	}
	back := FromRow(row, Expense)
	if back.Description != "" || back.Category != "" {
		t.Fatalf("round trip invented data: %+v", back)
	}
}
