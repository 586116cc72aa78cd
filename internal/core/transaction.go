package core

import (
	"strings"
	"time"
)

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

// Lending pair convention: money lent out and money returned from lending
// are balance transfers, not consumption or earnings. Both names are fixed
// and matched case-insensitively wherever they appear.
const (
	LendCategory       = "Lend"
	ReturnLendCategory = "Return(Lend)"
)

// Display fallbacks applied at presentation time only. Stored rows keep
// their empty fields so round-trip edits do not invent data.
const (
	DefaultDescription = "No Description"
	DefaultCategory    = "Others"
)

type (
	// Kind is whether a transaction is an expense or an income. It decides
	// the sign in balance math and which category set and sheet tab apply.
	Kind string

	// Transaction is the canonical record produced by the row normalizer.
	// Amount is always non-negative; direction comes from Kind.
	Transaction struct {
		ID          string
		Date        time.Time
		Amount      float64
		Description string
		Category    string
		Kind        Kind
	}

	// Category is a single taxonomy entry. Icon may be empty.
	Category struct {
		Name string
		Icon string
	}

	// Catalog holds the two independent category sets.
	Catalog struct {
		Expenses []Category
		Incomes  []Category
	}

	// Snapshot is an immutable view of all fetched data. The aggregation
	// engine only ever reads it.
	Snapshot struct {
		Expenses []Transaction
		Incomes  []Transaction
		Catalog  Catalog
	}
)

func (k Kind) IsValid() bool {
	return k == Expense || k == Income
}

// Other returns the opposite kind.
func (k Kind) Other() Kind {
	if k == Expense {
		return Income
	}
	return Expense
}

// DisplayDescription returns the description with the presentation default.
func (t Transaction) DisplayDescription() string {
	if strings.TrimSpace(t.Description) == "" {
		return DefaultDescription
	}
	return t.Description
}

// DisplayCategory returns the category with the presentation default.
func (t Transaction) DisplayCategory() string {
	if strings.TrimSpace(t.Category) == "" {
		return DefaultCategory
	}
	return t.Category
}

// MonthKey returns the "YYYY-MM" bucket key for the transaction date.
func (t Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
