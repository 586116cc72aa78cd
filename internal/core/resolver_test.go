package core

import "testing"

func TestResolveIcon(t *testing.T) {
	cat := Catalog{
		Expenses: []Category{
			{Name: "Food", Icon: "🍔"},
			{Name: "Lend", Icon: "🤝"},
			{Name: "Food", Icon: "🍕"}, // duplicate name: first match wins
		},
		Incomes: []Category{
			{Name: "Salary", Icon: "💰"},
			{Name: "Bonus", Icon: ""},
		},
	}

	cases := []struct {
		name string
		kind Kind
		want string
	}{
		{"Food", Expense, "🍔"},
		{"Salary", Income, "💰"},
		{"Bonus", Income, ""},
		{"Food", Income, ""},  // wrong kind's set
		{"food", Expense, ""}, // exact equality, no folding
		{"Missing", Expense, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name+"/"+string(tc.kind), func(t *testing.T) {
			if got := cat.ResolveIcon(tc.name, tc.kind); got != tc.want {
				t.Fatalf("ResolveIcon(%q, %s) = %q, want %q", tc.name, tc.kind, got, tc.want)
			}
		})
	}
}

func TestCatalogNames(t *testing.T) {
	cat := Catalog{Expenses: []Category{{Name: "Food"}, {Name: "Bills"}}}
	names := cat.Names(Expense)
	if len(names) != 2 || names[0] != "Food" || names[1] != "Bills" {
		t.Fatalf("Names = %v", names)
	}
	if got := cat.Names(Income); len(got) != 0 {
		t.Fatalf("expected no income names, got %v", got)
	}
}
