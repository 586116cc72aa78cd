package core

import (
	"sort"
	"time"
)

type (
	// CategoryTotal is an amount summed per category name.
	CategoryTotal struct {
		Name   string
		Amount float64
	}

	// MonthTotal is an amount summed into a "YYYY-MM" bucket.
	MonthTotal struct {
		Key    string
		Amount float64
	}

	// BalanceEntry is a transaction with the cumulative balance of all
	// history up to and including it, in chronological order.
	BalanceEntry struct {
		Transaction
		Balance float64
	}

	// MonthSummary is one row of the monthly summary table.
	MonthSummary struct {
		Key     string
		Income  float64
		Expense float64
		Net     float64
		Closing float64
	}

	// LendingOverview pairs lent-out expenses with returned-lend incomes.
	LendingOverview struct {
		TotalLent     float64
		TotalReturned float64
		Outstanding   float64
	}
)

// TotalOf sums the amounts of all records. Empty and nil lists total 0.
func TotalOf(list []Transaction) float64 {
	var sum float64
	for _, t := range list {
		sum += t.Amount
	}
	return sum
}

// ThisMonth sums the amounts of records dated in the calendar month of
// now, skipping records whose category equals excludeCategory
// case-insensitively. Pass LendCategory for expenses and
// ReturnLendCategory for incomes to keep balance transfers out of the
// spending and earning figures.
func ThisMonth(list []Transaction, excludeCategory string, now time.Time) float64 {
	var sum float64
	for _, t := range list {
		if t.Date.Year() != now.Year() || t.Date.Month() != now.Month() {
			continue
		}
		if excludeCategory != "" && equalFold(t.Category, excludeCategory) {
			continue
		}
		sum += t.Amount
	}
	return sum
}

// ByCategory groups positive amounts by display category and returns the
// totals in descending order, ties keeping first-encountered order.
func ByCategory(list []Transaction) []CategoryTotal {
	totals := map[string]float64{}
	order := map[string]int{}
	var names []string
	for _, t := range list {
		if t.Amount <= 0 {
			continue
		}
		name := t.DisplayCategory()
		if _, seen := totals[name]; !seen {
			order[name] = len(names)
			names = append(names, name)
		}
		totals[name] += t.Amount
	}
	out := make([]CategoryTotal, 0, len(names))
	for _, name := range names {
		out = append(out, CategoryTotal{Name: name, Amount: totals[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return order[out[i].Name] < order[out[j].Name]
	})
	return out
}

// TopCategory returns the category with the highest summed amount. The
// second return is false when the list holds no positive amounts.
func TopCategory(list []Transaction) (CategoryTotal, bool) {
	totals := ByCategory(list)
	if len(totals) == 0 {
		return CategoryTotal{}, false
	}
	return totals[0], true
}

// TrailingMonthKeys returns n ordered "YYYY-MM" keys ending at the month
// of now, oldest first.
func TrailingMonthKeys(now time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	keys := make([]string, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		keys = append(keys, first.AddDate(0, i, 0).Format("2006-01"))
	}
	return keys
}

// SpanningMonthKeys returns every month from the earliest to the latest
// date observed across both lists, oldest first. Records with a zero date
// are ignored; an empty combined list yields nil.
func SpanningMonthKeys(expenses, incomes []Transaction) []string {
	var min, max time.Time
	observe := func(list []Transaction) {
		for _, t := range list {
			if t.Date.IsZero() {
				continue
			}
			if min.IsZero() || t.Date.Before(min) {
				min = t.Date
			}
			if max.IsZero() || t.Date.After(max) {
				max = t.Date
			}
		}
	}
	observe(expenses)
	observe(incomes)
	if min.IsZero() {
		return nil
	}
	var keys []string
	cur := time.Date(min.Year(), min.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(max.Year(), max.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		keys = append(keys, cur.Format("2006-01"))
		cur = cur.AddDate(0, 1, 0)
	}
	return keys
}

// ByMonth sums amounts into the caller-supplied ordered month keys.
// Records outside the keys are dropped; keys with no records report 0.
func ByMonth(list []Transaction, keys []string) []MonthTotal {
	totals := map[string]float64{}
	for _, t := range list {
		if t.Date.IsZero() {
			continue
		}
		totals[t.MonthKey()] += t.Amount
	}
	out := make([]MonthTotal, 0, len(keys))
	for _, key := range keys {
		out = append(out, MonthTotal{Key: key, Amount: totals[key]})
	}
	return out
}

// RunningBalance merges both lists, sorts ascending by date keeping the
// original relative order on ties, and accumulates income minus expense.
// The balance attached to each entry reflects history up to and including
// that entry, so reversing the result for display never changes any
// individual balance.
func RunningBalance(expenses, incomes []Transaction) []BalanceEntry {
	merged := make([]Transaction, 0, len(expenses)+len(incomes))
	merged = append(merged, expenses...)
	merged = append(merged, incomes...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.Before(merged[j].Date)
	})
	out := make([]BalanceEntry, 0, len(merged))
	var balance float64
	for _, t := range merged {
		if t.Kind == Income {
			balance += t.Amount
		} else {
			balance -= t.Amount
		}
		out = append(out, BalanceEntry{Transaction: t, Balance: balance})
	}
	return out
}

// StartingBalance is income minus expense over all records dated strictly
// before the given date. It seeds the opening balance of a trailing
// window so closing balances stay historically accurate without scanning
// all-time data per row.
func StartingBalance(expenses, incomes []Transaction, before time.Time) float64 {
	var balance float64
	for _, t := range incomes {
		if t.Date.Before(before) {
			balance += t.Amount
		}
	}
	for _, t := range expenses {
		if t.Date.Before(before) {
			balance -= t.Amount
		}
	}
	return balance
}

// SavingsRate is (income - expense) / income as a percentage, 0 whenever
// income is not positive.
func SavingsRate(totalIncome, totalExpense float64) float64 {
	if totalIncome <= 0 {
		return 0
	}
	return (totalIncome - totalExpense) / totalIncome * 100
}

// LendingSummary totals the lending pair: expenses categorized "Lend"
// against incomes categorized "Return(Lend)".
func LendingSummary(expenses, incomes []Transaction) LendingOverview {
	var o LendingOverview
	for _, t := range expenses {
		if equalFold(t.Category, LendCategory) {
			o.TotalLent += t.Amount
		}
	}
	for _, t := range incomes {
		if equalFold(t.Category, ReturnLendCategory) {
			o.TotalReturned += t.Amount
		}
	}
	o.Outstanding = o.TotalLent - o.TotalReturned
	return o
}

// AverageDailySpend is the mean daily expense over the 30 days up to now.
func AverageDailySpend(expenses []Transaction, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -30)
	var sum float64
	for _, t := range expenses {
		if !t.Date.Before(cutoff) && !t.Date.After(now) {
			sum += t.Amount
		}
	}
	return sum / 30
}

// MonthlySummary produces one row per supplied month key with income,
// expense, net and a closing balance that starts from the all-history
// balance before the first key's month.
func MonthlySummary(expenses, incomes []Transaction, keys []string) []MonthSummary {
	if len(keys) == 0 {
		return nil
	}
	expenseTotals := ByMonth(expenses, keys)
	incomeTotals := ByMonth(incomes, keys)

	closing := 0.0
	if first, err := time.ParseInLocation("2006-01", keys[0], time.UTC); err == nil {
		closing = StartingBalance(expenses, incomes, first)
	}

	out := make([]MonthSummary, 0, len(keys))
	for i, key := range keys {
		row := MonthSummary{
			Key:     key,
			Income:  incomeTotals[i].Amount,
			Expense: expenseTotals[i].Amount,
		}
		row.Net = row.Income - row.Expense
		closing += row.Net
		row.Closing = closing
		out = append(out, row)
	}
	return out
}
