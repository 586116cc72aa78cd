// Package core holds the transaction aggregation engine: the row
// normalizer, the pure aggregation functions and the category resolver.
// Everything here is side-effect free and safe on empty input; malformed
// rows degrade to zero values instead of errors so one bad spreadsheet
// cell cannot take down a whole dashboard.
package core

import (
	"strconv"
	"strings"
	"time"
)

// ParseAmount converts a currency-formatted value ("₹1,200.50", "1 200,–")
// to a float. Every rune that is not a digit, dot or sign is stripped
// before parsing; unparseable or empty input yields 0. All amount
// consumers must go through this function so totals, charts and tables
// agree on the same number.
func ParseAmount(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// ToISODate normalizes a sheet date string to yyyy-mm-dd. ISO input passes
// through unchanged, dd/mm/yyyy is reassembled day-first. Any other format
// is returned as-is, best effort. Day-first is assumed unconditionally,
// which is a known locale risk inherited from the backing sheet.
func ToISODate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if isISODate(s) {
		return s
	}
	if strings.Contains(s, "/") {
		parts := strings.Split(s, "/")
		if len(parts) == 3 {
			d := strings.TrimSpace(parts[0])
			m := strings.TrimSpace(parts[1])
			y := strings.TrimSpace(parts[2])
			return y + "-" + pad2(m) + "-" + pad2(d)
		}
	}
	return s
}

// ToLocaleDate converts an ISO date back to the dd/mm/yyyy form stored in
// the sheet. Non-ISO input is returned unchanged.
func ToLocaleDate(iso string) string {
	parts := strings.Split(strings.TrimSpace(iso), "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

// ParseDate parses a normalized or raw sheet date into a midnight-UTC
// time. The second return is false when the value is not a usable date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", ToISODate(s), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FromRow builds a canonical transaction from a raw positional sheet row
// [id, date, amount, description, category]. This is the only place
// positional access is allowed; everything past this boundary works with
// named fields. Short rows are filled with empty fields.
func FromRow(row []string, kind Kind) Transaction {
	t := Transaction{Kind: kind}
	t.ID = field(row, 0)
	if date, ok := ParseDate(field(row, 1)); ok {
		t.Date = date
	}
	t.Amount = ParseAmount(field(row, 2))
	t.Description = strings.TrimSpace(field(row, 3))
	t.Category = strings.TrimSpace(field(row, 4))
	return t
}

// FromRows normalizes a whole fetched range.
func FromRows(rows [][]string, kind Kind) []Transaction {
	out := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromRow(row, kind))
	}
	return out
}

// ToRow is the inverse of FromRow, producing the positional form written
// back to the sheet. The date is stored locale style, matching what the
// sheet already contains.
func (t Transaction) ToRow() []string {
	date := ""
	if !t.Date.IsZero() {
		date = ToLocaleDate(t.Date.Format("2006-01-02"))
	}
	return []string{
		t.ID,
		date,
		strconv.FormatFloat(t.Amount, 'f', -1, 64),
		t.Description,
		t.Category,
	}
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

func isISODate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	for i, r := range s {
		if i == 4 || i == 7 {
			continue
		}
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
