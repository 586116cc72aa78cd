package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"ledgerly/internal/core"
)

// Cache keys, one per dashboard endpoint. Writes purge all of them.
const (
	cacheKeySummary        = "summary"
	cacheKeyMonthlyTrends  = "trends:monthly"
	cacheKeyAllTrends      = "trends:all"
	cacheKeyMonthlySummary = "summary:monthly"
	cacheKeyBalance        = "balance"
)

type categoryTotalResponse struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type lendingResponse struct {
	TotalLent     float64 `json:"totalLent"`
	TotalReturned float64 `json:"totalReturned"`
	Outstanding   float64 `json:"outstanding"`
}

type summaryResponse struct {
	TotalExpense     float64                 `json:"totalExpense"`
	TotalIncome      float64                 `json:"totalIncome"`
	Balance          float64                 `json:"balance"`
	ThisMonthExpense float64                 `json:"thisMonthExpense"`
	ThisMonthIncome  float64                 `json:"thisMonthIncome"`
	SavingsRate      float64                 `json:"savingsRate"`
	TopCategory      *categoryTotalResponse  `json:"topCategory"`
	AverageDaily     float64                 `json:"averageDailySpend"`
	Lending          lendingResponse         `json:"lending"`
	Categories       []categoryTotalResponse `json:"categories"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, cacheKeySummary, func() (any, error) {
		snap := s.tracker.Snapshot()
		now := time.Now()

		totalExpense := core.TotalOf(snap.Expenses)
		totalIncome := core.TotalOf(snap.Incomes)
		thisMonthExpense := core.ThisMonth(snap.Expenses, core.LendCategory, now)
		thisMonthIncome := core.ThisMonth(snap.Incomes, core.ReturnLendCategory, now)
		lending := core.LendingSummary(snap.Expenses, snap.Incomes)

		resp := summaryResponse{
			TotalExpense:     totalExpense,
			TotalIncome:      totalIncome,
			Balance:          totalIncome - totalExpense,
			ThisMonthExpense: thisMonthExpense,
			ThisMonthIncome:  thisMonthIncome,
			SavingsRate:      core.SavingsRate(thisMonthIncome, thisMonthExpense),
			AverageDaily:     core.AverageDailySpend(snap.Expenses, now),
			Lending: lendingResponse{
				TotalLent:     lending.TotalLent,
				TotalReturned: lending.TotalReturned,
				Outstanding:   lending.Outstanding,
			},
		}

		if top, ok := core.TopCategory(snap.Expenses); ok {
			resp.TopCategory = &categoryTotalResponse{Name: top.Name, Amount: top.Amount}
		}
		for _, ct := range core.ByCategory(snap.Expenses) {
			resp.Categories = append(resp.Categories, categoryTotalResponse{Name: ct.Name, Amount: ct.Amount})
		}
		return resp, nil
	})
}

type trendResponse struct {
	Keys     []string  `json:"keys"`
	Expenses []float64 `json:"expenses"`
	Incomes  []float64 `json:"incomes"`
}

func buildTrend(snap core.Snapshot, keys []string) trendResponse {
	resp := trendResponse{
		Keys:     keys,
		Expenses: make([]float64, 0, len(keys)),
		Incomes:  make([]float64, 0, len(keys)),
	}
	for _, mt := range core.ByMonth(snap.Expenses, keys) {
		resp.Expenses = append(resp.Expenses, mt.Amount)
	}
	for _, mt := range core.ByMonth(snap.Incomes, keys) {
		resp.Incomes = append(resp.Incomes, mt.Amount)
	}
	return resp
}

func (s *Server) handleMonthlyTrends(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, cacheKeyMonthlyTrends, func() (any, error) {
		snap := s.tracker.Snapshot()
		keys := core.TrailingMonthKeys(time.Now(), 6)
		return buildTrend(snap, keys), nil
	})
}

func (s *Server) handleAllTrends(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, cacheKeyAllTrends, func() (any, error) {
		snap := s.tracker.Snapshot()
		keys := core.SpanningMonthKeys(snap.Expenses, snap.Incomes)
		if keys == nil {
			keys = []string{}
		}
		return buildTrend(snap, keys), nil
	})
}

type monthSummaryRow struct {
	Key     string  `json:"key"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
	Closing float64 `json:"closing"`
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, cacheKeyMonthlySummary, func() (any, error) {
		snap := s.tracker.Snapshot()
		keys := core.TrailingMonthKeys(time.Now(), 6)
		rows := make([]monthSummaryRow, 0, len(keys))
		for _, ms := range core.MonthlySummary(snap.Expenses, snap.Incomes, keys) {
			rows = append(rows, monthSummaryRow{
				Key:     ms.Key,
				Income:  ms.Income,
				Expense: ms.Expense,
				Net:     ms.Net,
				Closing: ms.Closing,
			})
		}
		return rows, nil
	})
}

type balanceEntryResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Kind        string  `json:"kind"`
	Amount      float64 `json:"amount"`
	Balance     float64 `json:"balance"`
}

// handleBalance returns the running balance, most recent first. Each
// entry keeps the balance computed in chronological order.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	s.serveCached(w, r, cacheKeyBalance, func() (any, error) {
		snap := s.tracker.Snapshot()
		entries := core.RunningBalance(snap.Expenses, snap.Incomes)

		resp := make([]balanceEntryResponse, 0, len(entries))
		for i := len(entries) - 1; i >= 0; i-- {
			e := entries[i]
			resp = append(resp, balanceEntryResponse{
				ID:          e.ID,
				Date:        e.Date.Format("2006-01-02"),
				Description: e.DisplayDescription(),
				Category:    e.DisplayCategory(),
				Kind:        string(e.Kind),
				Amount:      e.Amount,
				Balance:     e.Balance,
			})
		}
		return resp, nil
	})
}

// serveCached returns the cached payload when present, otherwise builds,
// caches and serves it.
func (s *Server) serveCached(w http.ResponseWriter, r *http.Request, key string, build func() (any, error)) {
	if body, ok := s.dashCache.Get(key); ok {
		slog.DebugContext(r.Context(), "Dashboard cache hit", "key", key)
		writeRawJSON(w, http.StatusOK, body)
		return
	}

	payload, err := build()
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build dashboard payload", "error", err, "key", key)
		writeError(w, r, http.StatusInternalServerError, "failed to build response")
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to marshal dashboard payload", "error", err, "key", key)
		writeError(w, r, http.StatusInternalServerError, "failed to encode response")
		return
	}

	s.dashCache.Set(key, body)
	writeRawJSON(w, http.StatusOK, body)
}

// invalidateDashboards drops all cached dashboard payloads after a write.
func (s *Server) invalidateDashboards() {
	s.dashCache.Purge()
}
