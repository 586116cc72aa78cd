package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"ledgerly/internal/core"
	"ledgerly/internal/service"
)

type transactionResponse struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Kind        string  `json:"kind"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Date:        t.Date.Format("2006-01-02"),
		Amount:      t.Amount,
		Description: t.Description,
		Category:    t.Category,
		Kind:        string(t.Kind),
	}
}

type transactionRequest struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Kind        string  `json:"kind"`
}

func (req transactionRequest) toTransaction() (core.Transaction, string) {
	kind := core.Kind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if !kind.IsValid() {
		return core.Transaction{}, "kind must be 'expense' or 'income'"
	}
	date, ok := core.ParseDate(core.ToISODate(req.Date))
	if !ok {
		return core.Transaction{}, "date must be yyyy-mm-dd or dd/mm/yyyy"
	}
	if req.Amount < 0 {
		return core.Transaction{}, "amount must not be negative"
	}
	return core.Transaction{
		Date:        date,
		Amount:      req.Amount,
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
		Kind:        kind,
	}, ""
}

// handleListTransactions serves the current snapshot. An optional ?kind=
// filter limits the result to one list.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()

	kindParam := strings.ToLower(r.URL.Query().Get("kind"))
	var lists []core.Transaction
	switch core.Kind(kindParam) {
	case core.Expense:
		lists = snap.Expenses
	case core.Income:
		lists = snap.Incomes
	default:
		if kindParam != "" {
			writeError(w, r, http.StatusBadRequest, "kind must be 'expense' or 'income'")
			return
		}
		lists = append(append([]core.Transaction{}, snap.Expenses...), snap.Incomes...)
	}

	resp := make([]transactionResponse, 0, len(lists))
	for _, t := range lists {
		resp = append(resp, toTransactionResponse(t))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, problem := req.toTransaction()
	if problem != "" {
		writeError(w, r, http.StatusUnprocessableEntity, problem)
		return
	}

	id, err := s.tracker.CreateTransaction(r.Context(), tx)
	if errors.Is(err, service.ErrWriteInFlight) {
		writeError(w, r, http.StatusConflict, "another write is in progress")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create transaction", "error", err, "kind", tx.Kind)
		writeError(w, r, http.StatusInternalServerError, "failed to save transaction")
		return
	}

	s.invalidateDashboards()
	tx.ID = id
	writeJSON(w, r, http.StatusCreated, toTransactionResponse(tx))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "kind must be 'expense' or 'income'")
		return
	}
	id := r.PathValue("id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "missing transaction id")
		return
	}

	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Kind = string(kind)

	tx, problem := req.toTransaction()
	if problem != "" {
		writeError(w, r, http.StatusUnprocessableEntity, problem)
		return
	}
	tx.ID = id

	err := s.tracker.UpdateTransaction(r.Context(), tx)
	if errors.Is(err, service.ErrWriteInFlight) {
		writeError(w, r, http.StatusConflict, "another write is in progress")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to update transaction", "error", err, "kind", kind, "id", id)
		writeError(w, r, http.StatusInternalServerError, "failed to update transaction")
		return
	}

	s.invalidateDashboards()
	writeJSON(w, r, http.StatusOK, toTransactionResponse(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "kind must be 'expense' or 'income'")
		return
	}
	id := r.PathValue("id")
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "missing transaction id")
		return
	}

	err := s.tracker.DeleteTransaction(r.Context(), kind, id)
	if errors.Is(err, service.ErrWriteInFlight) {
		writeError(w, r, http.StatusConflict, "another write is in progress")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete transaction", "error", err, "kind", kind, "id", id)
		writeError(w, r, http.StatusInternalServerError, "failed to delete transaction")
		return
	}

	s.invalidateDashboards()
	w.WriteHeader(http.StatusNoContent)
}
