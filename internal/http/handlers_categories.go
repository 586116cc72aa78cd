package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"ledgerly/internal/core"
	"ledgerly/internal/service"
)

type categoryResponse struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type catalogResponse struct {
	Expenses []categoryResponse `json:"expenses"`
	Incomes  []categoryResponse `json:"incomes"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	snap := s.tracker.Snapshot()

	resp := catalogResponse{
		Expenses: make([]categoryResponse, 0, len(snap.Catalog.Expenses)),
		Incomes:  make([]categoryResponse, 0, len(snap.Catalog.Incomes)),
	}
	for _, c := range snap.Catalog.Expenses {
		resp.Expenses = append(resp.Expenses, categoryResponse{Name: c.Name, Icon: c.Icon})
	}
	for _, c := range snap.Catalog.Incomes {
		resp.Incomes = append(resp.Incomes, categoryResponse{Name: c.Name, Icon: c.Icon})
	}
	writeJSON(w, r, http.StatusOK, resp)
}

type categoryRequest struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
	Kind string `json:"kind"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	kind := core.Kind(strings.ToLower(strings.TrimSpace(req.Kind)))
	if !kind.IsValid() {
		writeError(w, r, http.StatusUnprocessableEntity, "kind must be 'expense' or 'income'")
		return
	}
	name := sanitizeInput(req.Name)
	if name == "" {
		writeError(w, r, http.StatusUnprocessableEntity, "category name cannot be empty")
		return
	}

	cat := core.Category{Name: name, Icon: sanitizeInput(req.Icon)}
	err := s.tracker.CreateCategory(r.Context(), kind, cat)
	if errors.Is(err, service.ErrWriteInFlight) {
		writeError(w, r, http.StatusConflict, "another write is in progress")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to create category", "error", err, "kind", kind, "name", name)
		writeError(w, r, http.StatusInternalServerError, "failed to save category")
		return
	}

	s.invalidateDashboards()
	writeJSON(w, r, http.StatusCreated, categoryResponse{Name: cat.Name, Icon: cat.Icon})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		writeError(w, r, http.StatusBadRequest, "kind must be 'expense' or 'income'")
		return
	}
	name := r.PathValue("name")
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "missing category name")
		return
	}

	err := s.tracker.DeleteCategory(r.Context(), kind, name)
	if errors.Is(err, service.ErrWriteInFlight) {
		writeError(w, r, http.StatusConflict, "another write is in progress")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete category", "error", err, "kind", kind, "name", name)
		writeError(w, r, http.StatusInternalServerError, "failed to delete category")
		return
	}

	s.invalidateDashboards()
	w.WriteHeader(http.StatusNoContent)
}
