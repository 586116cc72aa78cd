package http

import (
	"log/slog"
	"net/http"

	"ledgerly/internal/settings"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.prefs.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load settings", "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, r, http.StatusOK, prefs)
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var prefs settings.Preferences
	if err := decodeJSON(r, &prefs); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	if prefs.Theme != "light" && prefs.Theme != "dark" {
		writeError(w, r, http.StatusUnprocessableEntity, "theme must be 'light' or 'dark'")
		return
	}

	if err := s.prefs.Save(r.Context(), prefs); err != nil {
		slog.ErrorContext(r.Context(), "Failed to save settings", "error", err)
		writeError(w, r, http.StatusInternalServerError, "failed to save settings")
		return
	}
	writeJSON(w, r, http.StatusOK, prefs)
}
