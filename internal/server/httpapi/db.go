package httpapi

import (
	"encoding/json"
	"net/http"
)

// handleDBGet serves the health probe (test=1) and the full-snapshot pull
// (action=pull).
func (s *Server) handleDBGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if q.Get("test") == "1" {
		status := "connected"
		if err := s.repo.Ping(r.Context()); err != nil {
			s.logger.Error(r.Context(), "health probe failed", "error", err)
			status = "error"
		}
		writeJSON(w, http.StatusOK, map[string]string{"db_status": status})
		return
	}

	if q.Get("action") == "pull" {
		tables, err := s.repo.PullAll(r.Context())
		if err != nil {
			s.logger.Error(r.Context(), "pull failed", "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if len(tables) == 0 {
			writeJSON(w, http.StatusOK, map[string]string{"status": "empty"})
			return
		}
		writeJSON(w, http.StatusOK, tables)
		return
	}

	writeError(w, http.StatusBadRequest, "unknown action")
}

// handleDBPost serves the whole-table push (action=push): the body is a
// mapping of table name to full row array, and it replaces the stored
// snapshot atomically.
func (s *Server) handleDBPost(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("action") != "push" {
		writeError(w, http.StatusBadRequest, "unknown action")
		return
	}

	var tables map[string][]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&tables); err != nil {
		writeError(w, http.StatusBadRequest, "payload is not a table mapping: "+err.Error())
		return
	}

	if err := s.repo.ReplaceAll(r.Context(), tables); err != nil {
		s.logger.Error(r.Context(), "push failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
