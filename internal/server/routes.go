package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/calref/herald/internal/store"
)

const defaultLimit = 50

var knownHooks = map[string]bool{
	store.HookStop:         true,
	store.HookNotification: true,
	store.HookSubagentStop: true,
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	hook := r.URL.Query().Get("hook")
	if hook != "" && !knownHooks[hook] {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "unknown hook: " + hook,
		})
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	limit := queryLimit(r, defaultLimit)

	events, err := s.db.GetRecentEvents(hook, sessionID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if events == nil {
		events = []store.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":  len(events),
		"events": events,
	})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	limit := queryLimit(r, defaultLimit)

	sessions, err := s.db.GetRecentSessions(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []store.Session{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

func (s *Server) handleSessionDetail(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := s.db.GetSession(sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sess == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	events, err := s.db.GetEvents(sessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if events == nil {
		events = []store.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"session": sess,
		"events":  events,
	})
}

func queryLimit(r *http.Request, fallback int) int {
	l := r.URL.Query().Get("limit")
	if l == "" {
		return fallback
	}
	n, err := strconv.Atoi(l)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
