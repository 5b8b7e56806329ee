package store

import (
	"fmt"
	"time"
)

// maxPayloadSize caps the raw payload stored per event. Hook payloads are
// small; this guards against a runaway transcript ending up on stdin.
const maxPayloadSize = 10 * 1024 // 10KB

// Hook names recorded in the event log.
const (
	HookStop         = "stop"
	HookNotification = "notification"
	HookSubagentStop = "subagent_stop"
)

// Event is a single hook invocation.
type Event struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	Hook      string `json:"hook"`
	Payload   string `json:"payload,omitempty"`
	Message   string `json:"message,omitempty"`
	Announced bool   `json:"announced"`
	CreatedAt int64  `json:"created_at"`
}

// AddEvent records a hook invocation. Payload is truncated to 10KB.
func (db *DB) AddEvent(sessionID, hook, payload, message string, announced bool) error {
	if len(payload) > maxPayloadSize {
		payload = payload[:maxPayloadSize]
	}

	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		INSERT INTO hook_events (session_id, hook, payload, message, announced, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, sessionID, hook, payload, message, boolToInt(announced), now)
	if err != nil {
		return fmt.Errorf("add event: %w", err)
	}
	return nil
}

// GetEvents returns all events for a session, oldest first.
func (db *DB) GetEvents(sessionID string) ([]Event, error) {
	return db.queryEvents(`
		SELECT id, session_id, hook, payload, message, announced, created_at
		FROM hook_events WHERE session_id = ? ORDER BY created_at, id
	`, sessionID)
}

// GetRecentEvents returns the most recent events, optionally filtered by
// hook name and/or session. Empty filters match everything.
func (db *DB) GetRecentEvents(hook, sessionID string, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	return db.queryEvents(`
		SELECT id, session_id, hook, payload, message, announced, created_at
		FROM hook_events
		WHERE (? = '' OR hook = ?) AND (? = '' OR session_id = ?)
		ORDER BY created_at DESC, id DESC LIMIT ?
	`, hook, hook, sessionID, sessionID, limit)
}

// CountEvents returns the number of events for a session.
func (db *DB) CountEvents(sessionID string) (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM hook_events WHERE session_id = ?`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

func (db *DB) queryEvents(query string, args ...any) ([]Event, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var announced int
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Hook, &e.Payload, &e.Message, &announced, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Announced = announced != 0
		events = append(events, e)
	}
	return events, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
