package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Session is the per-session rollup maintained from hook events.
type Session struct {
	ID          int64  `json:"id"`
	SessionID   string `json:"session_id"`
	Project     string `json:"project,omitempty"`
	StartedAt   int64  `json:"started_at"`
	LastEventAt *int64 `json:"last_event_at,omitempty"`
	Status      string `json:"status"`
	EventCount  int    `json:"event_count"`
}

// TouchSession upserts the session row for an incoming hook event: creates
// it on first sight, then bumps event_count and last_event_at.
func (db *DB) TouchSession(sessionID, project string) (*Session, error) {
	now := time.Now().UnixMilli()

	var s Session
	err := db.QueryRow(`
		SELECT id, session_id, project, started_at, last_event_at, status, event_count
		FROM sessions WHERE session_id = ?
	`, sessionID).Scan(&s.ID, &s.SessionID, &s.Project, &s.StartedAt, &s.LastEventAt, &s.Status, &s.EventCount)
	if err == nil {
		_, err = db.Exec(`
			UPDATE sessions SET event_count = event_count + 1, last_event_at = ?
			WHERE session_id = ?
		`, now, sessionID)
		if err != nil {
			return nil, fmt.Errorf("touch session: %w", err)
		}
		s.EventCount++
		s.LastEventAt = &now
		return &s, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("check existing session: %w", err)
	}

	result, err := db.Exec(`
		INSERT INTO sessions (session_id, project, started_at, last_event_at, status, event_count)
		VALUES (?, ?, ?, ?, 'active', 1)
	`, sessionID, project, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Session{
		ID:          id,
		SessionID:   sessionID,
		Project:     project,
		StartedAt:   now,
		LastEventAt: &now,
		Status:      "active",
		EventCount:  1,
	}, nil
}

// CompleteSession marks a session as completed (stop and subagent_stop
// events). Completing an unknown or already-completed session is a no-op.
func (db *DB) CompleteSession(sessionID string) error {
	now := time.Now().UnixMilli()
	_, err := db.Exec(`
		UPDATE sessions SET status = 'completed', last_event_at = ?
		WHERE session_id = ? AND status = 'active'
	`, now, sessionID)
	if err != nil {
		return fmt.Errorf("complete session: %w", err)
	}
	return nil
}

// GetSession returns a session by its session_id, or nil if unknown.
func (db *DB) GetSession(sessionID string) (*Session, error) {
	var s Session
	err := db.QueryRow(`
		SELECT id, session_id, project, started_at, last_event_at, status, event_count
		FROM sessions WHERE session_id = ?
	`, sessionID).Scan(&s.ID, &s.SessionID, &s.Project, &s.StartedAt, &s.LastEventAt, &s.Status, &s.EventCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// GetRecentSessions returns the most recent sessions, ordered by started_at DESC.
func (db *DB) GetRecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(`
		SELECT id, session_id, project, started_at, last_event_at, status, event_count
		FROM sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.SessionID, &s.Project, &s.StartedAt, &s.LastEventAt, &s.Status, &s.EventCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
