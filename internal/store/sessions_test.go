package store

import (
	"testing"
)

func TestTouchSessionCreatesThenIncrements(t *testing.T) {
	db := openTestDB(t)

	s, err := db.TouchSession("sess-1", "herald")
	if err != nil {
		t.Fatalf("TouchSession: %v", err)
	}
	if s.Status != "active" || s.EventCount != 1 || s.Project != "herald" {
		t.Errorf("new session = %+v", s)
	}

	s, err = db.TouchSession("sess-1", "herald")
	if err != nil {
		t.Fatalf("TouchSession again: %v", err)
	}
	if s.EventCount != 2 {
		t.Errorf("event count = %d, want 2", s.EventCount)
	}
	if s.LastEventAt == nil {
		t.Error("last_event_at should be set")
	}
}

func TestCompleteSession(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.TouchSession("sess-1", ""); err != nil {
		t.Fatalf("TouchSession: %v", err)
	}
	if err := db.CompleteSession("sess-1"); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}

	s, err := db.GetSession("sess-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if s.Status != "completed" {
		t.Errorf("status = %q, want completed", s.Status)
	}

	// Completing again, or completing an unknown session, is a no-op.
	if err := db.CompleteSession("sess-1"); err != nil {
		t.Errorf("re-complete: %v", err)
	}
	if err := db.CompleteSession("never-seen"); err != nil {
		t.Errorf("complete unknown: %v", err)
	}
}

func TestGetSessionUnknown(t *testing.T) {
	db := openTestDB(t)

	s, err := db.GetSession("nope")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil for unknown session, got %+v", s)
	}
}

func TestGetRecentSessions(t *testing.T) {
	db := openTestDB(t)

	db.TouchSession("sess-1", "alpha")
	db.TouchSession("sess-2", "beta")
	db.TouchSession("sess-3", "gamma")

	sessions, err := db.GetRecentSessions(2)
	if err != nil {
		t.Fatalf("GetRecentSessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("sessions = %d, want 2", len(sessions))
	}
}
