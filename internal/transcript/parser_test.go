package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLines(t *testing.T) {
	lines := `{"type":"user","message":{"role":"user","content":"Hello, help me with Go code"}}
{"type":"assistant","message":{"role":"assistant","content":"Sure, I can help with Go."}}
{"type":"user","message":{"role":"user","content":"Write a function to sort a slice"}}
{"type":"assistant","message":{"role":"assistant","content":"Here is a sort function for you."}}`

	events, err := ParseLines(lines)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}

	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}

	if events[0].Type != "user" {
		t.Errorf("event[0].Type = %q, want user", events[0].Type)
	}
	if events[0].Text != "Hello, help me with Go code" {
		t.Errorf("event[0].Text = %q", events[0].Text)
	}
	if events[1].Type != "assistant" {
		t.Errorf("event[1].Type = %q, want assistant", events[1].Type)
	}
}

func TestParseLinesContentArray(t *testing.T) {
	lines := `{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":"Here is the code:"},{"type":"tool_use","id":"tu_1","name":"Write","input":{"file_path":"/tmp/auth.py","content":"print('hi')"}}]}}`

	events, err := ParseLines(lines)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ev := events[0]
	if ev.Text != "Here is the code:" {
		t.Errorf("text = %q, want 'Here is the code:'", ev.Text)
	}
	if len(ev.ToolUses) != 1 {
		t.Fatalf("expected 1 tool use, got %d", len(ev.ToolUses))
	}
	use := ev.ToolUses[0]
	if use.Name != "Write" || use.ID != "tu_1" {
		t.Errorf("tool use = %+v", use)
	}
	if use.Input.FilePath != "/tmp/auth.py" {
		t.Errorf("file path = %q", use.Input.FilePath)
	}
}

func TestParseLinesToolResult(t *testing.T) {
	lines := `{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"tu_1","content":"ok","is_error":false}]}}
{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"tu_2","content":{"stdout":"PASS","stderr":""},"is_error":false}]}}
{"type":"user","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"tu_3","content":"boom","is_error":true}]}}`

	events, err := ParseLines(lines)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	if got := events[0].ToolResults[0]; got.ToolUseID != "tu_1" || got.Text != "ok" || got.IsError {
		t.Errorf("result[0] = %+v", got)
	}
	if got := events[1].ToolResults[0]; got.Stdout != "PASS" {
		t.Errorf("result[1].Stdout = %q, want PASS", got.Stdout)
	}
	if got := events[2].ToolResults[0]; !got.IsError {
		t.Error("result[2] should be an error")
	}
}

func TestParseLinesStripsSystemReminder(t *testing.T) {
	lines := `{"type":"user","message":{"role":"user","content":"Real question here <system-reminder>noise to drop</system-reminder> and more"}}`

	events, err := ParseLines(lines)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if strings.Contains(events[0].Text, "system-reminder") || strings.Contains(events[0].Text, "noise") {
		t.Errorf("reminder not stripped: %q", events[0].Text)
	}
}

func TestParseLinesSkipsMalformed(t *testing.T) {
	lines := `not json at all
{"type":"user","message":{"role":"user","content":"A real message"}}
{"type":"","message":null}`

	events, err := ParseLines(lines)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
}

func TestParseLinesSystemContent(t *testing.T) {
	lines := `{"type":"system","content":"Command failed with exit code 1"}`

	events, err := ParseLines(lines)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type != "system" || events[0].Text != "Command failed with exit code 1" {
		t.Errorf("system event = %+v", events[0])
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.jsonl")
	content := `{"type":"user","sessionId":"abc-123","timestamp":"2025-01-01T10:00:00Z","message":{"role":"user","content":"Build the auth module"}}
{"type":"assistant","sessionId":"abc-123","timestamp":"2025-01-01T10:05:00Z","message":{"role":"assistant","content":"Starting on it now."}}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	events, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].SessionID != "abc-123" {
		t.Errorf("session id = %q", events[0].SessionID)
	}
	if events[0].Timestamp != "2025-01-01T10:00:00Z" {
		t.Errorf("timestamp = %q", events[0].Timestamp)
	}

	if CountUserMessages(events) != 1 {
		t.Errorf("user message count = %d, want 1", CountUserMessages(events))
	}
}

func TestParseFileMissing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.jsonl")); err == nil {
		t.Error("expected error for missing file")
	}
}
