package transcript

import (
	"path/filepath"
	"strings"
	"testing"
)

// sessionFixture is a realistic slice of a coding session: a prompt, a file
// write, an edit, a test run and a failing command.
const sessionFixture = `{"type":"user","sessionId":"sess-42","timestamp":"2025-01-01T10:00:00Z","message":{"role":"user","content":"Please add authentication to the API"}}
{"type":"assistant","sessionId":"sess-42","timestamp":"2025-01-01T10:01:00Z","message":{"role":"assistant","content":[{"type":"text","text":"Creating the auth module."},{"type":"tool_use","id":"tu_1","name":"Write","input":{"file_path":"/srv/app/auth.py","content":"def login(): pass"}}]}}
{"type":"user","sessionId":"sess-42","timestamp":"2025-01-01T10:02:00Z","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"tu_1","content":"File created successfully"}]}}
{"type":"assistant","sessionId":"sess-42","timestamp":"2025-01-01T10:03:00Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"tu_2","name":"Edit","input":{"file_path":"/srv/app/routes.py","new_string":"from auth import login"}}]}}
{"type":"user","sessionId":"sess-42","timestamp":"2025-01-01T10:04:00Z","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"tu_2","content":"Edit applied"}]}}
{"type":"assistant","sessionId":"sess-42","timestamp":"2025-01-01T10:05:00Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"tu_3","name":"Bash","input":{"command":"pytest tests/","description":"Run the test suite"}}]}}
{"type":"user","sessionId":"sess-42","timestamp":"2025-01-01T10:06:00Z","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"tu_3","content":{"stdout":"4 passed","stderr":""}}]}}
{"type":"assistant","sessionId":"sess-42","timestamp":"2025-01-01T10:07:00Z","message":{"role":"assistant","content":[{"type":"tool_use","id":"tu_4","name":"Bash","input":{"command":"rm /protected"}}]}}
{"type":"user","sessionId":"sess-42","timestamp":"2025-01-01T10:08:00Z","message":{"role":"user","content":[{"type":"tool_result","tool_use_id":"tu_4","content":"permission denied","is_error":true}]}}
{"type":"system","sessionId":"sess-42","timestamp":"2025-01-01T10:09:00Z","content":"Tool execution failed: permission denied"}
{"type":"assistant","sessionId":"sess-42","timestamp":"2025-01-01T10:10:00Z","message":{"role":"assistant","content":"Authentication is wired up and tests pass."}}`

func analyzeFixture(t *testing.T) Analysis {
	t.Helper()
	events, err := ParseLines(sessionFixture)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	return AnalyzeEvents(events)
}

func TestAnalyzeSessionMetadata(t *testing.T) {
	a := analyzeFixture(t)

	if a.SessionID != "sess-42" {
		t.Errorf("session id = %q, want sess-42", a.SessionID)
	}
	if a.DurationMinutes != 10.0 {
		t.Errorf("duration = %v, want 10.0", a.DurationMinutes)
	}
	if len(a.UserMessages) != 1 {
		t.Fatalf("user messages = %d, want 1 (tool results filtered)", len(a.UserMessages))
	}
	if len(a.AssistantResponses) != 2 {
		t.Errorf("assistant responses = %d, want 2", len(a.AssistantResponses))
	}
}

func TestAnalyzeFileOperations(t *testing.T) {
	a := analyzeFixture(t)

	if len(a.FileOperations) != 2 {
		t.Fatalf("file operations = %d, want 2", len(a.FileOperations))
	}
	write := a.FileOperations[0]
	if write.Operation != "write" || write.FilePath != "/srv/app/auth.py" || !write.Success {
		t.Errorf("write op = %+v", write)
	}
	if write.Preview != "def login(): pass" {
		t.Errorf("write preview = %q", write.Preview)
	}
	edit := a.FileOperations[1]
	if edit.Operation != "edit" || edit.Preview != "from auth import login" {
		t.Errorf("edit op = %+v", edit)
	}
}

func TestAnalyzeBashCommands(t *testing.T) {
	a := analyzeFixture(t)

	if len(a.BashCommands) != 2 {
		t.Fatalf("bash commands = %d, want 2", len(a.BashCommands))
	}
	if a.BashCommands[0].Command != "pytest tests/" || !a.BashCommands[0].Success {
		t.Errorf("first command = %+v", a.BashCommands[0])
	}
	if a.BashCommands[0].Stdout != "4 passed" {
		t.Errorf("stdout = %q", a.BashCommands[0].Stdout)
	}
	if a.BashCommands[1].Success {
		t.Error("rm command should be marked failed via is_error result")
	}
}

func TestAnalyzeErrorsAndAccomplishments(t *testing.T) {
	a := analyzeFixture(t)

	if len(a.Errors) != 1 {
		t.Fatalf("errors = %d, want 1", len(a.Errors))
	}

	joined := strings.Join(a.Accomplishments, "; ")
	for _, want := range []string{"Created 1 file", "Modified 1 file", "Ran tests"} {
		if !strings.Contains(joined, want) {
			t.Errorf("accomplishments %q missing %q", joined, want)
		}
	}
}

func TestAnalyzeCurrentContext(t *testing.T) {
	a := analyzeFixture(t)

	if !strings.Contains(a.CurrentContext, "Please add authentication") {
		t.Errorf("context %q should carry the last user message", a.CurrentContext)
	}
	if !strings.Contains(a.CurrentContext, "auth.py") {
		t.Errorf("context %q should mention recent files", a.CurrentContext)
	}
}

func TestAnalyzeLongUserMessageTruncated(t *testing.T) {
	long := strings.Repeat("refactor the entire storage layer ", 5)
	events, err := ParseLines(`{"type":"user","message":{"role":"user","content":"` + long + `"}}`)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	a := AnalyzeEvents(events)
	if !strings.HasSuffix(a.CurrentContext, "...") {
		t.Errorf("context %q should be truncated", a.CurrentContext)
	}
	if len(a.CurrentContext) > 60 {
		t.Errorf("context too long: %d chars", len(a.CurrentContext))
	}
}

func TestAnalyzeMissingTranscript(t *testing.T) {
	a := Analyze(filepath.Join(t.TempDir(), "gone.jsonl"))
	if a.SessionID != "unknown" {
		t.Errorf("session id = %q, want unknown", a.SessionID)
	}
	if a.CurrentContext != "Unknown context" {
		t.Errorf("context = %q, want Unknown context", a.CurrentContext)
	}
	if !a.Empty() {
		t.Error("missing transcript should analyze as empty")
	}
}

func TestAnalyzeEmptyPath(t *testing.T) {
	a := Analyze("")
	if !a.Empty() {
		t.Error("empty path should analyze as empty")
	}
}
