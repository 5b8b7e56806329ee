package transcript

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"
)

// Tool categories used when classifying events.
var (
	fileOperationTools = map[string]bool{"Read": true, "Write": true, "Edit": true, "MultiEdit": true}
	researchTools      = map[string]bool{"WebFetch": true, "WebSearch": true, "Grep": true, "Glob": true, "LS": true}
)

const previewMax = 100

// FileOperation represents a file read/write/edit performed in a session.
type FileOperation struct {
	Operation string // "read", "write", "edit"
	FilePath  string
	Success   bool
	Preview   string
}

// BashCommand represents a shell command executed in a session.
type BashCommand struct {
	Command     string
	Description string
	Stdout      string
	Stderr      string
	Success     bool
}

// ToolEvent joins a tool invocation to its result.
type ToolEvent struct {
	Name    string
	Input   ToolInput
	Success bool
	Error   string
}

// Analysis holds everything herald extracts from a session transcript.
type Analysis struct {
	SessionID          string
	DurationMinutes    float64
	UserMessages       []string
	AssistantResponses []string
	ToolEvents         []ToolEvent
	FileOperations     []FileOperation
	BashCommands       []BashCommand
	Errors             []string
	Accomplishments    []string
	CurrentContext     string
}

// Empty reports whether the session showed no meaningful activity.
func (a *Analysis) Empty() bool {
	return len(a.Accomplishments) == 0 && len(a.FileOperations) == 0 && len(a.BashCommands) == 0
}

// Analyze parses and analyzes the transcript at path. A missing or
// unreadable transcript yields an empty analysis rather than an error, so
// callers fall through to their generic messages.
func Analyze(path string) Analysis {
	if path == "" {
		return emptyAnalysis()
	}
	events, err := ParseFile(path)
	if err != nil {
		return emptyAnalysis()
	}
	return AnalyzeEvents(events)
}

// AnalyzeEvents extracts session activity from parsed transcript events.
func AnalyzeEvents(events []Event) Analysis {
	a := emptyAnalysis()

	// Index tool results by tool_use_id for joining.
	results := make(map[string]ToolResult)
	var timestamps []string

	for _, ev := range events {
		if ev.SessionID != "" {
			a.SessionID = ev.SessionID
		}
		if ev.Timestamp != "" {
			timestamps = append(timestamps, ev.Timestamp)
		}
		for _, r := range ev.ToolResults {
			if r.ToolUseID != "" {
				results[r.ToolUseID] = r
			}
		}
	}

	for _, ev := range events {
		switch ev.Type {
		case "user":
			// User events carrying tool results are responses, not prompts.
			if ev.Text != "" && len(ev.ToolResults) == 0 && !isToolResultNoise(ev.Text) {
				a.UserMessages = append(a.UserMessages, ev.Text)
			}
		case "assistant":
			if ev.Text != "" {
				a.AssistantResponses = append(a.AssistantResponses, ev.Text)
			}
			for _, use := range ev.ToolUses {
				te := joinToolEvent(use, results)
				a.ToolEvents = append(a.ToolEvents, te)

				if fileOperationTools[use.Name] {
					a.FileOperations = append(a.FileOperations, fileOperation(use, te.Success))
				} else if use.Name == "Bash" {
					a.BashCommands = append(a.BashCommands, bashCommand(use, results[use.ID], te.Success))
				}
			}
		case "system":
			lower := strings.ToLower(ev.Text)
			if strings.Contains(lower, "error") || strings.Contains(lower, "failed") {
				a.Errors = append(a.Errors, ev.Text)
			}
		}
	}

	a.DurationMinutes = durationMinutes(timestamps)
	a.Accomplishments = accomplishments(a.FileOperations, a.BashCommands, a.ToolEvents)
	a.CurrentContext = currentContext(a.UserMessages, a.FileOperations)

	return a
}

func emptyAnalysis() Analysis {
	return Analysis{SessionID: "unknown", CurrentContext: "Unknown context"}
}

// isToolResultNoise flags user content that is machinery output rather
// than something the user typed.
func isToolResultNoise(text string) bool {
	if len(text) < 5 || strings.HasPrefix(text, "{") {
		return true
	}
	for _, pattern := range []string{"tool_use_id", "tool_result", "system-reminder"} {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return false
}

func joinToolEvent(use ToolUse, results map[string]ToolResult) ToolEvent {
	te := ToolEvent{Name: use.Name, Input: use.Input, Success: true}
	if r, ok := results[use.ID]; ok && r.IsError {
		te.Success = false
		te.Error = r.Text
	}
	return te
}

func fileOperation(use ToolUse, success bool) FileOperation {
	op := FileOperation{FilePath: use.Input.FilePath, Success: success}
	switch use.Name {
	case "Read":
		op.Operation = "read"
	case "Write":
		op.Operation = "write"
		op.Preview = preview(use.Input.Content)
	case "Edit", "MultiEdit":
		op.Operation = "edit"
		op.Preview = preview(use.Input.NewString)
	}
	return op
}

func bashCommand(use ToolUse, result ToolResult, success bool) BashCommand {
	return BashCommand{
		Command:     use.Input.Command,
		Description: use.Input.Description,
		Stdout:      result.Stdout,
		Stderr:      result.Stderr,
		Success:     success,
	}
}

func preview(content string) string {
	if len(content) > previewMax {
		return content[:previewMax] + "..."
	}
	return content
}

// durationMinutes computes the span between the first and last timestamps,
// rounded to one decimal place.
func durationMinutes(timestamps []string) float64 {
	if len(timestamps) < 2 {
		return 0
	}
	start, err := time.Parse(time.RFC3339, timestamps[0])
	if err != nil {
		return 0
	}
	end, err := time.Parse(time.RFC3339, timestamps[len(timestamps)-1])
	if err != nil {
		return 0
	}
	minutes := end.Sub(start).Minutes()
	return math.Round(minutes*10) / 10
}

func accomplishments(fileOps []FileOperation, cmds []BashCommand, tools []ToolEvent) []string {
	var out []string

	var created, modified int
	for _, op := range fileOps {
		if !op.Success {
			continue
		}
		switch op.Operation {
		case "write":
			created++
		case "edit":
			modified++
		}
	}
	if created > 0 {
		out = append(out, fmt.Sprintf("Created %d file(s)", created))
	}
	if modified > 0 {
		out = append(out, fmt.Sprintf("Modified %d file(s)", modified))
	}

	var ranTests, ranBuilds bool
	for _, cmd := range cmds {
		if !cmd.Success {
			continue
		}
		lower := strings.ToLower(cmd.Command)
		if strings.Contains(lower, "test") {
			ranTests = true
		}
		for _, kw := range []string{"build", "compile", "npm", "yarn", "make"} {
			if strings.Contains(lower, kw) {
				ranBuilds = true
				break
			}
		}
	}
	if ranTests {
		out = append(out, "Ran tests")
	}
	if ranBuilds {
		out = append(out, "Executed build commands")
	}

	for _, te := range tools {
		if researchTools[te.Name] {
			out = append(out, "Conducted code research")
			break
		}
	}

	return out
}

// currentContext summarizes what the session is in the middle of, for
// notification messages.
func currentContext(userMessages []string, fileOps []FileOperation) string {
	if len(userMessages) == 0 {
		return "Working on current task"
	}

	var parts []string

	last := userMessages[len(userMessages)-1]
	if len(last) > 50 {
		parts = append(parts, last[:50]+"...")
	} else {
		parts = append(parts, last)
	}

	if len(fileOps) > 0 {
		recent := fileOps
		if len(recent) > 3 {
			recent = recent[len(recent)-3:]
		}
		names := make([]string, 0, len(recent))
		for _, op := range recent {
			if op.FilePath != "" {
				names = append(names, filepath.Base(op.FilePath))
			}
		}
		if len(names) > 0 {
			parts = append(parts, "working on "+strings.Join(names, ", "))
		}
	}

	return strings.Join(parts, " - ")
}
