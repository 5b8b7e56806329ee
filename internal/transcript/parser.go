package transcript

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Entry represents a single line in a Claude Code JSONL transcript.
type Entry struct {
	Type      string          `json:"type"` // "user", "assistant", "system"
	SessionID string          `json:"sessionId"`
	Timestamp string          `json:"timestamp"`
	Message   json.RawMessage `json:"message"`
	Content   string          `json:"content"` // system entries carry plain content
}

// Message is the parsed message content.
type Message struct {
	Role    string          `json:"role"`
	Content json.RawMessage `json:"content"` // string or []ContentItem
}

// ContentItem represents a single content block (text, tool_use, tool_result).
type ContentItem struct {
	Type string `json:"type"` // "text", "tool_use", "tool_result"
	Text string `json:"text,omitempty"`

	// tool_use fields
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// tool_result fields
	ToolUseID string          `json:"tool_use_id,omitempty"`
	Content   json.RawMessage `json:"content,omitempty"`
	IsError   bool            `json:"is_error,omitempty"`
}

// ToolInput holds the tool parameters herald cares about. Tools carry many
// more fields; everything else is ignored.
type ToolInput struct {
	FilePath    string `json:"file_path,omitempty"`
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	NewString   string `json:"new_string,omitempty"`
}

// ToolUse is a tool invocation extracted from an assistant message.
type ToolUse struct {
	ID    string
	Name  string
	Input ToolInput
}

// ToolResult is a tool outcome extracted from a user message.
type ToolResult struct {
	ToolUseID string
	IsError   bool
	Text      string
	Stdout    string
	Stderr    string
}

// Event holds a fully parsed transcript entry.
type Event struct {
	Type        string // "user", "assistant", "system"
	SessionID   string
	Timestamp   string
	Role        string
	Text        string // extracted plain text, reminder-stripped
	ToolUses    []ToolUse
	ToolResults []ToolResult
}

var systemReminderRe = regexp.MustCompile(`<system-reminder>[\s\S]*?</system-reminder>`)

// ParseFile reads a JSONL transcript file and returns parsed events.
func ParseFile(path string) ([]Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024) // 1MB line buffer

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		ev, err := parseLine(line)
		if err != nil {
			continue // skip malformed lines
		}
		if ev != nil {
			events = append(events, *ev)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan transcript: %w", err)
	}

	return events, nil
}

// ParseLines parses transcript content from a string (for testing).
func ParseLines(content string) ([]Event, error) {
	var events []Event
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		ev, err := parseLine([]byte(line))
		if err != nil {
			continue
		}
		if ev != nil {
			events = append(events, *ev)
		}
	}
	return events, nil
}

func parseLine(line []byte) (*Event, error) {
	var entry Entry
	if err := json.Unmarshal(line, &entry); err != nil {
		return nil, err
	}
	if entry.Type == "" {
		return nil, nil
	}

	ev := &Event{
		Type:      entry.Type,
		SessionID: entry.SessionID,
		Timestamp: entry.Timestamp,
	}

	// System entries carry their content at the top level.
	if entry.Type == "system" {
		ev.Text = strings.TrimSpace(entry.Content)
		return ev, nil
	}

	if entry.Message == nil {
		return nil, nil
	}

	var msg Message
	if err := json.Unmarshal(entry.Message, &msg); err != nil {
		return nil, err
	}
	ev.Role = msg.Role

	text, uses, results := extractContent(msg.Content)
	text = systemReminderRe.ReplaceAllString(text, "")
	ev.Text = strings.TrimSpace(text)
	ev.ToolUses = uses
	ev.ToolResults = results

	if ev.Text == "" && len(uses) == 0 && len(results) == 0 {
		return nil, nil
	}
	return ev, nil
}

// extractContent handles the polymorphic content field. It may be a plain
// string or an array of content blocks mixing text, tool_use and tool_result.
func extractContent(raw json.RawMessage) (string, []ToolUse, []ToolResult) {
	// Try as string first
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil, nil
	}

	var items []ContentItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return "", nil, nil
	}

	var texts []string
	var uses []ToolUse
	var results []ToolResult
	for _, item := range items {
		switch item.Type {
		case "text":
			if item.Text != "" {
				texts = append(texts, item.Text)
			}
		case "tool_use":
			use := ToolUse{ID: item.ID, Name: item.Name}
			if len(item.Input) > 0 {
				json.Unmarshal(item.Input, &use.Input)
			}
			uses = append(uses, use)
		case "tool_result":
			results = append(results, parseToolResult(item))
		}
	}
	return strings.Join(texts, "\n"), uses, results
}

// parseToolResult decodes the result content, which may be a string, an
// array of text blocks, or an object carrying stdout/stderr.
func parseToolResult(item ContentItem) ToolResult {
	res := ToolResult{ToolUseID: item.ToolUseID, IsError: item.IsError}
	if len(item.Content) == 0 {
		return res
	}

	var s string
	if err := json.Unmarshal(item.Content, &s); err == nil {
		res.Text = s
		res.Stdout = s
		return res
	}

	var streams struct {
		Stdout  string `json:"stdout"`
		Stderr  string `json:"stderr"`
		IsError bool   `json:"is_error"`
	}
	if err := json.Unmarshal(item.Content, &streams); err == nil && (streams.Stdout != "" || streams.Stderr != "") {
		res.Stdout = streams.Stdout
		res.Stderr = streams.Stderr
		res.IsError = res.IsError || streams.IsError
		res.Text = streams.Stdout
		return res
	}

	var blocks []ContentItem
	if err := json.Unmarshal(item.Content, &blocks); err == nil {
		var texts []string
		for _, b := range blocks {
			if b.Type == "text" && b.Text != "" {
				texts = append(texts, b.Text)
			}
		}
		res.Text = strings.Join(texts, "\n")
	}
	return res
}

// CountUserMessages returns the number of user events carrying real text.
func CountUserMessages(events []Event) int {
	count := 0
	for _, e := range events {
		if e.Type == "user" && e.Text != "" {
			count++
		}
	}
	return count
}
