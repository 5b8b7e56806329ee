package hooks

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ExportChat converts a JSONL transcript into a JSON array at
// <dir>/chat.json, skipping malformed lines.
func ExportChat(transcriptPath, dir string) error {
	f, err := os.Open(transcriptPath)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	var entries []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		entries = append(entries, json.RawMessage(append([]byte(nil), line...)))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan transcript: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal chat: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "chat.json"), data, 0644); err != nil {
		return fmt.Errorf("write chat.json: %w", err)
	}
	return nil
}

// FindLatestTranscript returns the most recently modified transcript under
// ~/.claude/projects, or "" when none exists.
func FindLatestTranscript() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return latestTranscriptIn(filepath.Join(home, ".claude", "projects"))
}

func latestTranscriptIn(projectsDir string) string {
	matches, err := filepath.Glob(filepath.Join(projectsDir, "*", "*.jsonl"))
	if err != nil || len(matches) == 0 {
		return ""
	}

	newest := ""
	var newestMod int64
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if mod := info.ModTime().UnixNano(); newest == "" || mod > newestMod {
			newest, newestMod = path, mod
		}
	}
	return newest
}

// logDir is where chat exports land: ./logs, matching where agents expect
// hook artifacts.
func logDir() string {
	return filepath.Join(".", "logs")
}
