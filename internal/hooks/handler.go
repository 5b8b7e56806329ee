package hooks

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/calref/herald/internal/config"
	"github.com/calref/herald/internal/store"
	"github.com/calref/herald/internal/summary"
	"github.com/calref/herald/internal/transcript"
)

// Options carry the per-event CLI flags.
type Options struct {
	// Chat exports the session transcript to logs/chat.json
	// (stop and subagent-stop).
	Chat bool

	// Notify enables TTS for notification events.
	Notify bool
}

// Handle reads HookInput from the given reader, records the event, and
// dispatches to the appropriate handler. It never returns an error: hooks
// must never crash Claude Code, so every failure degrades to a stderr note.
func Handle(event string, stdin io.Reader, opts Options) {
	raw, err := io.ReadAll(stdin)
	if err != nil {
		Note(fmt.Errorf("read stdin: %w", err))
		return
	}

	var input HookInput
	if err := json.Unmarshal(raw, &input); err != nil {
		Note(fmt.Errorf("decode stdin: %w", err))
		return
	}

	cfg := config.Load()

	message, announce := plan(event, &input, opts, cfg)

	record(cfg, event, &input, raw, message, announce)

	if opts.Chat && input.TranscriptPath != "" {
		if err := ExportChat(input.TranscriptPath, logDir()); err != nil {
			Note(err)
		}
	}

	if announce {
		Announce(cfg, message)
	}
}

// plan decides what, if anything, this event should say.
func plan(event string, input *HookInput, opts Options, cfg config.Config) (string, bool) {
	gen := summary.New(summary.FromConfig(cfg))

	switch event {
	case store.HookStop:
		// A stop hook re-triggered by its own continuation must not
		// announce again.
		if input.StopHookActive {
			return "", false
		}
		return gen.Stop(transcript.Analyze(transcriptPath(event, input))), true

	case store.HookNotification:
		if !opts.Notify || input.Message == waitingMessage {
			return "", false
		}
		return gen.Notification(transcript.Analyze(transcriptPath(event, input))), true

	case store.HookSubagentStop:
		return gen.Subagent(transcript.Analyze(transcriptPath(event, input))), true

	default:
		Note(fmt.Errorf("unknown hook event: %s", event))
		return "", false
	}
}

// transcriptPath resolves which transcript to analyze. The hook payload is
// authoritative; notification events historically omit it, so fall back to
// the newest transcript on disk.
func transcriptPath(event string, input *HookInput) string {
	if input.TranscriptPath != "" {
		return input.TranscriptPath
	}
	if event == store.HookNotification {
		return FindLatestTranscript()
	}
	return ""
}

// record writes the event to the local database. Failures are noted to
// stderr and otherwise ignored; losing one log row is not worth a broken
// hook.
func record(cfg config.Config, event string, input *HookInput, payload []byte, message string, announced bool) {
	db, err := openDB(cfg)
	if err != nil {
		Note(fmt.Errorf("open event log: %w", err))
		return
	}
	defer db.Close()

	project := ""
	if input.CWD != "" {
		project = filepath.Base(input.CWD)
	}
	if _, err := db.TouchSession(input.SessionID, project); err != nil {
		Note(err)
	}
	if err := db.AddEvent(input.SessionID, event, string(payload), message, announced); err != nil {
		Note(err)
	}
	if event == store.HookStop || event == store.HookSubagentStop {
		if err := db.CompleteSession(input.SessionID); err != nil {
			Note(err)
		}
	}
}

func openDB(cfg config.Config) (*store.DB, error) {
	path := cfg.DBPath
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(path)
}
