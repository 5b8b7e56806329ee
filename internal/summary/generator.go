// Package summary turns transcript analyses into short, speakable messages
// for the stop, notification and subagent_stop hooks. Every path degrades to
// a generic message pool so a hook always has something to say.
package summary

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/calref/herald/internal/config"
	"github.com/calref/herald/internal/transcript"
)

// maxSpeechLength is the cap for TTS-bound messages. Longer audio gets
// tedious and expensive.
const maxSpeechLength = 80

// namePrefixChance is the documented probability of addressing the engineer
// by name.
const namePrefixChance = 0.3

// Generic message pools, used whenever summaries are disabled or analysis
// produced nothing worth speaking.
var (
	stopFallbacks = []string{
		"Work complete!",
		"All done!",
		"Task finished!",
		"Job complete!",
		"Ready for next task!",
	}
	notificationFallbacks = []string{
		"Your agent needs your input",
		"Waiting for your response",
		"Input required to continue",
	}
	subagentFallbacks = []string{
		"Subagent Complete",
		"Subagent task finished",
		"Background work done",
	}
)

// Rand is the subset of math/rand the generator uses. Injected so tests can
// pin both sides of the name-prefix coin flip.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Options configure a Generator, usually straight from config.Load.
type Options struct {
	Enabled      bool
	Verbosity    string
	EngineerName string
}

// Generator produces hook messages from session analyses.
type Generator struct {
	opts Options
	rand Rand
}

// New creates a Generator with a time-seeded RNG.
func New(opts Options) *Generator {
	return NewWithRand(opts, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand creates a Generator with the given RNG.
func NewWithRand(opts Options, r Rand) *Generator {
	return &Generator{opts: opts, rand: r}
}

// FromConfig builds Options from a loaded Config.
func FromConfig(cfg config.Config) Options {
	return Options{
		Enabled:      cfg.SummaryEnabled,
		Verbosity:    cfg.Verbosity,
		EngineerName: cfg.EngineerName,
	}
}

// Stop generates a completion summary for the Stop hook, e.g.
// "Completed: created auth.py, modified 2 files, ran tests".
func (g *Generator) Stop(a transcript.Analysis) string {
	if !g.opts.Enabled || a.Empty() {
		return g.pick(stopFallbacks)
	}

	var parts []string
	if s := summarizeFileOperations(a.FileOperations); s != "" {
		parts = append(parts, s)
	}
	if s := summarizeBashCommands(a.BashCommands); s != "" {
		parts = append(parts, s)
	}
	if g.opts.Verbosity == config.VerbosityDetailed {
		if s := summarizeErrors(a.Errors); s != "" {
			parts = append(parts, s)
		}
	}

	if len(parts) == 0 {
		if len(a.Accomplishments) == 0 {
			return g.pick(stopFallbacks)
		}
		n := len(a.Accomplishments)
		if n > 2 {
			n = 2
		}
		parts = a.Accomplishments[:n]
	}

	msg := "Completed: " + strings.Join(parts, ", ")
	if g.opts.Verbosity == config.VerbosityDetailed && a.DurationMinutes > 0 {
		msg += fmt.Sprintf(" in %.1f minutes", a.DurationMinutes)
	}
	return truncateForSpeech(msg)
}

// Notification generates a context-aware message for when the agent is
// waiting on the engineer.
func (g *Generator) Notification(a transcript.Analysis) string {
	if !g.opts.Enabled {
		return g.pick(notificationFallbacks)
	}

	prefix := ""
	if g.opts.EngineerName != "" && g.rand.Float64() < namePrefixChance {
		prefix = g.opts.EngineerName + ", "
	}

	if usableContext(a.CurrentContext) {
		return truncateForSpeech(prefix + "Working on: " + a.CurrentContext + ", needs your input")
	}

	if ctx := notificationContext(a); ctx != "" {
		return truncateForSpeech(prefix + ctx + ", needs your input")
	}

	return prefix + g.pick(notificationFallbacks)
}

// Subagent generates a summary for subagent completion. Subagents are
// typically research and analysis tasks.
func (g *Generator) Subagent(a transcript.Analysis) string {
	if !g.opts.Enabled {
		return g.pick(subagentFallbacks)
	}

	if s := summarizeResearch(a.ToolEvents); s != "" {
		return truncateForSpeech("Subagent completed: " + s)
	}

	reads := 0
	for _, op := range a.FileOperations {
		if op.Operation == "read" {
			reads++
		}
	}
	if reads > 0 {
		return truncateForSpeech(fmt.Sprintf("Subagent analyzed %d files", reads))
	}

	if len(a.Accomplishments) > 0 {
		return truncateForSpeech("Subagent completed: " + a.Accomplishments[0])
	}

	return g.pick(subagentFallbacks)
}

func (g *Generator) pick(pool []string) string {
	return pool[g.rand.Intn(len(pool))]
}

func summarizeFileOperations(ops []transcript.FileOperation) string {
	var created, modified []transcript.FileOperation
	for _, op := range ops {
		if !op.Success {
			continue
		}
		switch op.Operation {
		case "write":
			created = append(created, op)
		case "edit":
			modified = append(modified, op)
		}
	}

	var parts []string
	if len(created) == 1 {
		parts = append(parts, "created "+filepath.Base(created[0].FilePath))
	} else if len(created) > 1 {
		parts = append(parts, fmt.Sprintf("created %d files", len(created)))
	}

	if len(modified) == 1 && len(created) == 0 {
		parts = append(parts, "modified "+filepath.Base(modified[0].FilePath))
	} else if len(modified) > 0 {
		parts = append(parts, fmt.Sprintf("modified %d files", len(modified)))
	}

	return strings.Join(parts, ", ")
}

func summarizeBashCommands(cmds []transcript.BashCommand) string {
	var successful []transcript.BashCommand
	for _, c := range cmds {
		if c.Success {
			successful = append(successful, c)
		}
	}
	if len(successful) == 0 {
		return ""
	}

	var ranTests, built, git bool
	for _, c := range successful {
		lower := strings.ToLower(c.Command)
		if strings.Contains(lower, "test") {
			ranTests = true
		}
		for _, kw := range []string{"build", "compile", "npm run", "yarn", "make"} {
			if strings.Contains(lower, kw) {
				built = true
				break
			}
		}
		if strings.HasPrefix(c.Command, "git") {
			git = true
		}
	}

	var parts []string
	if ranTests {
		parts = append(parts, "ran tests")
	}
	if built {
		parts = append(parts, "built project")
	}
	if git {
		parts = append(parts, "updated git")
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("executed %d commands", len(successful)))
	}
	return strings.Join(parts, ", ")
}

func summarizeErrors(errs []string) string {
	switch n := len(errs); {
	case n == 1:
		return "resolved 1 error"
	case n > 1:
		return fmt.Sprintf("resolved %d errors", n)
	default:
		return ""
	}
}

// notificationContext derives context from recent activity when the
// analyzer produced none.
func notificationContext(a transcript.Analysis) string {
	if len(a.FileOperations) == 1 {
		return "Working on " + filepath.Base(a.FileOperations[0].FilePath)
	}
	if len(a.FileOperations) > 1 {
		return "Working on multiple files"
	}

	if len(a.UserMessages) > 0 {
		last := strings.ToLower(a.UserMessages[len(a.UserMessages)-1])
		switch {
		case strings.Contains(last, "database") || strings.Contains(last, "db"):
			return "Setting up database"
		case strings.Contains(last, "test"):
			return "Working on tests"
		case strings.Contains(last, "auth"):
			return "Implementing authentication"
		case strings.Contains(last, "api") || strings.Contains(last, "endpoint"):
			return "Building API"
		}
	}
	return ""
}

// usableContext filters out the analyzer's placeholder contexts, which
// would read as nonsense when spoken.
func usableContext(ctx string) bool {
	return ctx != "" && ctx != "Unknown context" && ctx != "Working on current task"
}

func summarizeResearch(events []transcript.ToolEvent) string {
	research := map[string]bool{"WebFetch": true, "WebSearch": true, "Grep": true, "Glob": true, "LS": true}
	count := 0
	for _, ev := range events {
		if research[ev.Name] {
			count++
		}
	}
	switch {
	case count == 1:
		return "conducted code analysis"
	case count > 1:
		return fmt.Sprintf("analyzed %d code components", count)
	default:
		return ""
	}
}

// truncateForSpeech caps text at maxSpeechLength, preferring a word
// boundary when one falls in the last 30% of the limit.
func truncateForSpeech(text string) string {
	if len(text) <= maxSpeechLength {
		return text
	}
	cut := text[:maxSpeechLength]
	if idx := strings.LastIndex(cut, " "); idx > maxSpeechLength*7/10 {
		return cut[:idx]
	}
	return strings.TrimRight(cut, " ") + "..."
}
