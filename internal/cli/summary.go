package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calref/herald/internal/config"
	"github.com/calref/herald/internal/hooks"
	"github.com/calref/herald/internal/summary"
	"github.com/calref/herald/internal/transcript"
)

var summaryHook string

var summaryCmd = &cobra.Command{
	Use:   "summary [transcript.jsonl]",
	Short: "Print the spoken summary for a transcript",
	Long:  "Generate the summary a hook would speak for the given transcript. With no argument the newest transcript under ~/.claude/projects is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryHook, "hook", "stop", "Hook to summarize for: stop, notification, or subagent")
}

func runSummary(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		path = hooks.FindLatestTranscript()
		if path == "" {
			return fmt.Errorf("no transcript found under ~/.claude/projects; pass a path")
		}
	}

	gen := summary.New(summary.FromConfig(config.Load()))
	a := transcript.Analyze(path)

	var text string
	switch summaryHook {
	case "stop":
		text = gen.Stop(a)
	case "notification":
		text = gen.Notification(a)
	case "subagent":
		text = gen.Subagent(a)
	default:
		return fmt.Errorf("unknown hook %q: want stop, notification, or subagent", summaryHook)
	}

	fmt.Println(text)
	return nil
}
