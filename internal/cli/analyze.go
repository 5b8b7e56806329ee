package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calref/herald/internal/hooks"
	"github.com/calref/herald/internal/transcript"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [transcript.jsonl]",
	Short: "Show what a transcript contains",
	Long:  "Parse a session transcript and print the activity herald would summarize. With no argument the newest transcript under ~/.claude/projects is used.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		path = hooks.FindLatestTranscript()
		if path == "" {
			return fmt.Errorf("no transcript found under ~/.claude/projects; pass a path")
		}
	}

	a := transcript.Analyze(path)

	fmt.Printf("session:    %s\n", a.SessionID)
	if a.DurationMinutes > 0 {
		fmt.Printf("duration:   %.1f minutes\n", a.DurationMinutes)
	}
	fmt.Printf("messages:   %d user, %d assistant\n", len(a.UserMessages), len(a.AssistantResponses))
	fmt.Printf("tool calls: %d (%d file operations, %d bash commands)\n",
		len(a.ToolEvents), len(a.FileOperations), len(a.BashCommands))
	if len(a.Errors) > 0 {
		fmt.Printf("errors:     %d\n", len(a.Errors))
	}

	if len(a.Accomplishments) > 0 {
		fmt.Println("\naccomplishments:")
		for _, acc := range a.Accomplishments {
			fmt.Printf("  - %s\n", acc)
		}
	}
	fmt.Printf("\ncontext: %s\n", a.CurrentContext)

	return nil
}
