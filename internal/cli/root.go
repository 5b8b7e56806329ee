package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "herald",
	Short: "Voice notifications and commit helpers for Claude Code",
	Long:  "Herald announces Claude Code hook events with spoken summaries, keeps a local event log, and generates conventional commit messages.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(hookCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(commitCmd)
}
