package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/calref/herald/internal/hooks"
	"github.com/calref/herald/internal/store"
)

var (
	hookChat   bool
	hookNotify bool
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Handle Claude Code hook events",
	Long:  "Hook subcommands read the hook payload from stdin, log the event, and announce a summary. They always exit 0 so a failure never blocks Claude Code.",
}

var hookStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Handle Stop hook",
	Run: func(cmd *cobra.Command, args []string) {
		hooks.Handle(store.HookStop, os.Stdin, hooks.Options{Chat: hookChat})
	},
}

var hookNotificationCmd = &cobra.Command{
	Use:   "notification",
	Short: "Handle Notification hook",
	Run: func(cmd *cobra.Command, args []string) {
		hooks.Handle(store.HookNotification, os.Stdin, hooks.Options{Notify: hookNotify})
	},
}

var hookSubagentStopCmd = &cobra.Command{
	Use:   "subagent-stop",
	Short: "Handle SubagentStop hook",
	Run: func(cmd *cobra.Command, args []string) {
		hooks.Handle(store.HookSubagentStop, os.Stdin, hooks.Options{Chat: hookChat})
	},
}

func init() {
	hookStopCmd.Flags().BoolVar(&hookChat, "chat", false, "Export the session transcript to logs/chat.json")
	hookSubagentStopCmd.Flags().BoolVar(&hookChat, "chat", false, "Export the session transcript to logs/chat.json")
	hookNotificationCmd.Flags().BoolVar(&hookNotify, "notify", false, "Announce the notification with TTS")

	hookCmd.AddCommand(hookStopCmd)
	hookCmd.AddCommand(hookNotificationCmd)
	hookCmd.AddCommand(hookSubagentStopCmd)
}
