package hooks

// HookInput represents the JSON that Claude Code sends on stdin to hook
// handlers. All fields are optional; different events populate different
// subsets.
type HookInput struct {
	SessionID      string `json:"session_id"`
	TranscriptPath string `json:"transcript_path"`
	CWD            string `json:"cwd"`
	HookEventName  string `json:"hook_event_name"`

	// Notification
	Message string `json:"message,omitempty"`

	// Stop / SubagentStop
	StopHookActive bool `json:"stop_hook_active,omitempty"`
}

// waitingMessage is the boilerplate notification that fires constantly.
// Speaking it every time would be maddening, so it is never announced.
const waitingMessage = "Claude is waiting for your input"
