package tts

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
)

// linuxPlayers are probed in order of preference.
var linuxPlayers = []string{"aplay", "play", "mpg123", "ffplay"}

// Play plays an audio file with the native player for the current platform.
func Play(ctx context.Context, path string) error {
	cmd, err := playerCommand(ctx, runtime.GOOS, path)
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("play audio: %w (stderr: %s)", err, stderr.String())
	}
	return nil
}

// playerCommand picks the audio player for the given OS. On linux the
// first player found on PATH wins.
func playerCommand(ctx context.Context, goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.CommandContext(ctx, "afplay", path), nil
	case "linux":
		for _, player := range linuxPlayers {
			if _, err := exec.LookPath(player); err == nil {
				return exec.CommandContext(ctx, player, path), nil
			}
		}
		return nil, fmt.Errorf("no audio player found (tried %v)", linuxPlayers)
	case "windows":
		script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", path)
		return exec.CommandContext(ctx, "powershell", "-c", script), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
