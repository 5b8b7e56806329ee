package hooks

import (
	"context"
	"errors"

	"github.com/calref/herald/internal/config"
	"github.com/calref/herald/internal/tts"
)

// Announce speaks the message. Everything that can go wrong here (missing
// API key, network trouble, no audio player) fails silently: audio is a
// nicety, and the hook already logged the message.
func Announce(cfg config.Config, message string) {
	if message == "" {
		return
	}

	speaker, err := tts.New(cfg.OpenAIKey)
	if err != nil {
		if !errors.Is(err, tts.ErrNoAPIKey) {
			Note(err)
		}
		return
	}

	// Playback failures never surface.
	_ = speaker.Say(context.Background(), message)
}
