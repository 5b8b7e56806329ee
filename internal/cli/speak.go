package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/calref/herald/internal/config"
	"github.com/calref/herald/internal/tts"
)

const defaultSpeakText = "Today is a wonderful day to build something people love!"

var speakSaveOnly bool

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Speak text aloud with OpenAI TTS",
	Long:  "Synthesize the given text (or a default greeting) and play it. With --save-only the MP3 is written to logs/ without playback.",
	RunE:  runSpeak,
}

func init() {
	speakCmd.Flags().BoolVar(&speakSaveOnly, "save-only", false, "Save the MP3 to logs/ instead of playing it")
}

func runSpeak(cmd *cobra.Command, args []string) error {
	text := defaultSpeakText
	if len(args) > 0 {
		text = strings.Join(args, " ")
	}

	cfg := config.Load()
	speaker, err := tts.New(cfg.OpenAIKey, tts.WithTimeout(30*time.Second))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if speakSaveOnly {
		path, err := speaker.Save(ctx, text, filepath.Join("logs", "tts_audio"))
		if err != nil {
			return fmt.Errorf("save speech: %w", err)
		}
		fmt.Println(path)
		return nil
	}

	if err := speaker.Say(ctx, text); err != nil {
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}
