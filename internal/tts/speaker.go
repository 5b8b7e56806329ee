// Package tts converts text to speech through the OpenAI audio API and
// plays it with whatever audio player the host OS provides. Generating the
// file first and handing it to a native player avoids the streaming-playback
// noise problems that plagued earlier approaches.
package tts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultModel        = openai.SpeechModelGPT4oMiniTTS
	defaultVoice        = openai.AudioSpeechNewParamsVoiceAsh
	defaultInstructions = "Speak in a cheerful, positive yet professional tone."

	// defaultTimeout bounds synthesis plus playback on the hook path.
	defaultTimeout = 10 * time.Second
)

// ErrNoAPIKey is returned when OPENAI_API_KEY is not configured.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY not set")

// Speaker synthesizes and plays speech.
type Speaker struct {
	client       openai.Client
	model        openai.SpeechModel
	voice        openai.AudioSpeechNewParamsVoice
	instructions string
	timeout      time.Duration
	requestOpts  []option.RequestOption
}

// Option configures a Speaker.
type Option func(*Speaker)

// WithBaseURL points the client at a different API endpoint (tests).
func WithBaseURL(url string) Option {
	return func(s *Speaker) {
		s.requestOpts = append(s.requestOpts, option.WithBaseURL(url))
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Speaker) {
		s.requestOpts = append(s.requestOpts, option.WithHTTPClient(client))
	}
}

// WithTimeout overrides the synthesis+playback budget.
func WithTimeout(d time.Duration) Option {
	return func(s *Speaker) {
		s.timeout = d
	}
}

// New creates a Speaker. An empty API key is ErrNoAPIKey so hook callers
// can skip playback silently.
func New(apiKey string, opts ...Option) (*Speaker, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	s := &Speaker{
		model:        defaultModel,
		voice:        defaultVoice,
		instructions: defaultInstructions,
		timeout:      defaultTimeout,
		requestOpts:  []option.RequestOption{option.WithAPIKey(apiKey)},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.client = openai.NewClient(s.requestOpts...)
	return s, nil
}

// Synthesize generates MP3 audio for the given text.
func (s *Speaker) Synthesize(ctx context.Context, text string) ([]byte, error) {
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          s.model,
		Voice:          s.voice,
		Input:          text,
		Instructions:   openai.String(s.instructions),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, fmt.Errorf("synthesize speech: %w", err)
	}
	defer resp.Body.Close()

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}

// Say synthesizes text and plays it through the platform audio player.
// The whole operation is bounded by the Speaker's timeout.
func (s *Speaker) Say(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	audio, err := s.Synthesize(ctx, text)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp("", "herald-*.mp3")
	if err != nil {
		return fmt.Errorf("create temp audio file: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.Write(audio); err != nil {
		tmp.Close()
		return fmt.Errorf("write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close audio file: %w", err)
	}

	return Play(ctx, path)
}

// Save synthesizes text and writes a timestamped MP3 under dir,
// returning the file path. Used by `herald speak --save-only`.
func (s *Speaker) Save(ctx context.Context, text, dir string) (string, error) {
	audio, err := s.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("tts_%s.mp3", time.Now().Format("20060102_150405")))
	if err := os.WriteFile(path, audio, 0644); err != nil {
		return "", fmt.Errorf("save audio: %w", err)
	}
	return path, nil
}
