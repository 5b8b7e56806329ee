package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables herald reads. Values already present in the process
// environment always win over .env file entries.
const (
	EnvSummaryEnabled = "CLAUDE_HOOKS_SUMMARY_ENABLED"
	EnvVerbosity      = "CLAUDE_HOOKS_SUMMARY_VERBOSITY"
	EnvEngineerName   = "ENGINEER_NAME"
	EnvOpenAIKey      = "OPENAI_API_KEY"
	EnvDBPath         = "HERALD_DB"
)

// Verbosity levels for generated summaries.
const (
	VerbosityBrief    = "brief"
	VerbosityDetailed = "detailed"
)

// Config holds all herald configuration. Read once per invocation,
// never mutated afterwards.
type Config struct {
	// SummaryEnabled gates intelligent summary generation. When false,
	// every hook falls back to its generic message pool.
	SummaryEnabled bool

	// Verbosity is "brief" or "detailed".
	Verbosity string

	// EngineerName, when set, is prepended to spoken messages with a
	// 30% probability.
	EngineerName string

	// OpenAIKey is required for TTS playback only. Its absence is a
	// silent no-announce, never an error on the hook path.
	OpenAIKey string

	// DBPath overrides the event log database location.
	DBPath string
}

// Default returns a Config with herald's defaults: summaries on, brief.
func Default() Config {
	return Config{
		SummaryEnabled: true,
		Verbosity:      VerbosityBrief,
	}
}

// Load reads .env files (project-local, then home directory) and the
// process environment. It never fails: unset or malformed values fall
// back to defaults.
func Load() Config {
	loadDotenv()

	cfg := Default()

	if v, ok := os.LookupEnv(EnvSummaryEnabled); ok {
		// Anything other than "true" disables summaries.
		cfg.SummaryEnabled = strings.EqualFold(strings.TrimSpace(v), "true")
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv(EnvVerbosity))); v == VerbosityDetailed {
		cfg.Verbosity = VerbosityDetailed
	}
	cfg.EngineerName = strings.TrimSpace(os.Getenv(EnvEngineerName))
	cfg.OpenAIKey = os.Getenv(EnvOpenAIKey)
	cfg.DBPath = os.Getenv(EnvDBPath)

	return cfg
}

// loadDotenv loads the project-local .env, then ~/.env. godotenv never
// overrides variables already set, so precedence is env > ./.env > ~/.env.
func loadDotenv() {
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	_ = godotenv.Load(filepath.Join(home, ".env"))
}
