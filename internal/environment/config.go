package environment

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// EnvConfig holds replay tool defaults read from the environment. Flags
// override these.
type EnvConfig struct {
	LogLevel slog.Level
	NoColor  bool
}

// ReadEnvConfig loads an optional .env file and reads the REPLAY_* and
// NO_COLOR variables.
func ReadEnvConfig() *EnvConfig {
	_ = godotenv.Load() // .env is optional for the replay tool

	result := &EnvConfig{LogLevel: slog.LevelInfo}

	switch strings.ToLower(os.Getenv("REPLAY_LOG_LEVEL")) {
	case "debug":
		result.LogLevel = slog.LevelDebug
	case "warn":
		result.LogLevel = slog.LevelWarn
	case "error":
		result.LogLevel = slog.LevelError
	}

	if os.Getenv("NO_COLOR") != "" {
		result.NoColor = true
	}

	return result
}
