package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// CLIConfig holds the environment defaults of the terminal widget. Flags
// override every field.
type CLIConfig struct {
	TranslatorURL string        `env:"TRANSLATOR_URL" default:"http://localhost:9090"`
	SentimentURL  string        `env:"SENTIMENT_URL" default:"http://localhost:9090"`
	AnimationTick time.Duration `env:"ANIMATION_TICK" default:"20ms"`
	RemoteTimeout time.Duration `env:"REMOTE_TIMEOUT" default:"10s"`
	LogLevel      string        `env:"LOG_LEVEL" default:"warn"`
}

// LoadCLI reads an optional .env file, then the environment. Unlike Load it
// requires nothing, so the widget runs against a local collaborator as is.
func LoadCLI() (*CLIConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg CLIConfig
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return &cfg, nil
}
