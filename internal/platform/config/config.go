package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" default:"development"`
	Port     string `env:"PORT" default:"8080"`
	AppURL   string `env:"APP_URL" default:"http://localhost:8080"`
	RedisURL string `env:"REDIS_URL"`

	TranslatorURL   string `env:"TRANSLATOR_URL"`
	SentimentURL    string `env:"SENTIMENT_URL"`
	SourceLanguages string `env:"SOURCE_LANGUAGES" default:"en,es,fr,de,it,pt,ja,zh"`

	RemoteTimeout         time.Duration `env:"REMOTE_TIMEOUT" default:"10s"`
	CircuitBreakerEnabled bool          `env:"CIRCUIT_BREAKER_ENABLED" default:"true"`

	AnimationTick  time.Duration `env:"ANIMATION_TICK" default:"20ms"`
	SurfaceIdleTTL time.Duration `env:"SURFACE_IDLE_TTL" default:"30m"`
	MaxSurfaces    int           `env:"MAX_SURFACES" default:"10000"`

	AnalyzeRatePerSecond float64 `env:"ANALYZE_RATE_PER_SECOND" default:"5"`
	AnalyzeBurst         int     `env:"ANALYZE_BURST" default:"10"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Languages returns the source-language selector values in configured order.
func (c *Config) Languages() []string {
	return SplitLanguages(c.SourceLanguages)
}

// IsDevelopment reports whether localhost origins should be accepted.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// SplitLanguages parses a comma-separated language list, dropping blanks and duplicates.
func SplitLanguages(raw string) []string {
	seen := make(map[string]struct{})
	var langs []string
	for _, part := range strings.Split(raw, ",") {
		lang := strings.TrimSpace(part)
		if lang == "" {
			continue
		}
		if _, dup := seen[lang]; dup {
			continue
		}
		seen[lang] = struct{}{}
		langs = append(langs, lang)
	}
	return langs
}

func validate(cfg *Config) error {
	collaborators := []struct{ name, value string }{
		{"TRANSLATOR_URL", cfg.TranslatorURL},
		{"SENTIMENT_URL", cfg.SentimentURL},
	}
	for _, c := range collaborators {
		if c.value == "" {
			return fmt.Errorf("%s is required", c.name)
		}
		if err := validateBaseURL(c.value); err != nil {
			return fmt.Errorf("%s %w", c.name, err)
		}
	}

	if len(cfg.Languages()) == 0 {
		return errors.New("SOURCE_LANGUAGES must list at least one language")
	}
	if cfg.RemoteTimeout <= 0 {
		return errors.New("REMOTE_TIMEOUT must be positive")
	}
	if cfg.AnimationTick <= 0 {
		return errors.New("ANIMATION_TICK must be positive")
	}
	if cfg.SurfaceIdleTTL <= 0 {
		return errors.New("SURFACE_IDLE_TTL must be positive")
	}
	if cfg.MaxSurfaces < 1 {
		return errors.New("MAX_SURFACES must be at least 1")
	}
	if cfg.AnalyzeRatePerSecond <= 0 || cfg.AnalyzeBurst < 1 {
		return errors.New("ANALYZE_RATE_PER_SECOND and ANALYZE_BURST must be positive")
	}

	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http(s) URL")
	}
	return nil
}
