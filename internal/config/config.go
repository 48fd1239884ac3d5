package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means the XDG default.
	DBPath string

	// CatalogPath is an optional YAML or JSON catalog replacing the
	// built-in assessments.
	CatalogPath string

	LogLevel  string `validate:"oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string `validate:"oneof=json pretty"`
	// LogFile receives TUI logs. Empty means the data directory.
	LogFile string

	MaxUploadBytes int64         `validate:"gt=0"`
	UploadTick     time.Duration `validate:"gt=0"`
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...) // .env is optional

	cfg := &Config{
		DBPath:         getEnv("STUDYHUB_DB", ""),
		CatalogPath:    getEnv("STUDYHUB_CATALOG", ""),
		LogLevel:       strings.ToLower(getEnv("STUDYHUB_LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("STUDYHUB_LOG_FORMAT", "json")),
		LogFile:        getEnv("STUDYHUB_LOG_FILE", ""),
		MaxUploadBytes: int64(getEnvInt("STUDYHUB_MAX_UPLOAD_MB", 10)) * 1024 * 1024,
		UploadTick:     time.Duration(getEnvInt("STUDYHUB_UPLOAD_TICK_MS", 200)) * time.Millisecond,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s=%v fails %q", fe.Field(), fe.Value(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
