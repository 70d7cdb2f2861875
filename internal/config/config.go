package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
)

type Config struct {
	Addr               string        `env:"ADDR" envDefault:":5000"`
	Store              string        `env:"STORE" envDefault:"sqlite"`
	DBPath             string        `env:"DB_PATH" envDefault:"file:mathverse.db"`
	DataFile           string        `env:"DATA_FILE" envDefault:"data/progress.json"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"INFO"`
	JWTSecret          string        `env:"JWT_SECRET"`
	TokenTTL           time.Duration `env:"TOKEN_TTL" envDefault:"168h"`
	HistoryWorkerCount int           `env:"HISTORY_WORKER_COUNT" envDefault:"1"`
	HistoryQueueSize   int           `env:"HISTORY_QUEUE_SIZE" envDefault:"64"`
	CORSOrigin         string        `env:"CORS_ORIGIN" envDefault:"*"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	return cfg, nil
}

// AuthEnabled reports whether progress endpoints require a bearer token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	var problems []string
	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	switch c.Store {
	case StoreSQLite:
		if c.DBPath == "" {
			problems = append(problems, "DB_PATH cannot be empty")
		}
	case StoreFile:
		if c.DataFile == "" {
			problems = append(problems, "DATA_FILE cannot be empty")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE must be %q or %q, got %q", StoreSQLite, StoreFile, c.Store))
	}
	if c.AuthEnabled() && len(c.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be at least 16 characters")
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}
	if c.HistoryWorkerCount < 1 {
		problems = append(problems, "HISTORY_WORKER_COUNT must be at least 1")
	}
	if c.HistoryQueueSize < 1 {
		problems = append(problems, "HISTORY_QUEUE_SIZE must be at least 1")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
