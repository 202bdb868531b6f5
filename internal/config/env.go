package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ServerEnv holds process settings read from the environment.
type ServerEnv struct {
	HTTPAddr      string        `env:"KESSAN_HTTP_ADDR" envDefault:":8080"`
	GRPCAddr      string        `env:"KESSAN_GRPC_ADDR" envDefault:":9090"`
	ConfigDir     string        `env:"KESSAN_CONFIG_DIR" envDefault:"config"`
	Board         string        `env:"KESSAN_BOARD"`
	WatchInterval time.Duration `env:"KESSAN_WATCH_INTERVAL" envDefault:"2s"`
	MaxSessions   int           `env:"KESSAN_MAX_SESSIONS" envDefault:"256"`
}

// LoadDotEnv loads a .env file if present; variables already set win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
