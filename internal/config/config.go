package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	SaveBackend  string `env:"STEPQUEST_SAVE_BACKEND" envDefault:"file"`
	SaveDir      string `env:"STEPQUEST_SAVE_DIR" envDefault:".saves"`
	SQLitePath   string `env:"STEPQUEST_SQLITE_PATH" envDefault:".saves/stepquest.db"`
	SaveKey      string `env:"STEPQUEST_SAVE_KEY" envDefault:"player"`
	RulesPath    string `env:"STEPQUEST_RULES"`
	Seed         int64  `env:"STEPQUEST_SEED"`
	LogFile      string `env:"STEPQUEST_LOG_FILE" envDefault:"stepquest.log"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"STEPQUEST_GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
}

// LoadConfig reads .env (if present), then the environment, then flags.
func LoadConfig(flags *flag.FlagSet, args []string) (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	flags.StringVar(&cfg.SaveBackend, "backend", cfg.SaveBackend, "Save backend: file or sqlite")
	flags.StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "Directory for YAML saves")
	flags.StringVar(&cfg.SQLitePath, "sqlite", cfg.SQLitePath, "SQLite database path")
	flags.StringVar(&cfg.SaveKey, "slot", cfg.SaveKey, "Save slot name")
	flags.StringVar(&cfg.RulesPath, "rules", cfg.RulesPath, "Optional rules YAML overriding the built-in table")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 picks one)")
	flags.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Log file path")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks fields that have a fixed set of values.
func (c *Config) Validate() error {
	switch c.SaveBackend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown save backend %q (want %s or %s)", c.SaveBackend, BackendFile, BackendSQLite)
	}
	if c.SaveKey == "" {
		return fmt.Errorf("save slot name is required")
	}
	return nil
}

// NarrationEnabled reports whether a Gemini key is configured.
func (c *Config) NarrationEnabled() bool {
	return c.GeminiAPIKey != ""
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", path, err)
}
