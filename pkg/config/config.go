package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for glyte-engine.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, API keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8090"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Store configuration (SQLite by default, PostgreSQL for warehouse mode)
	Store StoreConfig `yaml:"store"`

	// AI provider configuration for relationship refinement and the analyst
	AI AIConfig `yaml:"ai"`
}

// StoreConfig selects and configures the storage backend.
type StoreConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver" env:"STORE_DRIVER" env-default:"sqlite"`

	// Path is the SQLite database file location.
	Path string `yaml:"path" env:"STORE_PATH" env-default:"data/glyte.db"`

	// DataDirsStr is a comma-separated list of directories CSV files may be
	// ingested from. Paths outside these directories are rejected.
	DataDirsStr string `yaml:"data_dirs" env:"STORE_DATA_DIRS" env-default:"data,/tmp"`

	// DataDirs is parsed from DataDirsStr (not from config file).
	DataDirs []string `yaml:"-"`

	// MigrationsPath is where the metadata schema migrations live.
	MigrationsPath string `yaml:"migrations_path" env:"STORE_MIGRATIONS_PATH" env-default:"migrations"`

	// Postgres holds connection settings for the postgres driver.
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User     string `yaml:"user" env:"PGUSER" env-default:"glyte"`
	Password string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database string `yaml:"database" env:"PGDATABASE" env-default:"glyte"`
	SSLMode  string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConns int32  `yaml:"max_conns" env:"PGMAX_CONNS" env-default:"10"`
}

// AIConfig holds LLM provider settings. Provider may be empty, in which case
// LLM-backed features degrade to their heuristic results.
type AIConfig struct {
	// Provider is "openai", "anthropic", or empty (disabled).
	Provider string `yaml:"provider" env:"AI_PROVIDER" env-default:""`

	// Endpoint is the base URL for OpenAI-compatible providers.
	Endpoint string `yaml:"endpoint" env:"AI_ENDPOINT" env-default:"https://api.openai.com/v1"`

	// Model is the model name, e.g. "gpt-4o" or "claude-sonnet-4-20250514".
	Model string `yaml:"model" env:"AI_MODEL" env-default:""`

	// APIKey is the provider API key. Secret - env only.
	APIKey string `yaml:"-" env:"AI_API_KEY"`

	// MaxTokens bounds response length for refinement calls.
	MaxTokens int `yaml:"max_tokens" env:"AI_MAX_TOKENS" env-default:"1024"`
}

// Enabled reports whether an AI provider is configured.
func (a AIConfig) Enabled() bool {
	return a.Provider != "" && a.Model != ""
}

// Load reads configuration from config.yaml (if present) and the environment.
func Load(version string) (*Config, error) {
	cfg := &Config{Version: version}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
	}

	cfg.Store.DataDirs = parseDataDirs(cfg.Store.DataDirsStr)

	if cfg.Store.Driver != "sqlite" && cfg.Store.Driver != "postgres" {
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	return cfg, nil
}

func parseDataDirs(s string) []string {
	var dirs []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			dirs = append(dirs, part)
		}
	}
	return dirs
}
