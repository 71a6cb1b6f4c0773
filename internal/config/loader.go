package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvURL            = "QCONSOLE_URL"
	EnvAPIKey         = "QCONSOLE_API_KEY"
	EnvConnection     = "QCONSOLE_CONNECTION"
	EnvTimeout        = "QCONSOLE_TIMEOUT"
	EnvHistoryBackend = "QCONSOLE_HISTORY_BACKEND"
	EnvHistoryPath    = "QCONSOLE_HISTORY_PATH"
	EnvLogLevel       = "QCONSOLE_LOG_LEVEL"
)

// Dir returns the configuration directory (~/.config/qconsole).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "qconsole")
}

// DataDir returns the directory holding history data (~/.local/share/qconsole).
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "qconsole")
}

// Load loads configuration from ~/.config/qconsole/config.yaml, then applies
// a .env file from the working directory and QCONSOLE_* variables.
func Load() Config {
	cfg := DefaultConfig()

	if dir := Dir(); dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, "config.yaml")); err == nil {
			cfg = merge(cfg, data)
		}
	}

	// A missing .env is the normal case.
	_ = godotenv.Load()
	applyEnv(&cfg)
	return cfg
}

// merge decodes data over base so absent keys keep their default.
func merge(base Config, data []byte) Config {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv(EnvConnection); v != "" {
		cfg.Connection = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.DefaultTimeout = d
		}
	}
	if v := os.Getenv(EnvHistoryBackend); v != "" {
		cfg.History.Backend = v
	}
	if v := os.Getenv(EnvHistoryPath); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
}
