package config

import (
	"time"

	"github.com/sadopc/qconsole/internal/core/tlsconf"
)

// Config holds the application configuration.
type Config struct {
	BaseURL        string           `yaml:"base_url"`
	APIKey         string           `yaml:"api_key"`
	Connection     string           `yaml:"connection"`
	DefaultTimeout time.Duration    `yaml:"default_timeout"`
	Proxy          string           `yaml:"proxy"`
	NoProxy        string           `yaml:"no_proxy"`
	TLS            tlsconf.Settings `yaml:"tls"`
	LogLevel       string           `yaml:"log_level"`
	TimeFormat     string           `yaml:"time_format"`
	DateFormat     string           `yaml:"date_format"`
	History        HistoryConfig    `yaml:"history"`
}

// HistoryConfig selects where dispatched requests are recorded.
type HistoryConfig struct {
	Backend  string `yaml:"backend"`   // sqlite, file, memory
	Path     string `yaml:"path"`      // database file or directory; empty means the data dir
	IDScheme string `yaml:"id_scheme"` // timestamp, uuid
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "http://localhost:6333",
		DefaultTimeout: 30 * time.Second,
		LogLevel:       "info",
		TimeFormat:     "3:04:05 PM",
		DateFormat:     "1/2/2006",
		History: HistoryConfig{
			Backend:  "sqlite",
			IDScheme: "timestamp",
		},
	}
}
