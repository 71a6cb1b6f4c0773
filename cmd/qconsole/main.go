package main

import (
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/sadopc/qconsole/internal/config"
	"github.com/sadopc/qconsole/internal/core/environment"
	"github.com/sadopc/qconsole/internal/core/history"
	"github.com/sadopc/qconsole/internal/logging"
	"github.com/sadopc/qconsole/pkg/version"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runCmd())
	case "parse":
		parseCmd()
	case "history":
		os.Exit(historyCmd())
	case "snapshot":
		os.Exit(snapshotCmd())
	case "templates":
		templatesCmd()
	case "completion":
		completionCmd()
	case "version", "--version":
		fmt.Printf("qconsole %s (%s) built %s\n", version.Version, version.Commit, version.Date)
	case "help", "-h", "--help":
		printHelp()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", os.Args[1])
		printHelp()
		os.Exit(2)
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `qconsole - A request console for vector database REST APIs

Usage:
  qconsole <command> [args] [flags]

Commands:
  run         Parse and send a request snippet, then record it in history
  parse       Parse a request snippet and print the descriptor
  history     List, search, clear or export the request history
  snapshot    Download a collection snapshot
  templates   List built-in snippets or print one
  completion  Generate shell completion scripts (bash, zsh, fish)
  version     Print version information
  help        Show this help message

A snippet is a header line followed by an optional JSON body:

  PUT /collections/demo
  {"vectors": {"size": 4, "distance": "Dot"}}

Snippets may reference {{name}} variables from the active connection:

  qconsole templates show search | qconsole run --env staging

Run 'qconsole <command> --help' for more information about a command.
`)
}

// session bundles what every subcommand that talks to a server needs.
type session struct {
	cfg  config.Config
	log  zerolog.Logger
	conn environment.Connection
}

// loadSession loads config and applies the named connection, falling back to
// the configured default connection. An empty name with no default uses the
// base URL and key from config.
func loadSession(connName string) (*session, error) {
	cfg := config.Load()
	s := &session{
		cfg: cfg,
		log: logging.New(os.Stderr, cfg.LogLevel),
		conn: environment.Connection{
			Name:   "default",
			URL:    cfg.BaseURL,
			APIKey: cfg.APIKey,
			TLS:    cfg.TLS,
		},
	}

	if connName == "" {
		connName = cfg.Connection
	}
	if connName == "" {
		return s, nil
	}

	cf, err := environment.LoadConnections(filepath.Join(config.Dir(), "connections.yaml"))
	if err != nil {
		return nil, err
	}
	conn, ok := cf.Find(connName)
	if !ok {
		return nil, fmt.Errorf("connection %q not found (available: %v)", connName, cf.Names())
	}
	key, err := conn.Key(os.Getenv(environment.PassphraseEnv))
	if err != nil {
		return nil, err
	}
	conn.APIKey = key
	if conn.URL == "" {
		conn.URL = cfg.BaseURL
	}
	if conn.TLS.IsZero() {
		conn.TLS = cfg.TLS
	}
	s.conn = conn
	s.log.Debug().Str("connection", conn.Name).Str("url", conn.URL).Msg("using connection")
	return s, nil
}

// tlsConfig loads the connection's TLS settings, nil when none are set.
func (s *session) tlsConfig() (*tls.Config, error) {
	cfg, err := s.conn.TLS.Load()
	if err != nil {
		return nil, fmt.Errorf("connection %q: %w", s.conn.Name, err)
	}
	return cfg, nil
}

func (s *session) openHistory() (history.Store, error) {
	return history.Open(s.cfg.History, config.DataDir())
}

func (s *session) entryFormat() history.EntryFormat {
	return history.EntryFormat{
		IDScheme:   history.IDScheme(s.cfg.History.IDScheme),
		TimeLayout: s.cfg.TimeFormat,
		DateLayout: s.cfg.DateFormat,
	}
}
