// Package tlsconf turns connection TLS settings into a *tls.Config.
package tlsconf

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
)

// Settings describes how to trust a server and, optionally, authenticate to it.
type Settings struct {
	CAFile     string `yaml:"ca_file,omitempty"`
	CertFile   string `yaml:"cert_file,omitempty"`
	KeyFile    string `yaml:"key_file,omitempty"`
	ServerName string `yaml:"server_name,omitempty"`
	Insecure   bool   `yaml:"insecure,omitempty"`
}

// IsZero reports whether no TLS setting is present.
func (s Settings) IsZero() bool {
	return s == Settings{}
}

// Load builds a client TLS config. Zero settings yield nil so the transport
// keeps Go's defaults.
func (s Settings) Load() (*tls.Config, error) {
	if s.IsZero() {
		return nil, nil
	}

	cfg := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		ServerName:         s.ServerName,
		InsecureSkipVerify: s.Insecure,
	}

	if (s.CertFile == "") != (s.KeyFile == "") {
		return nil, fmt.Errorf("cert_file and key_file must be set together")
	}
	if s.CertFile != "" {
		pair, err := tls.LoadX509KeyPair(s.CertFile, s.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	}

	if s.CAFile != "" {
		pem, err := os.ReadFile(s.CAFile)
		if err != nil {
			return nil, fmt.Errorf("reading CA file: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", s.CAFile)
		}
		cfg.RootCAs = pool
	}

	return cfg, nil
}
