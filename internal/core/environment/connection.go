// Package environment loads named database connections and resolves
// {{variable}} placeholders in request snippets.
package environment

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sadopc/qconsole/internal/core/tlsconf"
)

// ConnectionsFile holds every configured connection.
type ConnectionsFile struct {
	Connections []Connection `yaml:"connections"`
}

// Connection is one database endpoint the console can talk to.
type Connection struct {
	Name      string            `yaml:"name"`
	URL       string            `yaml:"url"`
	APIKey    string            `yaml:"api_key,omitempty"`
	Variables map[string]string `yaml:"variables,omitempty"`
	TLS       tlsconf.Settings  `yaml:"tls,omitempty"`
}

// LoadConnections reads a connections file. A missing file is an empty set.
func LoadConnections(path string) (*ConnectionsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ConnectionsFile{}, nil
		}
		return nil, fmt.Errorf("reading connections: %w", err)
	}
	var cf ConnectionsFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing connections: %w", err)
	}
	return &cf, nil
}

// Find returns the connection with the given name.
func (cf *ConnectionsFile) Find(name string) (Connection, bool) {
	for _, c := range cf.Connections {
		if c.Name == name {
			return c, true
		}
	}
	return Connection{}, false
}

// Names returns all connection names in file order.
func (cf *ConnectionsFile) Names() []string {
	names := make([]string, len(cf.Connections))
	for i, c := range cf.Connections {
		names[i] = c.Name
	}
	return names
}

// Key returns the plaintext API key, opening it with passphrase when it was
// stored sealed.
func (c Connection) Key(passphrase string) (string, error) {
	if !IsSealed(c.APIKey) {
		return c.APIKey, nil
	}
	if passphrase == "" {
		return "", fmt.Errorf("connection %q has a sealed api key but no passphrase is set", c.Name)
	}
	key, err := NewKeyring(passphrase).Open(c.APIKey)
	if err != nil {
		return "", fmt.Errorf("opening api key for %q: %w", c.Name, err)
	}
	return key, nil
}
