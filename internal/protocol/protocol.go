// Package protocol defines the transport contract the runner dispatches through.
package protocol

import (
	"context"
	"net/http"
	"time"
)

// Protocol defines the interface a transport must implement.
type Protocol interface {
	Name() string
	Execute(ctx context.Context, req *Request) (*Response, error)
	Validate(req *Request) error
}

// Request is a fully resolved request ready to send.
type Request struct {
	Method   string
	URL      string
	Headers  map[string]string
	Body     []byte
	Auth     *AuthConfig
	Timeout  time.Duration
	ProxyURL string
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	Type   string // none, apikey, bearer
	Token  string
	APIKey string // header name, defaults to api-key
	Value  string
}

// DefaultAPIKeyHeader is the header vector database servers read the key from.
const DefaultAPIKeyHeader = "api-key"

// APIKeyAuth returns an apikey AuthConfig, or nil when key is empty.
func APIKeyAuth(key string) *AuthConfig {
	if key == "" {
		return nil
	}
	return &AuthConfig{Type: "apikey", APIKey: DefaultAPIKeyHeader, Value: key}
}

// Response is a settled response, whatever its status code.
type Response struct {
	StatusCode  int
	Status      string
	Headers     http.Header
	Body        []byte
	ContentType string
	Duration    time.Duration
	Size        int64
	Proto       string
	Timing      *TimingDetail
}

// TimingDetail breaks a round trip into phases.
type TimingDetail struct {
	DNSLookup    time.Duration
	TCPConnect   time.Duration
	TLSHandshake time.Duration
	TTFB         time.Duration
	Transfer     time.Duration
	Total        time.Duration
}

// PayloadError is a transport failure that still carries an upstream payload,
// for example a proxy that answered before the connection dropped.
type PayloadError struct {
	Err     error
	Payload []byte
}

func (e *PayloadError) Error() string { return e.Err.Error() }

func (e *PayloadError) Unwrap() error { return e.Err }
