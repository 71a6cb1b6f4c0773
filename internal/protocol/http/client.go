package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/proxy"

	"github.com/sadopc/qconsole/internal/protocol"
)

const defaultTimeout = 30 * time.Second

// ProxyConfig holds proxy settings.
type ProxyConfig struct {
	URL     string // http://, https://, or socks5:// proxy URL
	NoProxy string // comma-separated list of hosts to bypass proxy
}

// Client implements the HTTP protocol.
type Client struct {
	httpClient *http.Client
	proxyConf  *ProxyConfig
	tlsConf    *tls.Config
}

// New creates a new HTTP client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
	}
}

// SetTimeout sets the default client timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// SetProxy configures proxy settings for the client.
func (c *Client) SetProxy(proxyURL, noProxy string) {
	if proxyURL == "" {
		c.proxyConf = nil
		return
	}
	c.proxyConf = &ProxyConfig{URL: proxyURL, NoProxy: noProxy}
}

// SetTLS sets the TLS config used for https URLs. Nil restores the defaults.
func (c *Client) SetTLS(cfg *tls.Config) {
	c.tlsConf = cfg
}

func (c *Client) Name() string { return "http" }

func (c *Client) Validate(req *protocol.Request) error {
	if req.URL == "" {
		return fmt.Errorf("URL is required")
	}
	if req.Method == "" {
		return fmt.Errorf("method is required")
	}
	u, err := url.Parse(req.URL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme %q", u.Scheme)
	}
	return nil
}

// Execute sends the request. Every response the server returns is settled,
// including 4xx and 5xx; only failing to obtain one is an error.
func (c *Client) Execute(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	if err := c.Validate(req); err != nil {
		return nil, err
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	if len(req.Body) > 0 {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	applyAuth(httpReq, req.Auth)

	timeout := req.Timeout
	if timeout == 0 {
		timeout = c.httpClient.Timeout
	}

	transport, err := c.buildTransport(req.ProxyURL)
	if err != nil {
		return nil, fmt.Errorf("configuring transport: %w", err)
	}

	client := &http.Client{
		Timeout:       timeout,
		CheckRedirect: c.httpClient.CheckRedirect,
		Transport:     transport,
	}

	var dnsStart, connStart, tlsStart, gotConn, gotFirstByte time.Time
	var dnsDuration, connDuration, tlsDuration time.Duration

	trace := &httptrace.ClientTrace{
		DNSStart:             func(_ httptrace.DNSStartInfo) { dnsStart = time.Now() },
		DNSDone:              func(_ httptrace.DNSDoneInfo) { dnsDuration = time.Since(dnsStart) },
		ConnectStart:         func(_, _ string) { connStart = time.Now() },
		ConnectDone:          func(_, _ string, _ error) { connDuration = time.Since(connStart) },
		TLSHandshakeStart:    func() { tlsStart = time.Now() },
		TLSHandshakeDone:     func(_ tls.ConnectionState, _ error) { tlsDuration = time.Since(tlsStart) },
		GotConn:              func(_ httptrace.GotConnInfo) { gotConn = time.Now() },
		GotFirstResponseByte: func() { gotFirstByte = time.Now() },
	}
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(httpReq.Context(), trace))

	start := time.Now()
	resp, err := client.Do(httpReq)
	duration := time.Since(start)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	transferStart := time.Now()
	respBody, err := io.ReadAll(resp.Body)
	transferDuration := time.Since(transferStart)
	if err != nil {
		return nil, &protocol.PayloadError{
			Err:     fmt.Errorf("reading response: %w", err),
			Payload: respBody,
		}
	}

	var ttfb time.Duration
	if !gotConn.IsZero() && !gotFirstByte.IsZero() {
		ttfb = gotFirstByte.Sub(gotConn)
	}

	return &protocol.Response{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		Headers:     resp.Header,
		Body:        respBody,
		ContentType: resp.Header.Get("Content-Type"),
		Duration:    duration,
		Size:        int64(len(respBody)),
		Proto:       resp.Proto,
		Timing: &protocol.TimingDetail{
			DNSLookup:    dnsDuration,
			TCPConnect:   connDuration,
			TLSHandshake: tlsDuration,
			TTFB:         ttfb,
			Transfer:     transferDuration,
			Total:        duration,
		},
	}, nil
}

// StreamingClient returns an *http.Client sharing this client's proxy and TLS
// settings, with no overall timeout, for callers that stream large bodies.
func (c *Client) StreamingClient() (*http.Client, error) {
	transport, err := c.buildTransport("")
	if err != nil {
		return nil, fmt.Errorf("configuring transport: %w", err)
	}
	return &http.Client{
		CheckRedirect: c.httpClient.CheckRedirect,
		Transport:     transport,
	}, nil
}

// buildTransport creates an http.Transport configured with proxy settings.
// perRequestProxy overrides the client-level proxy config if non-empty.
func (c *Client) buildTransport(perRequestProxy string) (http.RoundTripper, error) {
	transport := &http.Transport{
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig:     c.tlsConf,
	}

	proxyURL := perRequestProxy
	noProxy := ""
	if proxyURL == "" && c.proxyConf != nil {
		proxyURL = c.proxyConf.URL
		noProxy = c.proxyConf.NoProxy
	}

	if proxyURL != "" {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return nil, fmt.Errorf("parsing proxy URL: %w", err)
		}

		switch parsed.Scheme {
		case "socks5", "socks5h":
			var auth *proxy.Auth
			if parsed.User != nil {
				password, _ := parsed.User.Password()
				auth = &proxy.Auth{
					User:     parsed.User.Username(),
					Password: password,
				}
			}
			dialer, err := proxy.SOCKS5("tcp", parsed.Host, auth, proxy.Direct)
			if err != nil {
				return nil, fmt.Errorf("creating SOCKS5 dialer: %w", err)
			}
			transport.DialContext = func(ctx context.Context, network, addr string) (net.Conn, error) {
				return dialer.Dial(network, addr)
			}
		case "http", "https":
			if noProxy != "" {
				noProxyHosts := parseNoProxy(noProxy)
				transport.Proxy = func(r *http.Request) (*url.URL, error) {
					if shouldBypassProxy(r.URL.Hostname(), noProxyHosts) {
						return nil, nil
					}
					return parsed, nil
				}
			} else {
				transport.Proxy = http.ProxyURL(parsed)
			}
		default:
			return nil, fmt.Errorf("unsupported proxy scheme: %s", parsed.Scheme)
		}
	}

	return transport, nil
}

// parseNoProxy splits a comma-separated no-proxy string into trimmed host entries.
func parseNoProxy(noProxy string) []string {
	parts := strings.Split(noProxy, ",")
	hosts := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			hosts = append(hosts, strings.ToLower(p))
		}
	}
	return hosts
}

// shouldBypassProxy checks whether a host should bypass the proxy.
func shouldBypassProxy(host string, noProxyHosts []string) bool {
	host = strings.ToLower(host)
	for _, h := range noProxyHosts {
		if h == host {
			return true
		}
		// .example.com matches any subdomain
		if strings.HasPrefix(h, ".") && strings.HasSuffix(host, h) {
			return true
		}
	}
	return false
}

func applyAuth(req *http.Request, auth *protocol.AuthConfig) {
	if auth == nil || auth.Type == "none" {
		return
	}
	switch auth.Type {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+auth.Token)
	case "apikey":
		header := auth.APIKey
		if header == "" {
			header = protocol.DefaultAPIKeyHeader
		}
		req.Header.Set(header, auth.Value)
	}
}
