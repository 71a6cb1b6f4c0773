// Package runner dispatches request snippets and records them in history.
package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sadopc/qconsole/internal/core/history"
	"github.com/sadopc/qconsole/internal/dsl"
	"github.com/sadopc/qconsole/internal/protocol"
)

// Config holds the connection and recording settings for an Executor.
type Config struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	ProxyURL string
	Headers  map[string]string
	Format   history.EntryFormat
}

// Executor parses, dispatches and records request snippets.
type Executor struct {
	cfg       Config
	transport protocol.Protocol
	store     history.Store
	now       func() time.Time
	lg        zerolog.Logger
}

// Option customizes an Executor.
type Option func(*Executor)

// WithClock replaces time.Now for history stamps.
func WithClock(now func() time.Time) Option {
	return func(e *Executor) { e.now = now }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(lg zerolog.Logger) Option {
	return func(e *Executor) { e.lg = lg }
}

// New creates an Executor. A nil store disables recording.
func New(cfg Config, transport protocol.Protocol, store history.Store, opts ...Option) *Executor {
	e := &Executor{
		cfg:       cfg,
		transport: transport,
		store:     store,
		now:       time.Now,
		lg:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one snippet. Rejected snippets return immediately without
// dispatch or recording. A completed round trip is recorded whatever its
// status code; transport failures are not.
func (e *Executor) Execute(ctx context.Context, text string) Result {
	req, d, err := e.Prepare(text)
	if !d.Usable() {
		return Result{Kind: ResultParseError, Descriptor: d}
	}
	if err != nil {
		return Result{Kind: ResultTransportError, Descriptor: d, Err: err}
	}

	e.lg.Debug().Str("method", req.Method).Str("url", req.URL).Msg("dispatching request")

	resp, err := e.transport.Execute(ctx, req)
	if err != nil {
		e.lg.Warn().Err(err).Str("method", req.Method).Str("url", req.URL).Msg("request failed")
		return Result{
			Kind:       ResultTransportError,
			Descriptor: d,
			Err:        err,
			Status:     upstreamStatus(err),
		}
	}

	result := Result{
		Kind:       ResultOK,
		Descriptor: d,
		Payload:    resp.Body,
		Status:     statusField(resp.Body),
		StatusCode: resp.StatusCode,
		Response:   resp,
	}

	if e.store != nil {
		// The response is already in hand; recording finishes even if ctx ends.
		entry, err := e.record(context.WithoutCancel(ctx), d)
		if err != nil {
			e.lg.Error().Err(err).Str("id", entry.ID).Msg("recording history failed")
			result.HistoryErr = err
		} else {
			result.Entry = &entry
		}
	}

	e.lg.Debug().
		Int("status", resp.StatusCode).
		Dur("duration", resp.Duration).
		Int64("size", resp.Size).
		Msg("request completed")

	return result
}

// record appends d to the history log. Stores that implement history.Appender
// append atomically; others get a read-append-write cycle, which can drop an
// entry when two executions interleave.
func (e *Executor) record(ctx context.Context, d dsl.Descriptor) (history.Entry, error) {
	entry := e.cfg.Format.NewEntry(d, e.now())

	if a, ok := e.store.(history.Appender); ok {
		return entry, a.Append(ctx, entry)
	}

	entries, err := e.store.Read(ctx)
	if err != nil {
		return entry, err
	}
	return entry, e.store.Write(ctx, append(entries, entry))
}

// Prepare parses text and builds the request Execute would send. The request
// is nil when the descriptor is not usable.
func (e *Executor) Prepare(text string) (*protocol.Request, dsl.Descriptor, error) {
	d := dsl.Parse(text)
	if !d.Usable() {
		return nil, d, d.Err()
	}
	req, err := e.buildRequest(d)
	return req, d, err
}

func (e *Executor) buildRequest(d dsl.Descriptor) (*protocol.Request, error) {
	body, err := d.BodyBytes()
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(e.cfg.Headers))
	for k, v := range e.cfg.Headers {
		headers[k] = v
	}

	return &protocol.Request{
		Method:   d.Method,
		URL:      ResolveURL(e.cfg.BaseURL, d.Endpoint),
		Headers:  headers,
		Body:     body,
		Auth:     protocol.APIKeyAuth(e.cfg.APIKey),
		Timeout:  e.cfg.Timeout,
		ProxyURL: e.cfg.ProxyURL,
	}, nil
}

// ResolveURL joins endpoint onto base unless endpoint is already absolute.
func ResolveURL(base, endpoint string) string {
	lower := strings.ToLower(endpoint)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return endpoint
	}
	if base == "" {
		return endpoint
	}
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), strings.TrimLeft(endpoint, "/"))
}
