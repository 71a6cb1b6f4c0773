package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/tidwall/pretty"

	"github.com/sadopc/qconsole/internal/core/history"
)

// PrintOptions controls text rendering.
type PrintOptions struct {
	Color   bool
	Verbose bool
}

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6e3a1")).Bold(true)
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f38ba8")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6c7086"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9e2af"))
)

// PrintText writes a human-readable rendering of r.
func PrintText(w io.Writer, r Result, opts PrintOptions) {
	paint := func(s lipgloss.Style, text string) string {
		if !opts.Color {
			return text
		}
		return s.Render(text)
	}

	switch r.Kind {
	case ResultParseError:
		fmt.Fprintf(w, "%s %s\n", paint(errStyle, "✗"), r.Descriptor.Kind.Message())
		fmt.Fprintln(w, renderJSON(mustJSON(r.Descriptor), opts.Color))
		return

	case ResultTransportError:
		fmt.Fprintf(w, "%s %s %s\n", paint(errStyle, "✗"), r.Descriptor.Method, r.Descriptor.Endpoint)
		if len(r.Status) > 0 {
			fmt.Fprintf(w, "  └ status: %s\n", string(r.Status))
		}
		fmt.Fprintf(w, "  └ Error: %s\n", r.Err)
		return
	}

	icon := paint(okStyle, "✓")
	if r.StatusCode >= 400 || (len(r.Status) > 0 && !r.StatusOK()) {
		icon = paint(errStyle, "✗")
	}

	var duration time.Duration
	var size int64
	if r.Response != nil {
		duration = r.Response.Duration
		size = r.Response.Size
	}

	fmt.Fprintf(w, "%s %-6s %-40s  %s  %s  %s\n",
		icon, r.Descriptor.Method, truncate(r.Descriptor.Endpoint, 40),
		statusLine(r.StatusCode), paint(dimStyle, formatDuration(duration)),
		paint(dimStyle, formatSize(size)))

	if opts.Verbose && r.Response != nil && r.Response.Timing != nil {
		t := r.Response.Timing
		fmt.Fprintf(w, "  dns %s  connect %s  tls %s  ttfb %s  transfer %s\n",
			formatDuration(t.DNSLookup), formatDuration(t.TCPConnect),
			formatDuration(t.TLSHandshake), formatDuration(t.TTFB),
			formatDuration(t.Transfer))
	}

	if len(r.Payload) > 0 {
		fmt.Fprintln(w, renderJSON(r.Payload, opts.Color))
	}

	if r.HistoryErr != nil {
		fmt.Fprintf(w, "%s history not updated: %s\n", paint(warnStyle, "!"), r.HistoryErr)
	}
}

// PrintJSON writes the value of r as indented JSON.
func PrintJSON(w io.Writer, r Result) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}

// PrintHistory writes entries in the given order, one per line.
func PrintHistory(w io.Writer, entries []history.Entry, color bool) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return
	}
	for _, e := range entries {
		when := e.ExecutedAtDate + " " + e.ExecutedAtTime
		if !e.ExecutedAt.IsZero() {
			when = humanize.Time(e.ExecutedAt)
		}
		if color {
			when = dimStyle.Render(when)
		}
		fmt.Fprintf(w, "%-6s %-40s  %s\n", e.Descriptor.Method, truncate(e.Descriptor.Endpoint, 40), when)
	}
}

func renderJSON(data []byte, color bool) string {
	if !json.Valid(data) {
		return string(data)
	}
	out := strings.TrimRight(string(pretty.Pretty(data)), "\n")
	if !color {
		return out
	}
	return highlight(out, "json")
}

// highlight applies chroma syntax highlighting to source.
func highlight(source, lexerName string) string {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get("monokai")
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return buf.String()
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return []byte("null")
	}
	return data
}

func statusLine(code int) string {
	if text := http.StatusText(code); text != "" {
		return fmt.Sprintf("%d %s", code, text)
	}
	return fmt.Sprintf("%d", code)
}

func formatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(bytes))
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
