// Package export renders prepared requests in formats other tools accept.
package export

import (
	"sort"
	"strings"

	"github.com/sadopc/qconsole/internal/protocol"
)

// CurlOptions controls AsCurl output.
type CurlOptions struct {
	// MaskSecrets replaces credential values with a placeholder.
	MaskSecrets bool
}

const maskedSecret = "<redacted>"

// AsCurl converts a request to a single-line curl command.
func AsCurl(req *protocol.Request, opts CurlOptions) string {
	parts := []string{"curl"}

	if req.Method != "GET" {
		parts = append(parts, "-X", req.Method)
	}

	headers := make(map[string]string, len(req.Headers)+2)
	if len(req.Body) > 0 {
		headers["Content-Type"] = "application/json"
	}
	for k, v := range req.Headers {
		headers[k] = v
	}
	if name, value, ok := authHeader(req.Auth); ok {
		if opts.MaskSecrets {
			value = maskedSecret
		}
		headers[name] = value
	}

	names := make([]string, 0, len(headers))
	for k := range headers {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		parts = append(parts, "-H", shellQuote(k+": "+headers[k]))
	}

	if len(req.Body) > 0 {
		parts = append(parts, "-d", shellQuote(string(req.Body)))
	}

	parts = append(parts, shellQuote(req.URL))
	return strings.Join(parts, " ")
}

func authHeader(auth *protocol.AuthConfig) (name, value string, ok bool) {
	if auth == nil {
		return "", "", false
	}
	switch auth.Type {
	case "bearer":
		return "Authorization", "Bearer " + auth.Token, true
	case "apikey":
		name = auth.APIKey
		if name == "" {
			name = protocol.DefaultAPIKeyHeader
		}
		return name, auth.Value, true
	}
	return "", "", false
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
