// Package dsl turns short request snippets into dispatchable descriptors.
//
// A snippet is a header line "<METHOD> <ENDPOINT>" optionally followed by a
// JSON body on the next lines:
//
//	PUT /collections/demo/points
//	{"points": [{"id": 1, "vector": [0.1, 0.2]}]}
package dsl

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// Parse converts snippet text into a Descriptor. It never fails; problems are
// reported through the descriptor's Kind.
func Parse(text string) Descriptor {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	header := lines[0]
	bodyText := strings.Join(lines[1:], "\n")

	method, endpoint := splitHeader(header)

	// The body is checked before the header.
	var body any = map[string]any{}
	if bodyText != "" && bodyText != "\n" {
		decoded, ok := decodeBody(bodyText)
		if !ok {
			return Descriptor{Kind: KindInvalidBody}
		}
		body = decoded
	}

	switch {
	case method == "" && endpoint == "":
		return Descriptor{Body: body, Kind: KindMissingHeadline}
	case method == "":
		return Descriptor{Endpoint: endpoint, Body: body, Kind: KindMissingMethod}
	case endpoint == "":
		return Descriptor{Method: method, Body: body, Kind: KindMissingEndpoint}
	}
	return Descriptor{Method: method, Endpoint: endpoint, Body: body}
}

// splitHeader returns the first two single-space separated tokens.
func splitHeader(header string) (method, endpoint string) {
	tokens := strings.Split(header, " ")
	method = tokens[0]
	if len(tokens) > 1 {
		endpoint = tokens[1]
	}
	return method, endpoint
}

// decodeBody decodes exactly one JSON value, allowing surrounding whitespace.
func decodeBody(text string) (any, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return v, true
}
