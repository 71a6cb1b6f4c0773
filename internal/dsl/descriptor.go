package dsl

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ErrorKind tags why a descriptor cannot be dispatched.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInvalidBody
	KindMissingHeadline
	KindMissingMethod
	KindMissingEndpoint
)

// Diagnostic messages. UIs branch on these strings, keep them verbatim.
const (
	MsgInvalidBody     = "Fix the Position brackets to run & check the json"
	MsgMissingHeadline = "Add Headline or remove the line gap between json and headline (if any)"
	MsgMissingMethod   = "Add method"
	MsgMissingEndpoint = "Add endpoint"
)

var kindMessages = map[ErrorKind]string{
	KindInvalidBody:     MsgInvalidBody,
	KindMissingHeadline: MsgMissingHeadline,
	KindMissingMethod:   MsgMissingMethod,
	KindMissingEndpoint: MsgMissingEndpoint,
}

// Message returns the diagnostic shown to the author, or "" for KindNone.
func (k ErrorKind) Message() string {
	return kindMessages[k]
}

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidBody:
		return "invalid_body"
	case KindMissingHeadline:
		return "missing_headline"
	case KindMissingMethod:
		return "missing_method"
	case KindMissingEndpoint:
		return "missing_endpoint"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func kindFromMessage(msg string) ErrorKind {
	for k, m := range kindMessages {
		if m == msg {
			return k
		}
	}
	return KindNone
}

// ParseError is the error form of a rejected descriptor.
type ParseError struct {
	Kind    ErrorKind
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// Descriptor is one request extracted from DSL text.
//
// An empty Method or Endpoint is reported as null in JSON. Body defaults to
// an empty object when no body text is given; it is nil when the body text
// failed to decode or was the literal null.
type Descriptor struct {
	Method   string
	Endpoint string
	Body     any
	Kind     ErrorKind
}

// Usable reports whether the descriptor can be dispatched.
func (d Descriptor) Usable() bool {
	return d.Kind == KindNone && d.Method != "" && d.Endpoint != ""
}

// Err returns a *ParseError when the descriptor carries a diagnostic.
func (d Descriptor) Err() error {
	if d.Kind == KindNone {
		return nil
	}
	return &ParseError{Kind: d.Kind, Message: d.Kind.Message()}
}

// BodyBytes encodes the body for dispatch. A defaulted body encodes as {};
// only a nil body (a literal null, or a rejected snippet) yields no payload.
func (d Descriptor) BodyBytes() ([]byte, error) {
	if d.Body == nil {
		return nil, nil
	}
	data, err := json.Marshal(d.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding body: %w", err)
	}
	return data, nil
}

type wireDescriptor struct {
	Method   *string `json:"method"`
	Endpoint *string `json:"endpoint"`
	Body     any     `json:"body"`
	Error    *string `json:"error"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// MarshalJSON emits {method, endpoint, body, error} with nulls for absent parts.
func (d Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireDescriptor{
		Method:   optional(d.Method),
		Endpoint: optional(d.Endpoint),
		Body:     d.Body,
		Error:    optional(d.Kind.Message()),
	})
}

// UnmarshalJSON accepts the layout written by MarshalJSON. The legacy
// "reqBody" key is read as the body.
func (d *Descriptor) UnmarshalJSON(data []byte) error {
	var w struct {
		wireDescriptor
		ReqBody json.RawMessage `json:"reqBody"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return err
	}

	*d = Descriptor{Body: w.Body}
	if w.Method != nil {
		d.Method = *w.Method
	}
	if w.Endpoint != nil {
		d.Endpoint = *w.Endpoint
	}
	if w.Error != nil {
		d.Kind = kindFromMessage(*w.Error)
	}
	if d.Body == nil && len(w.ReqBody) > 0 {
		body, ok := decodeBody(string(w.ReqBody))
		if ok {
			d.Body = body
		}
	}
	return nil
}
