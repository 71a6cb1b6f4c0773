package runner

import (
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/sadopc/qconsole/internal/core/history"
	"github.com/sadopc/qconsole/internal/dsl"
	"github.com/sadopc/qconsole/internal/protocol"
)

// Kind tells callers which shape a Result has.
type Kind int

const (
	// ResultOK means the request completed a round trip, whatever the status code.
	ResultOK Kind = iota
	// ResultParseError means the snippet was rejected before dispatch.
	ResultParseError
	// ResultTransportError means no response was obtained.
	ResultTransportError
)

func (k Kind) String() string {
	switch k {
	case ResultOK:
		return "ok"
	case ResultParseError:
		return "parse_error"
	case ResultTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result is the outcome of one Execute call. Failures are reported here, not
// through an error return.
type Result struct {
	Kind       Kind
	Descriptor dsl.Descriptor

	// Payload is the response body, unmodified.
	Payload []byte
	// Status is the raw JSON of the payload's "status" field, when present.
	Status     json.RawMessage
	StatusCode int
	Response   *protocol.Response

	// Err is the transport failure for ResultTransportError.
	Err error

	// Entry is the recorded history entry, nil when nothing was recorded.
	Entry *history.Entry
	// HistoryErr is set when recording failed; the result is still valid.
	HistoryErr error
}

// Value returns what the caller shows: the response payload, the rejected
// descriptor, or for transport failures the upstream status when one was
// supplied and the error otherwise.
func (r Result) Value() any {
	switch r.Kind {
	case ResultOK:
		if len(r.Payload) == 0 {
			return json.RawMessage("null")
		}
		if !json.Valid(r.Payload) {
			return string(r.Payload)
		}
		return json.RawMessage(r.Payload)
	case ResultParseError:
		return r.Descriptor
	default:
		if len(r.Status) > 0 {
			return r.Status
		}
		return r.Err
	}
}

// StatusOK reports whether the payload's status field is the string "ok".
func (r Result) StatusOK() bool {
	return len(r.Status) > 0 && gjson.ParseBytes(r.Status).String() == "ok"
}

// MarshalJSON encodes Value, rendering bare errors as {"error": message}.
func (r Result) MarshalJSON() ([]byte, error) {
	v := r.Value()
	if err, ok := v.(error); ok {
		return json.Marshal(map[string]string{"error": err.Error()})
	}
	return json.Marshal(v)
}

// statusField extracts the "status" member of a JSON object payload.
func statusField(payload []byte) json.RawMessage {
	if !gjson.ValidBytes(payload) {
		return nil
	}
	s := gjson.GetBytes(payload, "status")
	if !s.Exists() {
		return nil
	}
	return json.RawMessage(s.Raw)
}

// upstreamStatus returns the status carried by a transport error's payload.
func upstreamStatus(err error) json.RawMessage {
	var pe *protocol.PayloadError
	if errors.As(err, &pe) {
		return statusField(pe.Payload)
	}
	return nil
}

// ExitCode maps a result to a process exit code: 0 ok, 1 parse error,
// 2 transport error.
func ExitCode(r Result) int {
	switch r.Kind {
	case ResultOK:
		return 0
	case ResultParseError:
		return 1
	default:
		return 2
	}
}
