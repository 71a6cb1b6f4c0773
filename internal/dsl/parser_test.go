package dsl

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParse_HeaderOnly(t *testing.T) {
	d := Parse("GET /foo")
	if d.Kind != KindNone {
		t.Fatalf("unexpected error kind %s", d.Kind)
	}
	if d.Method != "GET" || d.Endpoint != "/foo" {
		t.Errorf("expected GET /foo, got %q %q", d.Method, d.Endpoint)
	}
	body, ok := d.Body.(map[string]any)
	if !ok || len(body) != 0 {
		t.Errorf("expected empty object body, got %#v", d.Body)
	}
	if !d.Usable() {
		t.Error("expected descriptor to be usable")
	}
}

func TestParse_WithBody(t *testing.T) {
	d := Parse("POST /collections/demo/points/search\n{\n  \"vector\": [0.2, 0.1],\n  \"limit\": 3\n}")
	if !d.Usable() {
		t.Fatalf("expected usable descriptor, got kind %s", d.Kind)
	}
	body, ok := d.Body.(map[string]any)
	if !ok {
		t.Fatalf("expected object body, got %T", d.Body)
	}
	if body["limit"] != json.Number("3") {
		t.Errorf("expected limit 3 as json.Number, got %#v", body["limit"])
	}
}

func TestParse_CRLF(t *testing.T) {
	d := Parse("PUT /collections/demo\r\n{\"vectors\": {\"size\": 4, \"distance\": \"Dot\"}}\r\n")
	if !d.Usable() {
		t.Fatalf("expected usable descriptor, got kind %s", d.Kind)
	}
	if d.Method != "PUT" {
		t.Errorf("expected PUT, got %q", d.Method)
	}
}

func TestParse_SingleNewlineBodyIsEmpty(t *testing.T) {
	// Two trailing newlines leave "\n" as the body text.
	d := Parse("GET /collections\n\n")
	if !d.Usable() {
		t.Fatalf("expected usable descriptor, got kind %s", d.Kind)
	}
	if body, ok := d.Body.(map[string]any); !ok || len(body) != 0 {
		t.Errorf("expected empty object body, got %#v", d.Body)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	for _, text := range []string{
		"POST /x\n{bad json",
		"\n{bad json",
		"POST\n{\"a\": 1",
		"POST /x\n{} trailing",
		"POST /x\n   ",
	} {
		d := Parse(text)
		if d.Kind != KindInvalidBody {
			t.Errorf("%q: expected invalid body, got %s", text, d.Kind)
			continue
		}
		if d.Method != "" || d.Endpoint != "" || d.Body != nil {
			t.Errorf("%q: expected method, endpoint and body cleared, got %#v", text, d)
		}
		if d.Kind.Message() != "Fix the Position brackets to run & check the json" {
			t.Errorf("%q: unexpected message %q", text, d.Kind.Message())
		}
	}
}

func TestParse_MissingHeadline(t *testing.T) {
	for _, text := range []string{"", "\n{\"a\": 1}"} {
		d := Parse(text)
		if d.Kind != KindMissingHeadline {
			t.Errorf("%q: expected missing headline, got %s", text, d.Kind)
		}
		if d.Kind.Message() != "Add Headline or remove the line gap between json and headline (if any)" {
			t.Errorf("%q: unexpected message %q", text, d.Kind.Message())
		}
		if d.Body == nil {
			t.Errorf("%q: body should stay populated for display", text)
		}
	}
}

func TestParse_MissingMethod(t *testing.T) {
	d := Parse(" /collections")
	if d.Kind != KindMissingMethod {
		t.Fatalf("expected missing method, got %s", d.Kind)
	}
	if d.Method != "" {
		t.Errorf("expected no method, got %q", d.Method)
	}
	if d.Endpoint != "/collections" {
		t.Errorf("expected endpoint preserved, got %q", d.Endpoint)
	}
	if d.Kind.Message() != "Add method" {
		t.Errorf("unexpected message %q", d.Kind.Message())
	}
}

func TestParse_MissingEndpoint(t *testing.T) {
	for _, text := range []string{"GET\n", "GET", "GET "} {
		d := Parse(text)
		if d.Kind != KindMissingEndpoint {
			t.Errorf("%q: expected missing endpoint, got %s", text, d.Kind)
			continue
		}
		if d.Method != "GET" {
			t.Errorf("%q: expected method preserved, got %q", text, d.Method)
		}
		if d.Endpoint != "" {
			t.Errorf("%q: expected no endpoint, got %q", text, d.Endpoint)
		}
		if d.Kind.Message() != "Add endpoint" {
			t.Errorf("%q: unexpected message %q", text, d.Kind.Message())
		}
	}
}

func TestParse_BodyCheckedBeforeHeader(t *testing.T) {
	d := Parse("\n[1, 2")
	if d.Kind != KindInvalidBody {
		t.Errorf("expected body error to win over header error, got %s", d.Kind)
	}
}

func TestParse_MethodCaseKept(t *testing.T) {
	d := Parse("get /collections")
	if d.Method != "get" {
		t.Errorf("expected method as typed, got %q", d.Method)
	}
}

func TestParse_ExtraTokensIgnored(t *testing.T) {
	d := Parse("GET /collections extra words")
	if d.Endpoint != "/collections" {
		t.Errorf("expected second token as endpoint, got %q", d.Endpoint)
	}
}

func TestParse_Idempotent(t *testing.T) {
	inputs := []string{
		"GET /foo",
		"POST /x\n{\"a\": [1, 2, {\"b\": null}]}",
		"POST /x\n{bad",
		"GET\n",
		"",
	}
	for _, text := range inputs {
		a, b := Parse(text), Parse(text)
		if !reflect.DeepEqual(a, b) {
			t.Errorf("%q: parse not idempotent: %#v vs %#v", text, a, b)
		}
	}
}

func TestParse_ScalarAndArrayBodies(t *testing.T) {
	d := Parse("POST /x\n[1, 2]")
	if _, ok := d.Body.([]any); !ok {
		t.Errorf("expected array body, got %T", d.Body)
	}
	d = Parse("POST /x\n\"text\"")
	if d.Body != "text" {
		t.Errorf("expected string body, got %#v", d.Body)
	}
}

func TestDescriptor_Err(t *testing.T) {
	if err := Parse("GET /foo").Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	err := Parse("GET").Err()
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Kind != KindMissingEndpoint || pe.Error() != MsgMissingEndpoint {
		t.Errorf("unexpected parse error %#v", pe)
	}
}

func TestDescriptor_MarshalJSON(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"GET /foo", `{"method":"GET","endpoint":"/foo","body":{},"error":null}`},
		{"POST /x\n{bad", `{"method":null,"endpoint":null,"body":null,"error":"Fix the Position brackets to run \u0026 check the json"}`},
		{"GET", `{"method":"GET","endpoint":null,"body":{},"error":"Add endpoint"}`},
		{" /c", `{"method":null,"endpoint":"/c","body":{},"error":"Add method"}`},
	}
	for _, tt := range tests {
		data, err := json.Marshal(Parse(tt.text))
		if err != nil {
			t.Fatalf("%q: marshal failed: %v", tt.text, err)
		}
		if string(data) != tt.want {
			t.Errorf("%q:\n got  %s\n want %s", tt.text, data, tt.want)
		}
	}
}

func TestDescriptor_UnmarshalJSON(t *testing.T) {
	original := Parse("POST /collections/demo/points\n{\"points\": [{\"id\": 18446744073709551615}]}")
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}

	var got Descriptor
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, original) {
		t.Errorf("decoded descriptor differs:\n got  %#v\n want %#v", got, original)
	}
}

func TestDescriptor_UnmarshalLegacyReqBody(t *testing.T) {
	var d Descriptor
	err := json.Unmarshal([]byte(`{"method":"GET","endpoint":"/collections","reqBody":{"a":1},"error":null}`), &d)
	if err != nil {
		t.Fatal(err)
	}
	body, ok := d.Body.(map[string]any)
	if !ok || body["a"] != json.Number("1") {
		t.Errorf("expected reqBody to be read as body, got %#v", d.Body)
	}
}

func TestDescriptor_BodyBytes(t *testing.T) {
	for _, text := range []string{"POST /collections/demo/points/scroll", "POST /collections/demo/points/scroll\n{}"} {
		data, err := Parse(text).BodyBytes()
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "{}" {
			t.Errorf("BodyBytes(%q) = %q, want {}", text, data)
		}
	}

	d := Parse("POST /x\nnull")
	if !d.Usable() || d.Body != nil {
		t.Fatalf("expected usable descriptor with nil body, got %#v", d)
	}
	data, err := d.BodyBytes()
	if err != nil {
		t.Fatal(err)
	}
	if data != nil {
		t.Errorf("expected nil payload for null body, got %s", data)
	}

	data, err = Parse("POST /x\n{\"id\": 12345678901234567890}").BodyBytes()
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"id":12345678901234567890}` {
		t.Errorf("unexpected payload %s", data)
	}
}
