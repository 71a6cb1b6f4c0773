package history

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/qconsole/internal/dsl"
)

func TestNewEntry_TimestampID(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	e := EntryFormat{}.NewEntry(dsl.Parse("GET /collections"), at)

	if e.ID != "GET/collections"+"1704207845000" {
		t.Errorf("unexpected id %q", e.ID)
	}
	if e.ExecutedAtTime != "3:04:05 PM" {
		t.Errorf("ExecutedAtTime = %q", e.ExecutedAtTime)
	}
	if e.ExecutedAtDate != "1/2/2024" {
		t.Errorf("ExecutedAtDate = %q", e.ExecutedAtDate)
	}
}

func TestNewEntry_CustomLayouts(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	e := EntryFormat{TimeLayout: "15:04:05", DateLayout: "02.01.2006"}.NewEntry(dsl.Parse("GET /x"), at)

	if e.ExecutedAtTime != "15:04:05" || e.ExecutedAtDate != "02.01.2024" {
		t.Errorf("unexpected stamps %q %q", e.ExecutedAtTime, e.ExecutedAtDate)
	}
}

func TestNewEntry_UUIDID(t *testing.T) {
	at := time.Now()
	d := dsl.Parse("GET /collections")
	a := EntryFormat{IDScheme: SchemeUUID}.NewEntry(d, at)
	b := EntryFormat{IDScheme: SchemeUUID}.NewEntry(d, at)

	if _, err := uuid.Parse(a.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", a.ID)
	}
	if a.ID == b.ID {
		t.Error("uuid ids should differ within the same millisecond")
	}
}

func TestNewEntry_TimestampCollision(t *testing.T) {
	// Documented weakness of the timestamp scheme.
	at := time.Now()
	d := dsl.Parse("GET /collections")
	if NewID(SchemeTimestamp, d, at) != NewID(SchemeTimestamp, d, at) {
		t.Error("expected identical ids for identical request and millisecond")
	}
}

func TestEntry_JSONLayout(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	data, err := json.Marshal(EntryFormat{}.NewEntry(dsl.Parse("GET /collections"), at))
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"idx":`, `"code":{"method":"GET"`, `"time":"3:04:05 PM"`, `"date":"1/2/2024"`, `"executed_at":`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in %s", key, data)
		}
	}
}

func TestEntry_ReadsLegacyLayout(t *testing.T) {
	legacy := `[{"idx":"GET/collections1700000000000","code":{"method":"GET","endpoint":"/collections","reqBody":{},"error":null},"time":"10:13:20 PM","date":"11/14/2023"}]`
	entries, err := decodeLog([]byte(legacy))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Descriptor.Endpoint != "/collections" || e.ExecutedAtDate != "11/14/2023" {
		t.Errorf("unexpected entry %#v", e)
	}
	if !e.ExecutedAt.IsZero() {
		t.Errorf("legacy entry should have zero ExecutedAt, got %v", e.ExecutedAt)
	}
}
