package history

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/qconsole/internal/dsl"
)

// Entry is one dispatched request. The first four JSON keys match logs written
// by earlier console versions.
type Entry struct {
	ID             string         `json:"idx"`
	Descriptor     dsl.Descriptor `json:"code"`
	ExecutedAtTime string         `json:"time"`
	ExecutedAtDate string         `json:"date"`
	ExecutedAt     time.Time      `json:"executed_at,omitzero"`
}

// IDScheme selects how entry IDs are generated.
type IDScheme string

const (
	// SchemeTimestamp concatenates method, endpoint and the millisecond epoch.
	// Two dispatches of the same request in the same millisecond collide.
	SchemeTimestamp IDScheme = "timestamp"
	// SchemeUUID uses a random UUID.
	SchemeUUID IDScheme = "uuid"
)

// Default wall-clock layouts, matching en-US locale rendering.
const (
	DefaultTimeLayout = "3:04:05 PM"
	DefaultDateLayout = "1/2/2006"
)

// EntryFormat controls how new entries are stamped.
type EntryFormat struct {
	IDScheme   IDScheme
	TimeLayout string
	DateLayout string
}

// NewEntry stamps d as dispatched at the given instant.
func (f EntryFormat) NewEntry(d dsl.Descriptor, at time.Time) Entry {
	timeLayout := f.TimeLayout
	if timeLayout == "" {
		timeLayout = DefaultTimeLayout
	}
	dateLayout := f.DateLayout
	if dateLayout == "" {
		dateLayout = DefaultDateLayout
	}
	return Entry{
		ID:             NewID(f.IDScheme, d, at),
		Descriptor:     d,
		ExecutedAtTime: at.Format(timeLayout),
		ExecutedAtDate: at.Format(dateLayout),
		ExecutedAt:     at,
	}
}

// NewID builds an entry ID. Unknown schemes use SchemeTimestamp.
func NewID(scheme IDScheme, d dsl.Descriptor, at time.Time) string {
	if scheme == SchemeUUID {
		return uuid.NewString()
	}
	return d.Method + d.Endpoint + strconv.FormatInt(at.UnixMilli(), 10)
}
