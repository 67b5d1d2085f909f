// Package word provides the vocabulary record model and its single-writer store.
package word

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/samber/lo"
)

// FieldStatus represents the lifecycle of one enrichment field.
type FieldStatus string

const (
	FieldStatusIdle    FieldStatus = "idle"
	FieldStatusPending FieldStatus = "pending"
	FieldStatusOK      FieldStatus = "ok"
	FieldStatusFail    FieldStatus = "fail"
)

// FieldKey identifies one of the independently fetched enrichment fields.
type FieldKey string

const (
	FieldDefinition  FieldKey = "def"
	FieldTranslation FieldKey = "ja"
	FieldSynonyms    FieldKey = "syn"
	FieldExample     FieldKey = "ex"
)

// AllFieldKeys lists every enrichment field in fetch order.
var AllFieldKeys = []FieldKey{FieldTranslation, FieldDefinition, FieldSynonyms, FieldExample}

// FieldState records the fetch outcome of a single field.
type FieldState struct {
	Status FieldStatus `json:"status" yaml:"status"`
	At     int64       `json:"at" yaml:"at"`
	Err    string      `json:"err" yaml:"err"`
}

const (
	// MinLevel and MaxLevel bound the recall strength of a record.
	MinLevel = 0
	MaxLevel = 4

	maxAutoTags = 6
)

// Record is one tracked vocabulary word and its enrichment/review state.
// Timestamps are unix milliseconds, matching the exported JSON format.
type Record struct {
	ID        string `json:"id" yaml:"id"`
	Word      string `json:"word" yaml:"word"`
	CreatedAt int64  `json:"createdAt" yaml:"createdAt"`
	DeletedAt int64  `json:"deletedAt" yaml:"deletedAt"`

	Level int   `json:"level" yaml:"level"`
	DueAt int64 `json:"dueAt" yaml:"dueAt"`

	Phonetic string `json:"phonetic" yaml:"phonetic"`
	DefText  string `json:"defText" yaml:"defText"`
	JaText   string `json:"jaText" yaml:"jaText"`
	SynText  string `json:"synText" yaml:"synText"`
	ExText   string `json:"exText" yaml:"exText"`

	Fetch map[FieldKey]FieldState `json:"fetch" yaml:"fetch"`

	Tags     []string `json:"tags" yaml:"tags"`
	AutoTags []string `json:"autoTags" yaml:"autoTags"`
	Note     string   `json:"note" yaml:"note"`

	LastError string `json:"lastError" yaml:"lastError"`
}

// NewRecord creates a record for an already-normalized word with every field idle.
func NewRecord(word string, now time.Time) *Record {
	millis := now.UnixMilli()
	return &Record{
		ID:        fmt.Sprintf("%d_%08x", millis, rand.Uint32()),
		Word:      word,
		CreatedAt: millis,
		DueAt:     millis,
		Level:     MinLevel,
		Tags:      []string{},
		AutoTags:  []string{},
		Fetch:     newFieldStates(),
	}
}

func newFieldStates() map[FieldKey]FieldState {
	states := make(map[FieldKey]FieldState, len(AllFieldKeys))
	for _, key := range AllFieldKeys {
		states[key] = FieldState{Status: FieldStatusIdle}
	}
	return states
}

// Active reports whether the record is not soft-deleted.
func (r *Record) Active() bool {
	return r.DeletedAt == 0
}

// IsDue reports whether the record's scheduled review time has passed.
func (r *Record) IsDue(now time.Time) bool {
	return r.DueAt <= now.UnixMilli()
}

// FieldStatusOf returns the status of a field, defaulting to idle.
func (r *Record) FieldStatusOf(key FieldKey) FieldStatus {
	state, ok := r.Fetch[key]
	if !ok {
		return FieldStatusIdle
	}
	return state.Status
}

// FieldText returns the payload text backing the given field.
func (r *Record) FieldText(key FieldKey) string {
	switch key {
	case FieldDefinition:
		return r.DefText
	case FieldTranslation:
		return r.JaText
	case FieldSynonyms:
		return r.SynText
	case FieldExample:
		return r.ExText
	}
	return ""
}

// MarkField records the outcome of one fetch attempt. A failure also updates
// the record-level LastError so list output can surface it.
func (r *Record) MarkField(key FieldKey, status FieldStatus, errMsg string, now time.Time) {
	if r.Fetch == nil {
		r.Fetch = newFieldStates()
	}
	r.Fetch[key] = FieldState{Status: status, At: now.UnixMilli(), Err: errMsg}
	if status == FieldStatusFail {
		r.LastError = fmt.Sprintf("%s: %s", key, errMsg)
	}
}

// SetFieldText stores the fetched payload behind the given field.
func (r *Record) SetFieldText(key FieldKey, text string) {
	switch key {
	case FieldDefinition:
		r.DefText = text
	case FieldTranslation:
		r.JaText = text
	case FieldSynonyms:
		r.SynText = text
	case FieldExample:
		r.ExText = text
	}
}

// MergeAutoTags appends newly derived tags, deduplicated and capped.
func (r *Record) MergeAutoTags(tags []string) {
	merged := lo.Uniq(append(append([]string{}, r.AutoTags...), tags...))
	if len(merged) > maxAutoTags {
		merged = merged[:maxAutoTags]
	}
	r.AutoTags = merged
}

// Clone returns a deep copy so callers can read records outside the store lock.
func (r *Record) Clone() *Record {
	clone := *r
	clone.Tags = append([]string(nil), r.Tags...)
	clone.AutoTags = append([]string(nil), r.AutoTags...)
	clone.Fetch = make(map[FieldKey]FieldState, len(r.Fetch))
	for key, state := range r.Fetch {
		clone.Fetch[key] = state
	}
	return &clone
}

// ClampLevel bounds a recall level to [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
