package word

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ExportFormat selects the serialization used by Export.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportYAML ExportFormat = "yaml"
)

// Export serializes the full record collection, trashed records included,
// so an import restores the exact state.
func (s *Store) Export(format ExportFormat) ([]byte, error) {
	records := s.All()
	switch format {
	case ExportJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("json.MarshalIndent(records) > %w", err)
		}
		return data, nil
	case ExportYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return nil, fmt.Errorf("yaml.Marshal(records) > %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

// ImportResult summarizes a merge import.
type ImportResult struct {
	Added   int
	Merged  int
	Skipped int
}

// Import merges a JSON record array into the store. New words are inserted
// as-is (normalized, ids regenerated on collision with defaults repaired);
// existing records keep their values and only have blank translation, note
// and tags filled from the incoming record. Malformed input is rejected at
// the boundary; the store is left untouched.
func (s *Store) Import(ctx context.Context, data []byte) (ImportResult, error) {
	var result ImportResult

	var incoming []*Record
	if err := json.Unmarshal(data, &incoming); err != nil {
		return result, fmt.Errorf("json.Unmarshal(import) > %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for _, in := range incoming {
		normalized := Normalize(in.Word)
		if normalized == "" {
			result.Skipped++
			continue
		}

		existing, ok := s.byWord[normalized]
		if !ok {
			record := in
			record.Word = normalized
			record.Level = ClampLevel(record.Level)
			if record.ID == "" {
				record.ID = NewRecord(normalized, now).ID
			}
			if _, taken := s.byID[record.ID]; taken {
				record.ID = NewRecord(normalized, now).ID
			}
			if record.CreatedAt == 0 {
				record.CreatedAt = now.UnixMilli()
			}
			if record.DueAt == 0 {
				record.DueAt = now.UnixMilli()
			}
			if record.Fetch == nil {
				record.Fetch = newFieldStates()
			}
			if record.Tags == nil {
				record.Tags = []string{}
			}
			if record.AutoTags == nil {
				record.AutoTags = []string{}
			}
			s.items = append(s.items, record)
			s.byWord[record.Word] = record
			s.byID[record.ID] = record
			result.Added++
			continue
		}

		// Prefer the existing record; only fill blanks.
		if existing.JaText == "" && in.JaText != "" {
			existing.JaText = in.JaText
			state := existing.Fetch[FieldTranslation]
			state.Status = FieldStatusOK
			state.At = now.UnixMilli()
			state.Err = ""
			existing.Fetch[FieldTranslation] = state
		}
		if existing.Note == "" && in.Note != "" {
			existing.Note = in.Note
		}
		if len(existing.Tags) == 0 && len(in.Tags) > 0 {
			existing.Tags = append([]string(nil), in.Tags...)
		}
		result.Merged++
	}

	return result, s.persistLocked(ctx)
}
