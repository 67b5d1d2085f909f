// Package testutil provides shared test helpers for config files and seeded
// word stores.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/tango/internal/storage"
	"github.com/at-ishikawa/tango/internal/word"
)

// SetupTestConfig creates a minimal config file and the directories it points
// at. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"data", "cache"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`storage:
  path: %s
dictionary:
  cache_directory: %s
`,
		filepath.Join(tmpDir, "data", "tango.db"),
		filepath.Join(tmpDir, "cache"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SeedOption configures a record created by SeedStore.
type SeedOption func(*word.Record)

// WithJaText populates the translation so the record is deck-eligible.
func WithJaText(jaText string) SeedOption {
	return func(record *word.Record) {
		record.JaText = jaText
		record.Fetch[word.FieldTranslation] = word.FieldState{Status: word.FieldStatusOK}
	}
}

// WithLevel sets the recall level.
func WithLevel(level int) SeedOption {
	return func(record *word.Record) {
		record.Level = level
	}
}

// WithDueAt sets the due timestamp.
func WithDueAt(dueAt time.Time) SeedOption {
	return func(record *word.Record) {
		record.DueAt = dueAt.UnixMilli()
	}
}

// WithTags sets the user tags.
func WithTags(tags ...string) SeedOption {
	return func(record *word.Record) {
		record.Tags = tags
	}
}

// NewStore creates an in-memory word store loaded and ready for use.
func NewStore(t *testing.T, opts ...word.StoreOption) *word.Store {
	t.Helper()

	store := word.NewStore(storage.NewMemoryKV(), opts...)
	require.NoError(t, store.Load(context.Background()))
	return store
}

// SeedStore upserts the given words and applies per-word options, returning
// the records keyed by word.
func SeedStore(t *testing.T, store *word.Store, words map[string][]SeedOption) map[string]*word.Record {
	t.Helper()

	ctx := context.Background()
	records := make(map[string]*word.Record, len(words))
	for raw, opts := range words {
		record, _, err := store.Upsert(ctx, raw)
		require.NoError(t, err)
		require.NotNil(t, record)
		for _, opt := range opts {
			_, err := store.Update(ctx, record.ID, func(r *word.Record) {
				opt(r)
			})
			require.NoError(t, err)
		}
		updated, found := store.GetByID(record.ID)
		require.True(t, found)
		records[updated.Word] = updated
	}
	return records
}
