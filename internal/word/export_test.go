package word

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreExport(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, now)
	record, _, err := store.Upsert(context.Background(), "claim")
	require.NoError(t, err)
	_, err = store.Trash(context.Background(), record.ID)
	require.NoError(t, err)

	t.Run("json export includes trashed records", func(t *testing.T) {
		contents, err := store.Export(ExportJSON)
		require.NoError(t, err)

		var exported []*Record
		require.NoError(t, json.Unmarshal(contents, &exported))
		require.Len(t, exported, 1)
		assert.Equal(t, "claim", exported[0].Word)
		assert.NotZero(t, exported[0].DeletedAt)
	})

	t.Run("yaml export", func(t *testing.T) {
		contents, err := store.Export(ExportYAML)
		require.NoError(t, err)
		assert.Contains(t, string(contents), "word: claim")
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := store.Export(ExportFormat("xml"))
		assert.Error(t, err)
	})
}

func TestStoreImport(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("inserts new words with repaired defaults", func(t *testing.T) {
		store := newTestStore(t, now)

		result, err := store.Import(context.Background(), []byte(`[{"word": "Lucid!"}]`))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Added)

		record, found := store.Get("lucid")
		require.True(t, found)
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, now.UnixMilli(), record.CreatedAt)
		assert.Equal(t, now.UnixMilli(), record.DueAt)
		assert.Equal(t, FieldStatusIdle, record.FieldStatusOf(FieldTranslation))
	})

	t.Run("fills only blanks on existing records", func(t *testing.T) {
		store := newTestStore(t, now)
		record, _, err := store.Upsert(context.Background(), "claim")
		require.NoError(t, err)
		_, err = store.SetNote(context.Background(), record.ID, "keep me")
		require.NoError(t, err)

		result, err := store.Import(context.Background(), []byte(`[
			{"word": "claim", "jaText": "主張する", "note": "overwrite attempt", "tags": ["verb"]}
		]`))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Merged)

		got, found := store.Get("claim")
		require.True(t, found)
		assert.Equal(t, "主張する", got.JaText)
		assert.Equal(t, FieldStatusOK, got.FieldStatusOf(FieldTranslation))
		assert.Equal(t, "keep me", got.Note)
		assert.Equal(t, []string{"verb"}, got.Tags)
	})

	t.Run("skips words that normalize to empty", func(t *testing.T) {
		store := newTestStore(t, now)

		result, err := store.Import(context.Background(), []byte(`[{"word": "123"}]`))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Skipped)
		assert.Empty(t, store.All())
	})

	t.Run("malformed json leaves the store untouched", func(t *testing.T) {
		store := newTestStore(t, now)
		_, _, err := store.Upsert(context.Background(), "claim")
		require.NoError(t, err)

		_, err = store.Import(context.Background(), []byte(`{"data": [`))
		assert.Error(t, err)
		assert.Len(t, store.All(), 1)
	})
}
