package word

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/tango/internal/storage"
)

func newTestStore(t *testing.T, now time.Time) *Store {
	t.Helper()

	store := NewStore(storage.NewMemoryKV(), WithClock(func() time.Time {
		return now
	}))
	require.NoError(t, store.Load(context.Background()))
	return store
}

func TestStoreUpsert(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates a record with idle fields", func(t *testing.T) {
		store := newTestStore(t, now)

		record, created, err := store.Upsert(context.Background(), "Claim!")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "claim", record.Word)
		assert.Equal(t, MinLevel, record.Level)
		assert.Equal(t, now.UnixMilli(), record.CreatedAt)
		assert.Equal(t, now.UnixMilli(), record.DueAt)
		for _, field := range AllFieldKeys {
			assert.Equal(t, FieldStatusIdle, record.FieldStatusOf(field))
		}
	})

	t.Run("merges words with the same normalized form", func(t *testing.T) {
		store := newTestStore(t, now)

		first, created, err := store.Upsert(context.Background(), "claim")
		require.NoError(t, err)
		require.True(t, created)

		second, created, err := store.Upsert(context.Background(), "  CLAIM, ")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, store.All(), 1)
	})

	t.Run("reactivates a trashed record", func(t *testing.T) {
		store := newTestStore(t, now)

		record, _, err := store.Upsert(context.Background(), "claim")
		require.NoError(t, err)
		_, err = store.Trash(context.Background(), record.ID)
		require.NoError(t, err)

		reused, created, err := store.Upsert(context.Background(), "claim")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, record.ID, reused.ID)
		assert.True(t, reused.Active())
	})

	t.Run("rejects input that normalizes to empty silently", func(t *testing.T) {
		store := newTestStore(t, now)

		record, created, err := store.Upsert(context.Background(), "123!")
		require.NoError(t, err)
		assert.Nil(t, record)
		assert.False(t, created)
		assert.Empty(t, store.All())
	})
}

func TestStoreTrashRestore(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("round trip restores the pre-trash state", func(t *testing.T) {
		store := newTestStore(t, now)
		record, _, err := store.Upsert(context.Background(), "claim")
		require.NoError(t, err)

		trashed, err := store.Trash(context.Background(), record.ID)
		require.NoError(t, err)
		assert.True(t, trashed)
		got, found := store.GetByID(record.ID)
		require.True(t, found)
		assert.Equal(t, now.UnixMilli(), got.DeletedAt)

		restored, err := store.Restore(context.Background(), record.ID)
		require.NoError(t, err)
		assert.True(t, restored)
		got, found = store.GetByID(record.ID)
		require.True(t, found)
		assert.Equal(t, record, got)
	})

	t.Run("trash is a no-op for missing or trashed ids", func(t *testing.T) {
		store := newTestStore(t, now)
		record, _, err := store.Upsert(context.Background(), "claim")
		require.NoError(t, err)

		trashed, err := store.Trash(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, trashed)

		_, err = store.Trash(context.Background(), record.ID)
		require.NoError(t, err)
		trashed, err = store.Trash(context.Background(), record.ID)
		require.NoError(t, err)
		assert.False(t, trashed)
	})

	t.Run("restore is a no-op for active ids", func(t *testing.T) {
		store := newTestStore(t, now)
		record, _, err := store.Upsert(context.Background(), "claim")
		require.NoError(t, err)

		restored, err := store.Restore(context.Background(), record.ID)
		require.NoError(t, err)
		assert.False(t, restored)
	})
}

func TestStorePurge(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t, now)

	claim, _, err := store.Upsert(context.Background(), "claim")
	require.NoError(t, err)
	lucid, _, err := store.Upsert(context.Background(), "lucid")
	require.NoError(t, err)

	purged, err := store.Purge(context.Background(), []string{claim.ID, "missing"})
	require.NoError(t, err)
	assert.Equal(t, 1, purged)

	_, found := store.GetByID(claim.ID)
	assert.False(t, found)
	_, found = store.Get("claim")
	assert.False(t, found)
	_, found = store.GetByID(lucid.ID)
	assert.True(t, found)
}

func TestStoreUpdate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("clamps the level after the mutation", func(t *testing.T) {
		store := newTestStore(t, now)
		record, _, err := store.Upsert(context.Background(), "claim")
		require.NoError(t, err)

		updated, err := store.Update(context.Background(), record.ID, func(r *Record) {
			r.Level = 99
		})
		require.NoError(t, err)
		assert.True(t, updated)

		got, found := store.GetByID(record.ID)
		require.True(t, found)
		assert.Equal(t, MaxLevel, got.Level)
	})

	t.Run("returns false for a missing id", func(t *testing.T) {
		store := newTestStore(t, now)
		updated, err := store.Update(context.Background(), "missing", func(r *Record) {})
		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestStorePersistence(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	kv := storage.NewMemoryKV()

	store := NewStore(kv, WithClock(func() time.Time { return now }))
	require.NoError(t, store.Load(context.Background()))
	record, _, err := store.Upsert(context.Background(), "claim")
	require.NoError(t, err)

	t.Run("a new store loads the persisted snapshot", func(t *testing.T) {
		reloaded := NewStore(kv)
		require.NoError(t, reloaded.Load(context.Background()))

		got, found := reloaded.GetByID(record.ID)
		require.True(t, found)
		assert.Equal(t, "claim", got.Word)
	})

	t.Run("the backup snapshot tracks the collection", func(t *testing.T) {
		backup, found, err := store.LoadBackup(context.Background())
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, now.UnixMilli(), backup.At)
		require.Len(t, backup.Items, 1)
		assert.Equal(t, "claim", backup.Items[0].Word)
	})

	t.Run("restore from backup replaces the collection", func(t *testing.T) {
		_, err := store.Purge(context.Background(), []string{record.ID})
		require.NoError(t, err)
		require.Empty(t, store.All())

		// The backup now reflects the purge, so seed an older envelope first.
		older := NewStore(storage.NewMemoryKV(), WithClock(func() time.Time { return now }))
		require.NoError(t, older.Load(context.Background()))
		_, _, err = older.Upsert(context.Background(), "lucid")
		require.NoError(t, err)
		backup, found, err := older.LoadBackup(context.Background())
		require.NoError(t, err)
		require.True(t, found)

		contents, err := json.Marshal(backup)
		require.NoError(t, err)
		require.NoError(t, kv.Set(context.Background(), backupKey, string(contents)))

		count, err := store.RestoreFromBackup(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, count)
		_, found = store.Get("lucid")
		assert.True(t, found)
	})

	t.Run("pending fields reset to idle on load", func(t *testing.T) {
		kv := storage.NewMemoryKV()
		store := NewStore(kv)
		require.NoError(t, store.Load(context.Background()))
		record, _, err := store.Upsert(context.Background(), "resume")
		require.NoError(t, err)
		_, err = store.Update(context.Background(), record.ID, func(r *Record) {
			r.MarkField(FieldDefinition, FieldStatusPending, "", now)
			r.MarkField(FieldTranslation, FieldStatusOK, "", now)
		})
		require.NoError(t, err)

		reloaded := NewStore(kv)
		require.NoError(t, reloaded.Load(context.Background()))
		got, found := reloaded.GetByID(record.ID)
		require.True(t, found)
		assert.Equal(t, FieldStatusIdle, got.FieldStatusOf(FieldDefinition))
		assert.Equal(t, FieldStatusOK, got.FieldStatusOf(FieldTranslation))
	})
}
