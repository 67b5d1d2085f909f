package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/tango/internal/word"
)

func TestSetupTestConfig(t *testing.T) {
	tmpDir := t.TempDir()
	got := SetupTestConfig(t, tmpDir)

	assert.Equal(t, filepath.Join(tmpDir, "config.yml"), got)

	content, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Contains(t, string(content), "storage:")
	assert.Contains(t, string(content), filepath.Join(tmpDir, "cache"))

	for _, d := range []string{"data", "cache"} {
		info, err := os.Stat(filepath.Join(tmpDir, d))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestSeedStore(t *testing.T) {
	store := NewStore(t)

	dueAt := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	records := SeedStore(t, store, map[string][]SeedOption{
		"claim": {WithJaText("主張する"), WithLevel(2), WithDueAt(dueAt), WithTags("verb")},
		"plain": nil,
	})

	require.Len(t, records, 2)

	claim := records["claim"]
	require.NotNil(t, claim)
	assert.Equal(t, "主張する", claim.JaText)
	assert.Equal(t, word.FieldStatusOK, claim.Fetch[word.FieldTranslation].Status)
	assert.Equal(t, 2, claim.Level)
	assert.Equal(t, dueAt.UnixMilli(), claim.DueAt)
	assert.Equal(t, []string{"verb"}, claim.Tags)

	plain := records["plain"]
	require.NotNil(t, plain)
	assert.Empty(t, plain.JaText)
	assert.Equal(t, 0, plain.Level)
}
