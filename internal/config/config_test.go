package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/tango/internal/fetch"
	"github.com/at-ishikawa/tango/internal/review"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name              string
		configContent     string
		assertConfig      func(t *testing.T, cfg *Config)
		wantErr           bool
		wantErrorContains []string
	}{
		{
			name:          "empty config file uses defaults",
			configContent: "",
			assertConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://api.dictionaryapi.dev", cfg.Dictionary.BaseURL)
				assert.Equal(t, "https://api.mymemory.translated.net", cfg.Translation.BaseURL)
				assert.Equal(t, "en|ja", cfg.Translation.LangPair)
				assert.Equal(t, fetch.DefaultConfig(), cfg.Fetch)
				assert.Equal(t, review.DefaultDeckSize, cfg.Review.DeckSize)
				assert.Equal(t, review.DefaultIntervals(), cfg.Review.Intervals)
				assert.NotEmpty(t, cfg.Storage.Path)
			},
		},
		{
			name: "custom values override defaults",
			configContent: `storage:
  path: custom/tango.db
fetch:
  concurrency: 4
  timeout: 3s
  max_retries: 1
review:
  deck_size: 50
  intervals:
    again: 5m
`,
			assertConfig: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "custom/tango.db", cfg.Storage.Path)
				assert.Equal(t, 4, cfg.Fetch.Concurrency)
				assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
				assert.Equal(t, 1, cfg.Fetch.MaxRetries)
				assert.Equal(t, 50, cfg.Review.DeckSize)
				assert.Equal(t, 5*time.Minute, cfg.Review.Intervals.Again)
				// Untouched intervals keep their defaults.
				assert.Equal(t, review.DefaultIntervals().Good, cfg.Review.Intervals.Good)
			},
		},
		{
			name: "invalid YAML format",
			configContent: `storage:
  invalid yaml format here [[[
`,
			wantErr: true,
			wantErrorContains: []string{
				"configuration file found but could not be read",
				"Please check the file format and permissions",
			},
		},
		{
			name: "validation rejects a zero concurrency",
			configContent: `fetch:
  concurrency: 0
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"concurrency",
			},
		},
		{
			name: "validation rejects a malformed dictionary url",
			configContent: `dictionary:
  base_url: not a url
`,
			wantErr: true,
			wantErrorContains: []string{
				"invalid configuration",
				"base_url",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfgPath := writeConfigFile(t, tt.configContent)

			cfg, err := Load(cfgPath)
			if tt.wantErr {
				require.Error(t, err)
				for _, fragment := range tt.wantErrorContains {
					assert.Contains(t, err.Error(), fragment)
				}
				return
			}
			require.NoError(t, err)
			tt.assertConfig(t, cfg)
		})
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "override.db")
	t.Setenv("TANGO_DB_PATH", dbPath)

	cfg, err := Load(writeConfigFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, dbPath, cfg.Storage.Path)
}

func TestHasExistingParentDirWalk(t *testing.T) {
	// The database file's parent need not exist yet as long as an ancestor
	// directory does.
	path := filepath.Join(t.TempDir(), "nested", "deeper", "tango.db")

	cfg, err := Load(writeConfigFile(t, "storage:\n  path: "+path+"\n"))
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Storage.Path)
}
