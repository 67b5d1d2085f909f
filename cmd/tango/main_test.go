package main

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetupLogger(t *testing.T) {
	tests := []struct {
		name      string
		debugMode bool
		wantLevel slog.Level
	}{
		{
			name:      "debug mode enabled",
			debugMode: true,
			wantLevel: slog.LevelDebug,
		},
		{
			name:      "debug mode disabled",
			debugMode: false,
			wantLevel: slog.LevelInfo,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupLogger(tt.debugMode)
			logger := slog.Default()
			assert.NotNil(t, logger)
			assert.Equal(t, tt.wantLevel <= slog.LevelDebug, logger.Enabled(nil, slog.LevelDebug))
		})
	}
}

func TestNewAddCommand(t *testing.T) {
	cmd := newAddCommand()

	assert.Equal(t, "add [words...]", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("file"))
	assert.NotNil(t, cmd.Flags().Lookup("xlsx"))
	assert.NotNil(t, cmd.Flags().Lookup("sheet"))
}

func TestNewListCommand(t *testing.T) {
	cmd := newListCommand()

	assert.Equal(t, "list [query]", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	assert.NotNil(t, cmd.Flags().Lookup("trash"))
}

func TestNewFetchCommand(t *testing.T) {
	cmd := newFetchCommand()

	assert.Equal(t, "fetch (missing|failed)", cmd.Use)
	assert.Equal(t, []string{"missing", "failed"}, cmd.ValidArgs)
	assert.NotNil(t, cmd.RunE)
}

func TestNewReviewCommand(t *testing.T) {
	cmd := newReviewCommand()

	assert.Equal(t, "review", cmd.Use)
	assert.NotNil(t, cmd.RunE)
	for _, flag := range []string{"scope", "level", "order", "count"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), flag)
	}
}

func TestNewPurgeCommand(t *testing.T) {
	cmd := newPurgeCommand()

	assert.Equal(t, "purge <word>...", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("yes"))
}

func TestNewExportCommand(t *testing.T) {
	cmd := newExportCommand()

	assert.Equal(t, "export", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("format"))
	assert.NotNil(t, cmd.Flags().Lookup("out"))
}

func TestCollectWords(t *testing.T) {
	words, err := collectWords([]string{"Claim,", "lucid", "claim"}, "", "", "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"claim", "lucid"}, words)
}
