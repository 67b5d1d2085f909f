package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/at-ishikawa/tango/internal/config"
	"github.com/at-ishikawa/tango/internal/fetch"
	"github.com/at-ishikawa/tango/internal/storage"
	"github.com/at-ishikawa/tango/internal/word"
)

// openStore loads the configuration, opens the database and reads the word
// snapshot into memory. The returned closer releases the database handle.
func openStore(ctx context.Context) (*config.Config, *word.Store, func() error, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("config.Load() > %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.Path), 0755); err != nil {
		return nil, nil, nil, fmt.Errorf("os.MkdirAll() > %w", err)
	}
	db, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("storage.Open() > %w", err)
	}

	store := word.NewStore(storage.NewDBKV(db))
	if err := store.Load(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("store.Load() > %w", err)
	}
	return cfg, store, db.Close, nil
}

func newFetcher(cfg *config.Config, store *word.Store) *fetch.Fetcher {
	dictionaryClient := fetch.NewHTTPDictionaryClient(cfg.Dictionary.BaseURL, cfg.Dictionary.CacheDirectory)
	translationClient := fetch.NewHTTPTranslationClient(cfg.Translation.BaseURL, cfg.Translation.LangPair, cfg.Translation.RetryAttempts)
	return fetch.NewFetcher(cfg.Fetch, store, dictionaryClient, translationClient, slog.Default())
}

// drainWithProgress waits for the queue to empty while refreshing a one-line
// counter display.
func drainWithProgress(ctx context.Context, fetcher *fetch.Fetcher) error {
	done := make(chan error, 1)
	go func() {
		done <- fetcher.Drain(ctx)
	}()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			stats := fetcher.Stats()
			fmt.Printf("\rwaiting: %d running: %d ok: %d fail: %d\n", stats.Waiting, stats.Running, stats.OK, stats.Fail)
			return err
		case <-ticker.C:
			stats := fetcher.Stats()
			fmt.Printf("\rwaiting: %d running: %d ok: %d fail: %d", stats.Waiting, stats.Running, stats.OK, stats.Fail)
		}
	}
}

// findRecord resolves a CLI argument to a record by word, falling back to a
// record id so trashed duplicates stay addressable.
func findRecord(store *word.Store, arg string) (*word.Record, error) {
	if record, found := store.Get(arg); found {
		return record, nil
	}
	if record, found := store.GetByID(arg); found {
		return record, nil
	}
	return nil, fmt.Errorf("no record for %q", arg)
}
