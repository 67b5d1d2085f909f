package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/tango/internal/word"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			active := store.Active()
			now := time.Now()
			due := 0
			levels := map[int]int{}
			missing := map[word.FieldKey]int{}
			failed := map[word.FieldKey]int{}
			for _, record := range active {
				if record.IsDue(now) {
					due++
				}
				levels[record.Level]++
				for _, field := range word.AllFieldKeys {
					switch record.FieldStatusOf(field) {
					case word.FieldStatusFail:
						failed[field]++
					case word.FieldStatusIdle, word.FieldStatusPending:
						missing[field]++
					}
				}
			}

			fmt.Printf("words: %d active, %d trashed\n", len(active), len(store.Trashed()))
			fmt.Printf("due now: %d\n", due)
			for level := word.MinLevel; level <= word.MaxLevel; level++ {
				fmt.Printf("level %d: %d\n", level, levels[level])
			}
			for _, field := range word.AllFieldKeys {
				fmt.Printf("%s: %d missing, %d failed\n", field, missing[field], failed[field])
			}
			return nil
		},
	}
}

func newRecoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recover",
		Short: "Replace the collection with the last backup snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			count, err := store.RestoreFromBackup(ctx)
			if err != nil {
				return fmt.Errorf("store.RestoreFromBackup() > %w", err)
			}
			fmt.Printf("recovered %d words from the backup snapshot\n", count)
			return nil
		},
	}
}
