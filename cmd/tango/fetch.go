package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFetchCommand() *cobra.Command {
	command := &cobra.Command{
		Use:       "fetch (missing|failed)",
		Short:     "Fetch enrichment data for words that still need it",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"missing", "failed"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			fetcher := newFetcher(cfg, store)
			var queued int
			if args[0] == "failed" {
				queued = fetcher.EnqueueFailedOnly()
			} else {
				queued = fetcher.EnqueueMissingAll()
			}
			if queued == 0 {
				fmt.Println("nothing to fetch")
				return nil
			}

			fmt.Printf("queued %d jobs\n", queued)
			if err := drainWithProgress(ctx, fetcher); err != nil {
				return fmt.Errorf("fetcher.Drain() > %w", err)
			}
			return nil
		},
	}
	return command
}
