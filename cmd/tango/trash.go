package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "trash <word>...",
		Short: "Move words to the trash",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			for _, arg := range args {
				record, err := findRecord(store, arg)
				if err != nil {
					return err
				}
				trashed, err := store.Trash(ctx, record.ID)
				if err != nil {
					return fmt.Errorf("store.Trash() > %w", err)
				}
				if trashed {
					fmt.Printf("trashed %s\n", record.Word)
				} else {
					fmt.Printf("%s is already in the trash\n", record.Word)
				}
			}
			return nil
		},
	}
}

func newRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <word>...",
		Short: "Restore words from the trash",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			for _, arg := range args {
				record, err := findRecord(store, arg)
				if err != nil {
					return err
				}
				restored, err := store.Restore(ctx, record.ID)
				if err != nil {
					return fmt.Errorf("store.Restore() > %w", err)
				}
				if restored {
					fmt.Printf("restored %s\n", record.Word)
				} else {
					fmt.Printf("%s is not in the trash\n", record.Word)
				}
			}
			return nil
		},
	}
}

func newPurgeCommand() *cobra.Command {
	var confirmed bool
	command := &cobra.Command{
		Use:   "purge <word>...",
		Short: "Permanently delete words (no undo)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("purge is irreversible. Re-run with --yes to confirm")
			}

			ctx := cmd.Context()
			_, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			ids := make([]string, 0, len(args))
			for _, arg := range args {
				record, err := findRecord(store, arg)
				if err != nil {
					return err
				}
				ids = append(ids, record.ID)
			}
			purged, err := store.Purge(ctx, ids)
			if err != nil {
				return fmt.Errorf("store.Purge() > %w", err)
			}
			fmt.Printf("purged %d words\n", purged)
			return nil
		},
	}
	command.Flags().BoolVar(&confirmed, "yes", false, "confirm the irreversible deletion")
	return command
}
