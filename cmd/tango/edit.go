package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newNoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "note <word> [text...]",
		Short: "Set or clear the note on a word",
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

			record, err := findRecord(store, args[0])
			if err != nil {
				return err
			}
			note := strings.Join(args[1:], " ")
			if _, err := store.SetNote(ctx, record.ID, note); err != nil {
				return fmt.Errorf("store.SetNote() > %w", err)
			}
			if note == "" {
				fmt.Printf("cleared the note on %s\n", record.Word)
			} else {
				fmt.Printf("noted %s\n", record.Word)
			}
			return nil
		},
	}
}

func newTagCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <word> [tags...]",
		Short: "Replace the tags on a word",
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

			record, err := findRecord(store, args[0])
			if err != nil {
				return err
			}
			tags := make([]string, 0, len(args)-1)
			for _, tag := range args[1:] {
				tags = append(tags, strings.ToLower(strings.TrimPrefix(tag, "#")))
			}
			if _, err := store.SetTags(ctx, record.ID, tags); err != nil {
				return fmt.Errorf("store.SetTags() > %w", err)
			}
			fmt.Printf("tagged %s: %s\n", record.Word, strings.Join(tags, ", "))
			return nil
		},
	}
}
