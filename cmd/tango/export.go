package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/tango/internal/word"
)

func newExportCommand() *cobra.Command {
	var format string
	var outFile string
	command := &cobra.Command{
		Use:   "export",
		Short: "Export the full collection, trash included",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			contents, err := store.Export(word.ExportFormat(format))
			if err != nil {
				return fmt.Errorf("store.Export() > %w", err)
			}
			if outFile == "" {
				fmt.Print(string(contents))
				return nil
			}
			if err := os.WriteFile(outFile, contents, 0644); err != nil {
				return fmt.Errorf("os.WriteFile() > %w", err)
			}
			fmt.Printf("exported to %s\n", outFile)
			return nil
		},
	}
	command.Flags().StringVar(&format, "format", string(word.ExportJSON), "output format: json or yaml")
	command.Flags().StringVar(&outFile, "out", "", "output file (stdout when empty)")
	return command
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a JSON export, merging by word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			contents, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("os.ReadFile() > %w", err)
			}
			result, err := store.Import(ctx, contents)
			if err != nil {
				return fmt.Errorf("store.Import() > %w", err)
			}
			fmt.Printf("imported: %d added, %d merged, %d skipped\n", result.Added, result.Merged, result.Skipped)
			return nil
		},
	}
}
