package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/tango/internal/word"
	"github.com/at-ishikawa/tango/internal/xlsx"
)

func newAddCommand() *cobra.Command {
	var fromFile string
	var fromXLSX string
	var xlsxSheet string
	command := &cobra.Command{
		Use:   "add [words...]",
		Short: "Add words and fetch their definitions and translations",
		Long: strings.TrimSpace(`
Add words from arguments, a text file (--file), a spreadsheet (--xlsx), or
stdin. Words are normalized and deduplicated; a word that already exists is
reused instead of duplicated. Every added word is enriched over the network
before the command returns.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			words, err := collectWords(args, fromFile, fromXLSX, xlsxSheet)
			if err != nil {
				return err
			}
			if len(words) == 0 {
				return fmt.Errorf("no words given")
			}

			cfg, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			fetcher := newFetcher(cfg, store)
			ids := make([]string, 0, len(words))
			for _, raw := range words {
				record, created, err := store.Upsert(ctx, raw)
				if err != nil {
					return fmt.Errorf("store.Upsert() > %w", err)
				}
				if record == nil {
					fmt.Printf("skipped %q: empty after normalization\n", raw)
					continue
				}
				if created {
					fmt.Printf("added %s\n", record.Word)
				} else {
					fmt.Printf("exists %s\n", record.Word)
				}
				ids = append(ids, record.ID)
				fetcher.EnqueueFor(record.ID, word.AllFieldKeys)
			}

			if err := drainWithProgress(ctx, fetcher); err != nil {
				return fmt.Errorf("fetcher.Drain() > %w", err)
			}

			for _, id := range ids {
				record, found := store.GetByID(id)
				if !found {
					continue
				}
				fmt.Printf("%s: %s\n", record.Word, fieldOutcomes(record))
			}
			return nil
		},
	}
	command.Flags().StringVar(&fromFile, "file", "", "text file with words")
	command.Flags().StringVar(&fromXLSX, "xlsx", "", "spreadsheet with words in the first column")
	command.Flags().StringVar(&xlsxSheet, "sheet", "", "sheet name to read (default: first sheet)")
	return command
}

func collectWords(args []string, fromFile, fromXLSX, xlsxSheet string) ([]string, error) {
	var words []string
	if len(args) > 0 {
		words = append(words, word.SplitWords(strings.Join(args, " "))...)
	}
	if fromFile != "" {
		contents, err := os.ReadFile(fromFile)
		if err != nil {
			return nil, fmt.Errorf("os.ReadFile() > %w", err)
		}
		words = append(words, word.SplitWords(string(contents))...)
	}
	if fromXLSX != "" {
		sheetWords, err := xlsx.ReadWords(fromXLSX, xlsxSheet)
		if err != nil {
			return nil, fmt.Errorf("xlsx.ReadWords() > %w", err)
		}
		words = append(words, sheetWords...)
	}

	// With no other source, read a pasted list from stdin.
	if len(words) == 0 {
		stat, err := os.Stdin.Stat()
		if err == nil && stat.Mode()&os.ModeCharDevice == 0 {
			contents, err := io.ReadAll(os.Stdin)
			if err != nil {
				return nil, fmt.Errorf("io.ReadAll(stdin) > %w", err)
			}
			words = append(words, word.SplitWords(string(contents))...)
		}
	}
	return words, nil
}

// fieldOutcomes renders a one-line status marker per enrichment field.
func fieldOutcomes(record *word.Record) string {
	markers := make([]string, 0, len(word.AllFieldKeys))
	for _, field := range word.AllFieldKeys {
		switch record.FieldStatusOf(field) {
		case word.FieldStatusOK:
			markers = append(markers, color.GreenString("%s ok", field))
		case word.FieldStatusFail:
			markers = append(markers, color.RedString("%s fail", field))
		default:
			markers = append(markers, fmt.Sprintf("%s %s", field, record.FieldStatusOf(field)))
		}
	}
	return strings.Join(markers, ", ")
}
