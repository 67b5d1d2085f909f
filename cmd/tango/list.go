package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/tango/internal/word"
)

func newListCommand() *cobra.Command {
	var showTrash bool
	command := &cobra.Command{
		Use:   "list [query]",
		Short: "List words, optionally filtered by #tags and text",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			_, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			if showTrash {
				for _, record := range store.Trashed() {
					deleted := time.UnixMilli(record.DeletedAt).Format("2006-01-02")
					fmt.Printf("%s\t%s\ttrashed %s\n", record.ID, record.Word, deleted)
				}
				return nil
			}

			query := word.ParseQuery(strings.Join(args, " "))
			records := query.Filter(store.Active())
			now := time.Now()
			for _, record := range records {
				fmt.Println(listLine(record, now))
			}
			fmt.Printf("%d words\n", len(records))
			return nil
		},
	}
	command.Flags().BoolVar(&showTrash, "trash", false, "list trashed records instead")
	return command
}

func listLine(record *word.Record, now time.Time) string {
	columns := []string{}
	if record.IsDue(now) {
		columns = append(columns, color.New(color.Bold).Sprint(record.Word))
	} else {
		columns = append(columns, record.Word)
	}
	columns = append(columns, fmt.Sprintf("L%d", record.Level))
	columns = append(columns, record.JaText)

	var failed []string
	for _, field := range word.AllFieldKeys {
		if record.FieldStatusOf(field) == word.FieldStatusFail {
			failed = append(failed, string(field))
		}
	}
	if len(failed) > 0 {
		columns = append(columns, color.RedString("!%s", strings.Join(failed, ",")))
	}
	if len(record.Tags) > 0 {
		columns = append(columns, "#"+strings.Join(record.Tags, " #"))
	}
	return strings.Join(columns, "\t")
}
