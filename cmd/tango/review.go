package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/tango/internal/cli"
	"github.com/at-ishikawa/tango/internal/review"
)

func newReviewCommand() *cobra.Command {
	var scope string
	var level string
	var order string
	var count int
	command := &cobra.Command{
		Use:   "review",
		Short: "Start an interactive flashcard session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, store, closeStore, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeStore()
			}()

			deckConfig := review.DeckConfig{
				Scope: review.Scope(scope),
				Level: review.LevelFilter(level),
				Order: review.Order(order),
				Limit: count,
			}
			if deckConfig.Limit == 0 {
				deckConfig.Limit = cfg.Review.DeckSize
			}
			if err := review.ValidateDeckConfig(deckConfig); err != nil {
				return err
			}

			deck := review.BuildDeck(store.Active(), deckConfig, time.Now())
			if len(deck) == 0 {
				fmt.Println("no cards to review")
				return nil
			}

			reviewCLI := cli.NewReviewCLI(store, cfg.Review.Intervals)
			return reviewCLI.Run(ctx, review.NewSession(deck))
		},
	}
	command.Flags().StringVar(&scope, "scope", string(review.ScopeDue), "which records to include: all or due")
	command.Flags().StringVar(&level, "level", string(review.LevelAll), "level filter: all, 0, le1 or le2")
	command.Flags().StringVar(&order, "order", string(review.OrderShuffle), "deck order: shuffle, due, new or input")
	command.Flags().IntVar(&count, "count", 0, "session size (defaults to the configured deck size)")
	return command
}
