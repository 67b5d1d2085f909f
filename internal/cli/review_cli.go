// Package cli contains the interactive review session loop.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/tango/internal/review"
	"github.com/at-ishikawa/tango/internal/word"
)

var errEnd = errors.New("end of session")

// ReviewCLI drives one flashcard session over stdin/stdout.
type ReviewCLI struct {
	store     *word.Store
	intervals review.Intervals

	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	bold         *color.Color
	italic       *color.Color
	now          func() time.Time
}

// NewReviewCLI creates a session runner bound to the process stdin/stdout.
func NewReviewCLI(store *word.Store, intervals review.Intervals) *ReviewCLI {
	return &ReviewCLI{
		store:        store,
		intervals:    intervals,
		stdinReader:  bufio.NewReader(os.Stdin),
		stdoutWriter: os.Stdout,
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		now:          time.Now,
	}
}

// Run walks the session until the deck is exhausted, the user quits, or an
// interrupt arrives. The end-of-session summary is always printed.
func (cli *ReviewCLI) Run(ctx context.Context, session *review.Session) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := cli.step(ctx, session); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}

	summary := session.Summarize()
	fmt.Fprintf(cli.stdoutWriter, "Session finished: %d shown, %d rated\n", summary.Shown, summary.Rated)
	return nil
}

func (cli *ReviewCLI) step(ctx context.Context, session *review.Session) error {
	record, ok := session.Current()
	if !ok {
		return errEnd
	}

	if !session.Revealed() {
		fmt.Fprintf(cli.stdoutWriter, "\n[%d/%d] ", session.Position(), session.Size())
		if _, err := cli.bold.Fprint(cli.stdoutWriter, record.Word); err != nil {
			return fmt.Errorf("bold.Fprint() > %w", err)
		}
		if record.Phonetic != "" {
			fmt.Fprintf(cli.stdoutWriter, "  %s", record.Phonetic)
		}
		fmt.Fprintln(cli.stdoutWriter)
		fmt.Fprint(cli.stdoutWriter, "enter: reveal, 1-4: again/hard/good/easy, s: skip, q: quit > ")
	} else {
		fmt.Fprint(cli.stdoutWriter, "1-4: again/hard/good/easy, s: skip, q: quit > ")
	}

	line, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errEnd
		}
		return fmt.Errorf("stdinReader.ReadString() > %w", err)
	}

	switch input := strings.TrimSpace(line); input {
	case "":
		session.Reveal()
		cli.printAnswer(record)
	case "s", "n":
		session.Skip()
	case "q":
		return errEnd
	default:
		rating, err := review.ParseRating(input)
		if err != nil {
			fmt.Fprintln(cli.stdoutWriter, err.Error())
			return nil
		}
		return cli.rate(ctx, session, rating)
	}
	return nil
}

// rate scores the current card. The session reveals the answer before the
// rating applies, so the recall is always verified against the shown answer.
func (cli *ReviewCLI) rate(ctx context.Context, session *review.Session, rating review.Rating) error {
	wasRevealed := session.Revealed()
	record, ok := session.Rate()
	if !ok {
		return errEnd
	}
	if !wasRevealed {
		cli.printAnswer(record)
	}

	if _, err := cli.store.Update(ctx, record.ID, func(r *word.Record) {
		review.ApplyRating(r, rating, cli.intervals, cli.now())
	}); err != nil {
		return fmt.Errorf("store.Update() > %w", err)
	}

	updated, found := cli.store.GetByID(record.ID)
	if found {
		due := time.UnixMilli(updated.DueAt).Format("2006-01-02 15:04")
		fmt.Fprintf(cli.stdoutWriter, "rated %s: level %d, due %s\n", rating, updated.Level, due)
	}
	return nil
}

func (cli *ReviewCLI) printAnswer(record *word.Record) {
	if _, err := cli.bold.Fprintln(cli.stdoutWriter, record.JaText); err != nil {
		return
	}
	if record.DefText != "" {
		_, _ = cli.italic.Fprintln(cli.stdoutWriter, record.DefText)
	}
	if record.SynText != "" {
		fmt.Fprintf(cli.stdoutWriter, "synonyms: %s\n", record.SynText)
	}
	if record.ExText != "" {
		fmt.Fprintf(cli.stdoutWriter, "example: %s\n", record.ExText)
	}
	if record.Note != "" {
		fmt.Fprintf(cli.stdoutWriter, "note: %s\n", record.Note)
	}
}
