// Package fetch enriches vocabulary records over HTTP through a bounded
// in-process job queue.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/at-ishikawa/tango/internal/fetch/dictapi"
	"github.com/at-ishikawa/tango/internal/word"
)

// Job is one queued enrichment attempt for a single record field.
type Job struct {
	RecordID string
	Field    word.FieldKey
	Tries    int
}

func (j Job) key() string {
	return j.RecordID + ":" + string(j.Field)
}

// Stats is a point-in-time snapshot of queue progress. OK and Fail are
// cumulative over the fetcher's lifetime.
type Stats struct {
	Waiting int
	Running int
	OK      int
	Fail    int
}

// Config bounds the queue's concurrency and per-attempt behavior.
type Config struct {
	Concurrency int           `yaml:"concurrency" mapstructure:"concurrency" validate:"min=1"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"min=0"`
	MaxRetries  int           `yaml:"max_retries" mapstructure:"max_retries" validate:"min=0"`
}

// DefaultConfig returns the queue settings used when no configuration file
// overrides them.
func DefaultConfig() Config {
	return Config{
		Concurrency: 2,
		Timeout:     8 * time.Second,
		MaxRetries:  2,
	}
}

// Fetcher runs enrichment jobs against the dictionary and translation
// clients, at most Concurrency at a time, in FIFO order.
type Fetcher struct {
	config      Config
	store       *word.Store
	dictionary  DictionaryClient
	translation TranslationClient
	logger      *slog.Logger
	now         func() time.Time

	mu      sync.Mutex
	waiting []Job
	cancels map[string]context.CancelFunc
	ok      int
	fail    int
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(f *Fetcher) {
		f.now = now
	}
}

// NewFetcher creates an idle queue. Jobs only run once enqueued.
func NewFetcher(config Config, store *word.Store, dictionary DictionaryClient, translation TranslationClient, logger *slog.Logger, opts ...Option) *Fetcher {
	fetcher := &Fetcher{
		config:      config,
		store:       store,
		dictionary:  dictionary,
		translation: translation,
		logger:      logger,
		now:         time.Now,
		cancels:     map[string]context.CancelFunc{},
	}
	for _, opt := range opts {
		opt(fetcher)
	}
	return fetcher
}

// Stats returns a snapshot of the queue.
func (f *Fetcher) Stats() Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Stats{
		Waiting: len(f.waiting),
		Running: len(f.cancels),
		OK:      f.ok,
		Fail:    f.fail,
	}
}

// needsFetch reports whether a field should be (re)fetched under the given
// filter. A pending field is already queued or running and an ok field keeps
// its result for good.
func needsFetch(status word.FieldStatus, failedOnly bool) bool {
	switch status {
	case word.FieldStatusPending, word.FieldStatusOK:
		return false
	case word.FieldStatusFail:
		return true
	}
	return !failedOnly
}

// EnqueueFor queues the given fields of one record, skipping fields that are
// already ok or in flight. It returns how many jobs were queued.
func (f *Fetcher) EnqueueFor(recordID string, fields []word.FieldKey) int {
	return f.enqueue(recordID, fields, false)
}

// EnqueueMissingAll queues every idle or failed field of every active record.
func (f *Fetcher) EnqueueMissingAll() int {
	queued := 0
	for _, record := range f.store.Active() {
		queued += f.enqueue(record.ID, word.AllFieldKeys, false)
	}
	return queued
}

// EnqueueFailedOnly re-queues only fields whose last attempt failed.
func (f *Fetcher) EnqueueFailedOnly() int {
	queued := 0
	for _, record := range f.store.Active() {
		queued += f.enqueue(record.ID, word.AllFieldKeys, true)
	}
	return queued
}

func (f *Fetcher) enqueue(recordID string, fields []word.FieldKey, failedOnly bool) int {
	record, found := f.store.GetByID(recordID)
	if !found || !record.Active() {
		return 0
	}

	queued := 0
	for _, field := range fields {
		if !needsFetch(record.FieldStatusOf(field), failedOnly) {
			continue
		}
		if _, err := f.store.Update(context.Background(), recordID, func(r *word.Record) {
			r.MarkField(field, word.FieldStatusPending, "", f.now())
		}); err != nil {
			f.logger.Error("failed to mark a field pending", "id", recordID, "field", field, "error", err)
			continue
		}

		f.mu.Lock()
		f.waiting = append(f.waiting, Job{RecordID: recordID, Field: field})
		f.mu.Unlock()
		queued++
	}
	if queued > 0 {
		f.pump()
	}
	return queued
}

// pump starts waiting jobs until the concurrency limit is reached. Each job
// re-checks record liveness at pop time because records can be trashed or
// purged while queued.
func (f *Fetcher) pump() {
	for {
		f.mu.Lock()
		if len(f.cancels) >= f.config.Concurrency || len(f.waiting) == 0 {
			f.mu.Unlock()
			return
		}
		job := f.waiting[0]
		f.waiting = f.waiting[1:]

		record, found := f.store.GetByID(job.RecordID)
		if !found || !record.Active() {
			f.mu.Unlock()
			f.discard(job, found)
			continue
		}
		if record.FieldStatusOf(job.Field) != word.FieldStatusPending {
			// Canceled or completed while waiting.
			f.mu.Unlock()
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), f.config.Timeout)
		f.cancels[job.key()] = cancel
		f.mu.Unlock()

		go f.run(ctx, cancel, job, record)
	}
}

// discard drops a job whose record vanished from the active set. The field is
// still marked failed when the record survives in the trash so it never gets
// stuck pending.
func (f *Fetcher) discard(job Job, recordExists bool) {
	if !recordExists {
		return
	}
	f.markFail(job, "canceled")
}

func (f *Fetcher) run(ctx context.Context, cancel context.CancelFunc, job Job, record *word.Record) {
	defer func() {
		cancel()
		f.mu.Lock()
		delete(f.cancels, job.key())
		f.mu.Unlock()
		f.pump()
	}()

	text, extract, err := f.fetchField(ctx, job.Field, record)
	if err != nil {
		f.finishError(ctx, job, err)
		return
	}
	if text == "" {
		f.markFail(job, fmt.Sprintf("%s_empty", job.Field))
		return
	}

	if _, err := f.store.Update(context.Background(), job.RecordID, func(r *word.Record) {
		r.SetFieldText(job.Field, text)
		r.MarkField(job.Field, word.FieldStatusOK, "", f.now())
		if extract != nil {
			if r.Phonetic == "" && extract.Phonetic != "" {
				r.Phonetic = extract.Phonetic
			}
			r.MergeAutoTags(extract.PartsOfSpeech)
		}
	}); err != nil {
		f.logger.Error("failed to save a fetched field", "id", job.RecordID, "field", job.Field, "error", err)
		return
	}

	f.mu.Lock()
	f.ok++
	f.mu.Unlock()
	f.logger.Debug("fetched a field", "word", record.Word, "field", job.Field)
}

// maxTranslationInput caps how much definition text is sent to the
// translation API. Long inputs get truncated responses from the free tier.
const maxTranslationInput = 140

// translationInput prefers the record's definition over the bare word so the
// translation carries the word's sense, not just its surface form.
func translationInput(record *word.Record) string {
	input := record.DefText
	if input == "" {
		input = record.Word
	}
	if len(input) > maxTranslationInput {
		input = input[:maxTranslationInput]
	}
	return input
}

// fetchField runs the HTTP call backing one field. Dictionary-backed fields
// also return the full extract so phonetics and auto tags can be merged in.
func (f *Fetcher) fetchField(ctx context.Context, field word.FieldKey, record *word.Record) (string, *dictapi.Extract, error) {
	if field == word.FieldTranslation {
		translated, err := f.translation.Translate(ctx, translationInput(record))
		return translated, nil, err
	}

	extract, err := f.dictionary.Lookup(ctx, record.Word)
	if err != nil {
		return "", nil, err
	}
	switch field {
	case word.FieldDefinition:
		return extract.DefText(), &extract, nil
	case word.FieldSynonyms:
		return extract.SynText(), &extract, nil
	case word.FieldExample:
		return extract.Example, &extract, nil
	}
	return "", nil, fmt.Errorf("unknown field %q", field)
}

// finishError decides between re-queueing and a terminal failure. A job
// canceled through CancelRecord never retries.
func (f *Fetcher) finishError(ctx context.Context, job Job, err error) {
	if errors.Is(ctx.Err(), context.Canceled) {
		f.markFail(job, "canceled")
		return
	}
	if job.Tries < f.config.MaxRetries {
		f.logger.Debug("retrying a fetch", "id", job.RecordID, "field", job.Field, "tries", job.Tries+1, "error", err)
		f.mu.Lock()
		f.waiting = append(f.waiting, Job{RecordID: job.RecordID, Field: job.Field, Tries: job.Tries + 1})
		f.mu.Unlock()
		return
	}
	f.markFail(job, err.Error())
}

func (f *Fetcher) markFail(job Job, message string) {
	if _, err := f.store.Update(context.Background(), job.RecordID, func(r *word.Record) {
		r.MarkField(job.Field, word.FieldStatusFail, message, f.now())
	}); err != nil {
		f.logger.Error("failed to mark a field failed", "id", job.RecordID, "field", job.Field, "error", err)
	}
	f.mu.Lock()
	f.fail++
	f.mu.Unlock()
	f.logger.Debug("fetch failed", "id", job.RecordID, "field", job.Field, "error", message)
}

// CancelRecord drops every queued job for a record and interrupts its running
// jobs. Affected fields are marked failed so a later fetch can retry them.
func (f *Fetcher) CancelRecord(recordID string) int {
	prefix := recordID + ":"

	f.mu.Lock()
	kept := f.waiting[:0]
	var dropped []Job
	for _, job := range f.waiting {
		if job.RecordID == recordID {
			dropped = append(dropped, job)
			continue
		}
		kept = append(kept, job)
	}
	f.waiting = kept

	canceled := 0
	for key, cancel := range f.cancels {
		if strings.HasPrefix(key, prefix) {
			cancel()
			canceled++
		}
	}
	f.mu.Unlock()

	for _, job := range dropped {
		f.markFail(job, "canceled")
	}
	return len(dropped) + canceled
}

// Drain blocks until the queue is empty and no job is running, or the
// context expires.
func (f *Fetcher) Drain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		stats := f.Stats()
		if stats.Waiting == 0 && stats.Running == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
