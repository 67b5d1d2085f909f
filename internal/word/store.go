package word

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/at-ishikawa/tango/internal/storage"
)

const (
	itemsKey  = "tango_items_v1"
	backupKey = "tango_backup_v1"
)

// Backup is the rolling last-known-good snapshot written alongside the
// primary collection, usable for manual recovery.
type Backup struct {
	At    int64     `json:"at"`
	Items []*Record `json:"items"`
}

// Store is the single source of truth for all word records. Every mutation
// is executed under one mutex and persisted write-through as a full snapshot.
type Store struct {
	mu     sync.Mutex
	kv     storage.KV
	items  []*Record
	byWord map[string]*Record
	byID   map[string]*Record
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the store's time source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store backed by the given KV. Call Load before use.
func NewStore(kv storage.KV, opts ...StoreOption) *Store {
	s := &Store{
		kv:     kv,
		byWord: make(map[string]*Record),
		byID:   make(map[string]*Record),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads the persisted snapshot into memory. A missing snapshot leaves
// the store empty; a corrupt one is an error, since silently starting over
// would lose the collection.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, itemsKey)
	if err != nil {
		return fmt.Errorf("kv.Get(%s) > %w", itemsKey, err)
	}
	if !ok {
		return nil
	}

	var items []*Record
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return fmt.Errorf("json.Unmarshal(items) > %w", err)
	}
	s.items = items
	s.byWord = make(map[string]*Record, len(items))
	s.byID = make(map[string]*Record, len(items))
	for _, record := range items {
		if record.Fetch == nil {
			record.Fetch = newFieldStates()
		}
		// No job survives a restart, so a persisted pending state is stale.
		for key, state := range record.Fetch {
			if state.Status == FieldStatusPending {
				state.Status = FieldStatusIdle
				record.Fetch[key] = state
			}
		}
		s.byWord[record.Word] = record
		s.byID[record.ID] = record
	}
	return nil
}

// LoadBackup reads the rolling backup snapshot, if one exists.
func (s *Store) LoadBackup(ctx context.Context) (*Backup, bool, error) {
	raw, ok, err := s.kv.Get(ctx, backupKey)
	if err != nil {
		return nil, false, fmt.Errorf("kv.Get(%s) > %w", backupKey, err)
	}
	if !ok {
		return nil, false, nil
	}
	var backup Backup
	if err := json.Unmarshal([]byte(raw), &backup); err != nil {
		return nil, false, fmt.Errorf("json.Unmarshal(backup) > %w", err)
	}
	return &backup, true, nil
}

// RestoreFromBackup replaces the collection with the backup snapshot.
func (s *Store) RestoreFromBackup(ctx context.Context) (int, error) {
	backup, ok, err := s.LoadBackup(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("no backup snapshot found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = backup.Items
	s.byWord = make(map[string]*Record, len(backup.Items))
	s.byID = make(map[string]*Record, len(backup.Items))
	for _, record := range backup.Items {
		if record.Fetch == nil {
			record.Fetch = newFieldStates()
		}
		s.byWord[record.Word] = record
		s.byID[record.ID] = record
	}
	return len(backup.Items), s.persistLocked(ctx)
}

// persistLocked serializes the full collection write-through: primary
// snapshot first, then the backup envelope. The caller holds the lock.
// A crash between the two writes leaves the primary authoritative.
func (s *Store) persistLocked(ctx context.Context) error {
	items, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("json.Marshal(items) > %w", err)
	}
	if err := s.kv.Set(ctx, itemsKey, string(items)); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", itemsKey, err)
	}

	backup, err := json.Marshal(Backup{At: s.now().UnixMilli(), Items: s.items})
	if err != nil {
		return fmt.Errorf("json.Marshal(backup) > %w", err)
	}
	if err := s.kv.Set(ctx, backupKey, string(backup)); err != nil {
		return fmt.Errorf("kv.Set(%s) > %w", backupKey, err)
	}
	return nil
}

// Upsert normalizes raw input and creates a record for it, or merges into
// the existing record with the same normalized form. A trashed record is
// reactivated. Input that normalizes to "" is rejected silently: the
// returned record is nil and no error is raised.
func (s *Store) Upsert(ctx context.Context, raw string) (*Record, bool, error) {
	normalized := Normalize(raw)
	if normalized == "" {
		return nil, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.byWord[normalized]; ok {
		changed := false
		if existing.DeletedAt != 0 {
			existing.DeletedAt = 0
			changed = true
		}
		if existing.DueAt == 0 {
			existing.DueAt = s.now().UnixMilli()
			changed = true
		}
		if changed {
			if err := s.persistLocked(ctx); err != nil {
				return nil, false, err
			}
		}
		return existing.Clone(), false, nil
	}

	record := NewRecord(normalized, s.now())
	s.items = append(s.items, record)
	s.byWord[record.Word] = record
	s.byID[record.ID] = record
	if err := s.persistLocked(ctx); err != nil {
		return nil, false, err
	}
	return record.Clone(), true, nil
}

// Get returns a copy of the record for a normalized word.
func (s *Store) Get(raw string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byWord[Normalize(raw)]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

// GetByID returns a copy of the record with the given id.
func (s *Store) GetByID(id string) (*Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

// All returns copies of every record, active and trashed, in insertion order.
func (s *Store) All() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]*Record, 0, len(s.items))
	for _, record := range s.items {
		records = append(records, record.Clone())
	}
	return records
}

// Active returns copies of every non-deleted record in insertion order.
func (s *Store) Active() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]*Record, 0, len(s.items))
	for _, record := range s.items {
		if record.Active() {
			records = append(records, record.Clone())
		}
	}
	return records
}

// Trashed returns copies of every soft-deleted record.
func (s *Store) Trashed() []*Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]*Record, 0)
	for _, record := range s.items {
		if !record.Active() {
			records = append(records, record.Clone())
		}
	}
	return records
}

// Trash soft-deletes a record. Missing or already-trashed ids are no-ops.
func (s *Store) Trash(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byID[id]
	if !ok || record.DeletedAt != 0 {
		return false, nil
	}
	record.DeletedAt = s.now().UnixMilli()
	return true, s.persistLocked(ctx)
}

// Restore clears a record's soft-delete mark. Missing or active ids are no-ops.
func (s *Store) Restore(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byID[id]
	if !ok || record.DeletedAt == 0 {
		return false, nil
	}
	record.DeletedAt = 0
	return true, s.persistLocked(ctx)
}

// Purge removes records from storage entirely. This is the one operation
// with no undo; callers gate it behind explicit confirmation.
func (s *Store) Purge(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.byID[id]; ok {
			drop[id] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return 0, nil
	}

	kept := s.items[:0]
	for _, record := range s.items {
		if _, gone := drop[record.ID]; gone {
			delete(s.byID, record.ID)
			delete(s.byWord, record.Word)
			continue
		}
		kept = append(kept, record)
	}
	s.items = kept
	return len(drop), s.persistLocked(ctx)
}

// Update executes fn on the record with the given id under the store lock
// and persists the result. Returns false without calling fn if the record
// does not exist. This is the read-modify-write primitive the fetcher and
// the review scheduler build on.
func (s *Store) Update(ctx context.Context, id string, fn func(*Record)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.byID[id]
	if !ok {
		return false, nil
	}
	fn(record)
	record.Level = ClampLevel(record.Level)
	return true, s.persistLocked(ctx)
}

// SetNote replaces the free-text annotation on a record.
func (s *Store) SetNote(ctx context.Context, id, note string) (bool, error) {
	return s.Update(ctx, id, func(record *Record) {
		record.Note = note
	})
}

// SetTags replaces the user tag set on a record.
func (s *Store) SetTags(ctx context.Context, id string, tags []string) (bool, error) {
	return s.Update(ctx, id, func(record *Record) {
		record.Tags = append([]string(nil), tags...)
	})
}

// SetLevel sets the recall level, clamped to the legal range.
func (s *Store) SetLevel(ctx context.Context, id string, level int) (bool, error) {
	return s.Update(ctx, id, func(record *Record) {
		record.Level = ClampLevel(level)
	})
}

// ResetDue is the one sanctioned way to move a due date backward: it makes
// the record due immediately.
func (s *Store) ResetDue(ctx context.Context, id string) (bool, error) {
	now := s.now().UnixMilli()
	return s.Update(ctx, id, func(record *Record) {
		record.DueAt = now
	})
}
