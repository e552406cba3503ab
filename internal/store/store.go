package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"productivity-ledger/internal/repository"
)

// SetHook observes successful writes. Hooks receive the serialized payload so
// observers (the cloud reconciler) never share mutable state with callers.
type SetHook func(key Key, serialized string)

// Store is the typed keyed store over the local record table. Reads never
// fail: a missing or corrupt payload yields the caller's default. Writes
// persist synchronously; persistence failures are logged and the write is
// dropped rather than surfaced, so local storage trouble never blocks the
// user's current action.
type Store struct {
	records *repository.RecordRepository
	hooks   []SetHook
}

func New(records *repository.RecordRepository) *Store {
	return &Store{records: records}
}

// OnSet registers a hook fired after every successful Set. Not safe to call
// once writes have started; wire hooks during startup.
func (s *Store) OnSet(h SetHook) {
	s.hooks = append(s.hooks, h)
}

// Get decodes the value under key into T, returning def when the key is
// absent or the payload does not parse. Corruption is logged and treated as
// absence.
func Get[T any](ctx context.Context, s *Store, key Key, def T) T {
	raw, err := s.records.Get(ctx, string(key))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("store: read %s: %v", key, err)
		}
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("store: corrupt payload at %s, using default: %v", key, err)
		return def
	}
	return v
}

// Set serializes value, persists it under key, and fires the set hooks.
func Set(ctx context.Context, s *Store, key Key, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("store: serialize %s: %v", key, err)
		return
	}
	if err := s.records.Put(ctx, string(key), string(raw)); err != nil {
		log.Printf("store: write %s dropped: %v", key, err)
		return
	}
	for _, h := range s.hooks {
		h(key, string(raw))
	}
}

// Raw returns the serialized payload under key, if present. Used when
// snapshotting local state for a first cloud link.
func (s *Store) Raw(ctx context.Context, key Key) (string, bool) {
	raw, err := s.records.Get(ctx, string(key))
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("store: read %s: %v", key, err)
		}
		return "", false
	}
	return raw, true
}

// Restore persists a serialized payload without firing set hooks. The
// sign-in pull uses it so remote overwrites do not echo back as pushes.
func (s *Store) Restore(ctx context.Context, key Key, serialized string) error {
	return s.records.Put(ctx, string(key), serialized)
}

// Clear removes every key in the namespace.
func (s *Store) Clear(ctx context.Context) error {
	for _, key := range AllKeys() {
		if err := s.records.Delete(ctx, string(key)); err != nil {
			return err
		}
	}
	return nil
}
