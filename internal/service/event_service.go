package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/store"
	"productivity-ledger/internal/sync"
)

// Identity reports the signed-in user, empty when running locally.
type Identity interface {
	CurrentUser() string
}

// localUser tags events recorded before any sign-in.
const localUser = "local_user"

// overrideTimeOfDayKey lets callers pin the time-of-day bucket instead of
// deriving it from the clock (the mood selector asks "how was your
// morning?"). The key is stripped from the stored payload.
const overrideTimeOfDayKey = "overrideTimeOfDay"

// defaultMood is recorded when the user never picked one.
const defaultMood = "neutral"

// EventService appends audit events and ships unsynced ones to the remote
// store. Events are immutable; only the local synced flag ever changes.
type EventService struct {
	store    *store.Store
	identity Identity
	remote   sync.Remote
}

// NewEventService builds the service. identity and remote may be nil for a
// purely local setup; events then accumulate unsynced.
func NewEventService(st *store.Store, identity Identity, remote sync.Remote) *EventService {
	return &EventService{store: st, identity: identity, remote: remote}
}

// Log appends one event and returns it.
func (s *EventService) Log(ctx context.Context, eventType string, payload map[string]any, now time.Time) model.Event {
	bucket := model.BucketFor(now)
	cleaned := make(map[string]any, len(payload))
	for k, v := range payload {
		if k == overrideTimeOfDayKey {
			if override, ok := v.(model.TimeOfDay); ok {
				bucket = override
			} else if override, ok := v.(string); ok {
				bucket = model.TimeOfDay(override)
			}
			continue
		}
		cleaned[k] = v
	}

	userID := localUser
	if s.identity != nil {
		if uid := s.identity.CurrentUser(); uid != "" {
			userID = uid
		}
	}

	event := model.Event{
		EventID:    uuid.NewString(),
		UserID:     userID,
		Timestamp:  now,
		Date:       model.LocalDate(now),
		TimeOfDay:  bucket,
		EventType:  eventType,
		MoodBefore: store.Get(ctx, s.store, store.KeyUserMood, defaultMood),
		Payload:    cleaned,
		Synced:     false,
	}

	events := store.Get(ctx, s.store, store.KeyEventLog, []model.Event{})
	events = append(events, event)
	store.Set(ctx, s.store, store.KeyEventLog, events)
	return event
}

// Events returns the full audit log.
func (s *EventService) Events(ctx context.Context) []model.Event {
	return store.Get(ctx, s.store, store.KeyEventLog, []model.Event{})
}

// remoteEvent is the uploaded shape: everything except the local-only
// synced flag.
type remoteEvent struct {
	EventID    string          `json:"event_id"`
	UserID     string          `json:"user_id"`
	Timestamp  time.Time       `json:"timestamp"`
	Date       string          `json:"date"`
	TimeOfDay  model.TimeOfDay `json:"time_of_day"`
	EventType  string          `json:"event_type"`
	MoodBefore string          `json:"mood_before"`
	Payload    map[string]any  `json:"payload,omitempty"`
}

// SyncEvents ships unsynced events to the remote store and marks them synced
// locally. A no-op without a signed-in identity or a remote.
func (s *EventService) SyncEvents(ctx context.Context) error {
	if s.remote == nil || s.identity == nil {
		return nil
	}
	userID := s.identity.CurrentUser()
	if userID == "" {
		return nil
	}

	events := s.Events(ctx)
	batch := make(map[string]string)
	for _, e := range events {
		if e.Synced {
			continue
		}
		payload, err := json.Marshal(remoteEvent{
			EventID:    e.EventID,
			UserID:     e.UserID,
			Timestamp:  e.Timestamp,
			Date:       e.Date,
			TimeOfDay:  e.TimeOfDay,
			EventType:  e.EventType,
			MoodBefore: e.MoodBefore,
			Payload:    e.Payload,
		})
		if err != nil {
			return fmt.Errorf("serialize event %s: %w", e.EventID, err)
		}
		batch[e.EventID] = string(payload)
	}
	if len(batch) == 0 {
		return nil
	}

	if err := s.remote.SaveEvents(ctx, userID, batch); err != nil {
		return fmt.Errorf("sync events: %w", err)
	}

	for i := range events {
		if _, ok := batch[events[i].EventID]; ok {
			events[i].Synced = true
		}
	}
	store.Set(ctx, s.store, store.KeyEventLog, events)
	return nil
}
