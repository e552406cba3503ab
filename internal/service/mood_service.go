package service

import (
	"context"
	"time"

	"productivity-ledger/internal/store"
)

// MoodService tracks the user's current mood tag. Events snapshot it as
// mood_before, and task suggestion filters on it.
type MoodService struct {
	store  *store.Store
	events *EventService
}

func NewMoodService(st *store.Store, events *EventService) *MoodService {
	return &MoodService{store: st, events: events}
}

func (s *MoodService) Current(ctx context.Context) string {
	return store.Get(ctx, s.store, store.KeyUserMood, defaultMood)
}

func (s *MoodService) Set(ctx context.Context, mood string, now time.Time) {
	// Log first so mood_before captures the outgoing mood.
	s.events.Log(ctx, "mood_update", map[string]any{"mood": mood}, now)
	store.Set(ctx, s.store, store.KeyUserMood, mood)
}
