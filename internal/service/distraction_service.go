package service

import (
	"context"
	"fmt"
	"time"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/store"
)

// DistractionService manages distraction types and episode logs. New logs
// carry an owning TypeID; the app name is kept alongside so records written
// before the id relation existed still resolve.
type DistractionService struct {
	store  *store.Store
	events *EventService
}

func NewDistractionService(st *store.Store, events *EventService) *DistractionService {
	return &DistractionService{store: st, events: events}
}

func (s *DistractionService) Types(ctx context.Context) []model.DistractionType {
	return store.Get(ctx, s.store, store.KeyDistractionTypes, []model.DistractionType{})
}

func (s *DistractionService) Logs(ctx context.Context) []model.DistractionLog {
	return store.Get(ctx, s.store, store.KeyDistractionLogs, []model.DistractionLog{})
}

// GetOrCreateType returns the distraction type with the given name, creating
// it when missing.
func (s *DistractionService) GetOrCreateType(ctx context.Context, name string, now time.Time) (model.DistractionType, error) {
	if name == "" {
		return model.DistractionType{}, fmt.Errorf("distraction name is required")
	}

	types := s.Types(ctx)
	for _, t := range types {
		if t.Name == name {
			return t, nil
		}
	}

	created := model.DistractionType{
		ID:      model.NewID(now),
		Name:    name,
		Reasons: []string{"General"},
	}
	types = append(types, created)
	store.Set(ctx, s.store, store.KeyDistractionTypes, types)
	return created, nil
}

// AddReason appends a reason to a type, skipping duplicates.
func (s *DistractionService) AddReason(ctx context.Context, typeID, reason string) error {
	if reason == "" {
		return fmt.Errorf("reason is required")
	}
	types := s.Types(ctx)
	for i, t := range types {
		if t.ID != typeID {
			continue
		}
		for _, r := range t.Reasons {
			if r == reason {
				return nil
			}
		}
		types[i].Reasons = append(types[i].Reasons, reason)
		store.Set(ctx, s.store, store.KeyDistractionTypes, types)
		return nil
	}
	return fmt.Errorf("distraction type %q not found", typeID)
}

// LogDistraction records an episode for the named app, creating the type on
// first sight.
func (s *DistractionService) LogDistraction(ctx context.Context, app string, reasons []string, duration model.Minutes, now time.Time) (model.DistractionLog, error) {
	dtype, err := s.GetOrCreateType(ctx, app, now)
	if err != nil {
		return model.DistractionLog{}, err
	}

	entry := model.DistractionLog{
		ID:       model.NewID(now),
		TypeID:   dtype.ID,
		App:      dtype.Name,
		Reasons:  reasons,
		Duration: duration,
		Date:     now,
	}

	logs := s.Logs(ctx)
	logs = append(logs, entry)
	store.Set(ctx, s.store, store.KeyDistractionLogs, logs)

	s.events.Log(ctx, "distraction_log", map[string]any{
		"app":      entry.App,
		"reasons":  reasons,
		"duration": int(duration),
	}, now)
	return entry, nil
}

// ResolveType finds the type a log belongs to: by TypeID first, then by the
// denormalized name for legacy records.
func (s *DistractionService) ResolveType(ctx context.Context, entry model.DistractionLog) (model.DistractionType, bool) {
	types := s.Types(ctx)
	if entry.TypeID != "" {
		for _, t := range types {
			if t.ID == entry.TypeID {
				return t, true
			}
		}
	}
	for _, t := range types {
		if t.Name == entry.App {
			return t, true
		}
	}
	return model.DistractionType{}, false
}
