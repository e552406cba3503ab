package service

import (
	"context"
	"fmt"
	"time"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/store"
)

// ReflectionService handles the day-closing reflection flow. The
// procrastination score is the user's own estimate; everything else in the
// entry is snapshotted from today's raw logs at submit time.
type ReflectionService struct {
	store  *store.Store
	events *EventService
}

func NewReflectionService(st *store.Store, events *EventService) *ReflectionService {
	return &ReflectionService{store: st, events: events}
}

func (s *ReflectionService) History(ctx context.Context) []model.ReflectionEntry {
	return store.Get(ctx, s.store, store.KeyReflections, []model.ReflectionEntry{})
}

func (s *ReflectionService) rawLogs(ctx context.Context) RawLogs {
	return RawLogs{
		Tasks:           store.Get(ctx, s.store, store.KeyTasks, []model.Task{}),
		Scheduled:       store.Get(ctx, s.store, store.KeyScheduledTasks, []model.ScheduledTask{}),
		WorkLogs:        store.Get(ctx, s.store, store.KeyWorkLogs, []model.WorkLog{}),
		DistractionLogs: store.Get(ctx, s.store, store.KeyDistractionLogs, []model.DistractionLog{}),
	}
}

// SubmitReflection snapshots today and prepends the entry to the history.
// Newest-first order plus by-day dedup at read time makes the latest entry
// for a day authoritative.
func (s *ReflectionService) SubmitReflection(ctx context.Context, procrastinationScore int, tomorrowGoal string, now time.Time) (model.ReflectionEntry, error) {
	if procrastinationScore < 0 || procrastinationScore > 100 {
		return model.ReflectionEntry{}, fmt.Errorf("procrastination score %d out of range", procrastinationScore)
	}

	agg := ComputeDailyAggregate(now, s.rawLogs(ctx), AggregateOptions{})

	entry := model.ReflectionEntry{
		ID:                   model.NewID(now),
		Date:                 now,
		ProcrastinationScore: procrastinationScore,
		WorkScore:            100 - procrastinationScore,
		TomorrowGoal:         tomorrowGoal,
		DistractionCount:     agg.DistractionCount,
		DistractionTime:      agg.DistractionTime,
		TasksDoneCount:       agg.TasksDoneCount,
		TaskTime:             agg.TaskTime,
		PointsScored:         agg.PointsScored,
	}

	history := s.History(ctx)
	history = append([]model.ReflectionEntry{entry}, history...)
	store.Set(ctx, s.store, store.KeyReflections, history)

	s.events.Log(ctx, "reflection_submit", map[string]any{
		"workScore":    entry.WorkScore,
		"tomorrowGoal": tomorrowGoal,
	}, now)
	return entry, nil
}

// DailyHistory returns one aggregate per day over the trailing `days`
// window, preferring reflection snapshots for closed days and the live
// computation for today.
func (s *ReflectionService) DailyHistory(ctx context.Context, days int, now time.Time) []DailyAggregate {
	from := now.AddDate(0, 0, -(days - 1))
	return RangeAggregates(from, now, s.rawLogs(ctx), s.History(ctx), now, AggregateOptions{})
}

// TodayAggregate is the live view of the current day.
func (s *ReflectionService) TodayAggregate(ctx context.Context, now time.Time) DailyAggregate {
	return ComputeDailyAggregate(now, s.rawLogs(ctx), AggregateOptions{})
}
