package service

import (
	"context"
	"fmt"
	"time"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/store"
)

// GamificationService maintains the points/streak state machine. A streak
// counts distinct active calendar days: missing a day no longer resets it
// (the reset rule from early releases was dropped on purpose).
type GamificationService struct {
	store *store.Store
}

func NewGamificationService(st *store.Store) *GamificationService {
	return &GamificationService{store: st}
}

// Stats returns the current gamification record.
func (s *GamificationService) Stats(ctx context.Context) model.UserStats {
	return store.Get(ctx, s.store, store.KeyUserStats, model.UserStats{})
}

// RecordActivity marks now's calendar day as active. Repeat calls within the
// same day are no-ops.
func (s *GamificationService) RecordActivity(ctx context.Context, now time.Time) model.UserStats {
	stats := s.Stats(ctx)

	today := model.LocalDate(now)
	if stats.LastActiveDate == today {
		return stats
	}

	yesterday := model.LocalDate(now.AddDate(0, 0, -1))
	switch {
	case stats.LastActiveDate == "":
		stats.CurrentStreak = 1
	case stats.LastActiveDate == yesterday:
		stats.CurrentStreak++
	default:
		// Gap of two or more days: still counts as a new active day.
		stats.CurrentStreak++
	}

	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastActiveDate = today

	store.Set(ctx, s.store, store.KeyUserStats, stats)
	return stats
}

// AddPoints adds to the lifetime total. It never touches the streak; callers
// whose action also counts as activity call RecordActivity themselves.
func (s *GamificationService) AddPoints(ctx context.Context, amount int) (model.UserStats, error) {
	stats := s.Stats(ctx)
	if amount < 0 {
		return stats, fmt.Errorf("add points: negative amount %d", amount)
	}

	stats.TotalPoints += amount
	store.Set(ctx, s.store, store.KeyUserStats, stats)
	return stats, nil
}
