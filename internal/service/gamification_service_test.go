package service

import (
	"context"
	"testing"
	"time"

	"productivity-ledger/internal/repository"
	"productivity-ledger/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return store.New(repository.NewRecordRepository(db))
}

func day(yearDay int, hour int) time.Time {
	return time.Date(2026, 8, yearDay, hour, 0, 0, 0, time.Local)
}

func TestRecordActivitySameDayIsNoOp(t *testing.T) {
	svc := NewGamificationService(newTestStore(t))
	ctx := context.Background()

	first := svc.RecordActivity(ctx, day(10, 9))
	second := svc.RecordActivity(ctx, day(10, 22))

	if first.CurrentStreak != 1 || second.CurrentStreak != 1 {
		t.Errorf("streaks = %d then %d, want 1 and 1", first.CurrentStreak, second.CurrentStreak)
	}
	if second.LongestStreak != 1 {
		t.Errorf("longest = %d, want 1", second.LongestStreak)
	}
}

func TestRecordActivityConsecutiveDays(t *testing.T) {
	svc := NewGamificationService(newTestStore(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		stats := svc.RecordActivity(ctx, day(10+i, 9))
		if stats.CurrentStreak != i+1 {
			t.Fatalf("day %d: streak = %d, want %d", i+1, stats.CurrentStreak, i+1)
		}
		if stats.LongestStreak != i+1 {
			t.Fatalf("day %d: longest = %d, want %d", i+1, stats.LongestStreak, i+1)
		}
	}
}

func TestRecordActivityGapStillIncrements(t *testing.T) {
	svc := NewGamificationService(newTestStore(t))
	ctx := context.Background()

	svc.RecordActivity(ctx, day(10, 9))
	svc.RecordActivity(ctx, day(11, 9))
	stats := svc.RecordActivity(ctx, day(15, 9)) // three missed days

	if stats.CurrentStreak != 3 {
		t.Errorf("streak after gap = %d, want 3 (distinct active days)", stats.CurrentStreak)
	}
	if stats.LongestStreak != 3 {
		t.Errorf("longest = %d, want 3", stats.LongestStreak)
	}
}

func TestAddPointsAccumulates(t *testing.T) {
	svc := NewGamificationService(newTestStore(t))
	ctx := context.Background()

	if _, err := svc.AddPoints(ctx, 15); err != nil {
		t.Fatalf("add points: %v", err)
	}
	stats, err := svc.AddPoints(ctx, 27)
	if err != nil {
		t.Fatalf("add points: %v", err)
	}
	if stats.TotalPoints != 42 {
		t.Errorf("total = %d, want 42", stats.TotalPoints)
	}
	if stats.CurrentStreak != 0 {
		t.Errorf("AddPoints touched streak: %d", stats.CurrentStreak)
	}
}

func TestAddPointsRejectsNegative(t *testing.T) {
	svc := NewGamificationService(newTestStore(t))
	ctx := context.Background()

	svc.AddPoints(ctx, 10)
	if _, err := svc.AddPoints(ctx, -5); err == nil {
		t.Error("expected error for negative amount")
	}
	if stats := svc.Stats(ctx); stats.TotalPoints != 10 {
		t.Errorf("total changed on rejected add: %d", stats.TotalPoints)
	}
}
