package store

import (
	"context"
	"testing"
	"time"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := repository.NewDB(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return New(repository.NewRecordRepository(db))
}

func TestGetMissingKeyReturnsDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	got := Get(ctx, s, KeyUserMood, "neutral")
	if got != "neutral" {
		t.Errorf("expected default mood, got %q", got)
	}

	tasks := Get(ctx, s, KeyTasks, []model.Task{})
	if len(tasks) != 0 {
		t.Errorf("expected empty default, got %d tasks", len(tasks))
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	completedAt := time.Date(2026, 8, 27, 14, 30, 0, 0, time.UTC)
	original := model.Task{
		ID:           "1756301400000",
		Title:        "Write report",
		SmallStep:    "Open the doc",
		Moods:        []string{"focused", "energetic"},
		ReminderTime: "09:00",
		Frequency:    model.FrequencyCustom,
		RepeatDays:   []string{"Mon", "Wed"},
		Completed:    true,
		CompletedAt:  &completedAt,
		TimeTaken:    45,
		PointsEarned: 55,
		CreatedAt:    time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
	}

	Set(ctx, s, KeyTasks, []model.Task{original})
	got := Get(ctx, s, KeyTasks, []model.Task{})
	if len(got) != 1 {
		t.Fatalf("expected 1 task, got %d", len(got))
	}

	read := got[0]
	if read.ID != original.ID || read.Title != original.Title ||
		read.SmallStep != original.SmallStep || read.TimeTaken != original.TimeTaken ||
		read.PointsEarned != original.PointsEarned || !read.Completed {
		t.Errorf("round trip mismatch: %+v", read)
	}
	if read.CompletedAt == nil || !read.CompletedAt.Equal(completedAt) {
		t.Errorf("completedAt mismatch: %v", read.CompletedAt)
	}
	if len(read.Moods) != 2 || read.Moods[0] != "focused" {
		t.Errorf("moods mismatch: %v", read.Moods)
	}
}

func TestCorruptPayloadYieldsDefault(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Restore(ctx, KeyUserStats, "{not json"); err != nil {
		t.Fatalf("restore: %v", err)
	}

	stats := Get(ctx, s, KeyUserStats, model.UserStats{TotalPoints: 7})
	if stats.TotalPoints != 7 {
		t.Errorf("expected caller default on corruption, got %+v", stats)
	}
}

func TestLegacyStringDurationsParse(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	legacy := `[{"id":"1","app":"Insta","duration":"25","date":"2026-08-27T10:00:00Z"}]`
	if err := s.Restore(ctx, KeyDistractionLogs, legacy); err != nil {
		t.Fatalf("restore: %v", err)
	}

	logs := Get(ctx, s, KeyDistractionLogs, []model.DistractionLog{})
	if len(logs) != 1 || logs[0].Duration != 25 {
		t.Fatalf("expected duration 25 from string payload, got %+v", logs)
	}
}

func TestSetFiresHookWithSerializedPayload(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var gotKey Key
	var gotPayload string
	s.OnSet(func(key Key, serialized string) {
		gotKey = key
		gotPayload = serialized
	})

	Set(ctx, s, KeyUserMood, "happy")
	if gotKey != KeyUserMood {
		t.Errorf("hook key = %q", gotKey)
	}
	if gotPayload != `"happy"` {
		t.Errorf("hook payload = %q", gotPayload)
	}
}

func TestRestoreDoesNotFireHooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	fired := false
	s.OnSet(func(Key, string) { fired = true })

	if err := s.Restore(ctx, KeyUserMood, `"calm"`); err != nil {
		t.Fatalf("restore: %v", err)
	}
	if fired {
		t.Error("restore must not fire set hooks")
	}
	if got := Get(ctx, s, KeyUserMood, ""); got != "calm" {
		t.Errorf("restored value = %q", got)
	}
}

func TestClearRemovesNamespace(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	Set(ctx, s, KeyUserMood, "happy")
	Set(ctx, s, KeyUserStats, model.UserStats{TotalPoints: 10})

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := Get(ctx, s, KeyUserMood, "gone"); got != "gone" {
		t.Errorf("mood survived clear: %q", got)
	}
	if stats := Get(ctx, s, KeyUserStats, model.UserStats{}); stats.TotalPoints != 0 {
		t.Errorf("stats survived clear: %+v", stats)
	}
}
