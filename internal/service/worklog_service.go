package service

import (
	"context"
	"fmt"
	"time"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/store"
)

// WorkLogService records unstructured work sessions. A session earns one
// point per minute and counts as streak activity.
type WorkLogService struct {
	store        *store.Store
	gamification *GamificationService
	events       *EventService
}

func NewWorkLogService(st *store.Store, gamification *GamificationService, events *EventService) *WorkLogService {
	return &WorkLogService{store: st, gamification: gamification, events: events}
}

func (s *WorkLogService) Logs(ctx context.Context) []model.WorkLog {
	return store.Get(ctx, s.store, store.KeyWorkLogs, []model.WorkLog{})
}

func (s *WorkLogService) AddWorkLog(ctx context.Context, taskTitle string, duration model.Minutes, now time.Time) (model.WorkLog, error) {
	if duration <= 0 {
		return model.WorkLog{}, fmt.Errorf("duration must be positive")
	}

	entry := model.WorkLog{
		ID:        model.NewID(now),
		TaskTitle: taskTitle,
		Duration:  duration,
		Date:      now,
	}

	logs := s.Logs(ctx)
	logs = append(logs, entry)
	store.Set(ctx, s.store, store.KeyWorkLogs, logs)

	s.gamification.RecordActivity(ctx, now)
	if _, err := s.gamification.AddPoints(ctx, int(duration)); err != nil {
		return model.WorkLog{}, err
	}

	s.events.Log(ctx, "work_log", map[string]any{
		"title":    taskTitle,
		"duration": int(duration),
	}, now)
	return entry, nil
}
