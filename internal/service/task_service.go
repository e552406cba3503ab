package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/store"
)

// ErrTaskNotFound is returned when a referenced task no longer exists.
// Callers render an absent state instead of failing the flow.
var ErrTaskNotFound = errors.New("task not found")

// TaskInput represents data required to create a task.
type TaskInput struct {
	Title        string
	SmallStep    string
	Moods        []string
	ReminderTime string
	Frequency    model.Frequency
	RepeatDays   []string
}

// ScheduledInput represents data required to create a scheduled plan.
type ScheduledInput struct {
	Name           string
	WorkToComplete string
	StartDate      string // "2006-01-02"
	DueDate        string
	ReminderTime   string
	Frequency      model.Frequency
	RepeatDays     []string
}

// TaskService wraps the task and scheduled-plan lifecycle. Completing either
// awards points and counts as streak activity.
type TaskService struct {
	store        *store.Store
	gamification *GamificationService
	events       *EventService
}

func NewTaskService(st *store.Store, gamification *GamificationService, events *EventService) *TaskService {
	return &TaskService{store: st, gamification: gamification, events: events}
}

func (s *TaskService) Tasks(ctx context.Context) []model.Task {
	return store.Get(ctx, s.store, store.KeyTasks, []model.Task{})
}

func (s *TaskService) ScheduledTasks(ctx context.Context) []model.ScheduledTask {
	return store.Get(ctx, s.store, store.KeyScheduledTasks, []model.ScheduledTask{})
}

func (s *TaskService) CreateTask(ctx context.Context, input TaskInput, now time.Time) (model.Task, error) {
	if input.Title == "" {
		return model.Task{}, fmt.Errorf("title is required")
	}
	frequency := input.Frequency
	if frequency == "" {
		frequency = model.FrequencyOnce
	}

	task := model.Task{
		ID:           model.NewID(now),
		Title:        input.Title,
		SmallStep:    input.SmallStep,
		Moods:        input.Moods,
		ReminderTime: input.ReminderTime,
		Frequency:    frequency,
		RepeatDays:   input.RepeatDays,
		CreatedAt:    now,
	}

	tasks := s.Tasks(ctx)
	tasks = append(tasks, task)
	store.Set(ctx, s.store, store.KeyTasks, tasks)

	s.events.Log(ctx, "task_create", map[string]any{"title": task.Title, "moods": task.Moods}, now)
	return task, nil
}

// CompleteTask marks a task done, stamps time taken, and awards
// 10 + minutes-worked points.
func (s *TaskService) CompleteTask(ctx context.Context, taskID string, timeTaken model.Minutes, proofImage string, now time.Time) (model.Task, error) {
	tasks := s.Tasks(ctx)
	idx := -1
	for i, t := range tasks {
		if t.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Task{}, ErrTaskNotFound
	}

	completedAt := now
	points := legacyBasePoints + int(timeTaken)
	tasks[idx].Completed = true
	tasks[idx].CompletedAt = &completedAt
	tasks[idx].TimeTaken = timeTaken
	tasks[idx].PointsEarned = points
	tasks[idx].ProofImage = proofImage
	store.Set(ctx, s.store, store.KeyTasks, tasks)

	s.gamification.RecordActivity(ctx, now)
	if _, err := s.gamification.AddPoints(ctx, points); err != nil {
		return model.Task{}, err
	}

	s.events.Log(ctx, "task_complete", map[string]any{
		"title":    tasks[idx].Title,
		"duration": int(timeTaken),
		"points":   points,
	}, now)
	return tasks[idx], nil
}

// SuggestTasks returns incomplete tasks tagged with the given mood, for the
// "what fits how I feel right now" picker. An empty mood matches everything.
func (s *TaskService) SuggestTasks(ctx context.Context, mood string) []model.Task {
	var suggested []model.Task
	for _, t := range s.Tasks(ctx) {
		if t.Completed {
			continue
		}
		if mood == "" {
			suggested = append(suggested, t)
			continue
		}
		for _, m := range t.Moods {
			if m == mood {
				suggested = append(suggested, t)
				break
			}
		}
	}
	return suggested
}

func (s *TaskService) CreateScheduledTask(ctx context.Context, input ScheduledInput, now time.Time) (model.ScheduledTask, error) {
	if input.Name == "" {
		return model.ScheduledTask{}, fmt.Errorf("name is required")
	}
	if input.StartDate != "" && input.DueDate != "" && input.StartDate > input.DueDate {
		return model.ScheduledTask{}, fmt.Errorf("start date %s is after due date %s", input.StartDate, input.DueDate)
	}
	frequency := input.Frequency
	if frequency == "" {
		frequency = model.FrequencyOnce
	}

	task := model.ScheduledTask{
		ID:             model.NewID(now),
		Name:           input.Name,
		WorkToComplete: input.WorkToComplete,
		StartDate:      input.StartDate,
		DueDate:        input.DueDate,
		ReminderTime:   input.ReminderTime,
		Frequency:      frequency,
		RepeatDays:     input.RepeatDays,
	}

	scheduled := s.ScheduledTasks(ctx)
	scheduled = append(scheduled, task)
	store.Set(ctx, s.store, store.KeyScheduledTasks, scheduled)

	s.events.Log(ctx, "plan_create", map[string]any{"name": task.Name}, now)
	return task, nil
}

func (s *TaskService) CompleteScheduledTask(ctx context.Context, taskID string, timeTaken model.Minutes, now time.Time) (model.ScheduledTask, error) {
	scheduled := s.ScheduledTasks(ctx)
	idx := -1
	for i, t := range scheduled {
		if t.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.ScheduledTask{}, ErrTaskNotFound
	}

	completedAt := now
	scheduled[idx].Completed = true
	scheduled[idx].CompletedAt = &completedAt
	scheduled[idx].TimeTaken = timeTaken
	store.Set(ctx, s.store, store.KeyScheduledTasks, scheduled)

	points := legacyBasePoints + int(timeTaken)
	s.gamification.RecordActivity(ctx, now)
	if _, err := s.gamification.AddPoints(ctx, points); err != nil {
		return model.ScheduledTask{}, err
	}

	s.events.Log(ctx, "plan_complete", map[string]any{
		"name":     scheduled[idx].Name,
		"duration": int(timeTaken),
		"points":   points,
	}, now)
	return scheduled[idx], nil
}
