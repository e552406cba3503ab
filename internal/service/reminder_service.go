package service

import (
	"context"
	"time"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/store"
)

// Reminder is the unified reminder view over tasks and scheduled plans.
type Reminder struct {
	ID           string
	Title        string
	ReminderTime string // "HH:MM"
	Frequency    model.Frequency
	RepeatDays   []string
	StartDate    string // "2006-01-02", scheduled plans only
	DueDate      string
	Completed    bool
}

func reminderFromTask(t model.Task) Reminder {
	return Reminder{
		ID:           t.ID,
		Title:        t.Title,
		ReminderTime: t.ReminderTime,
		Frequency:    t.Frequency,
		RepeatDays:   t.RepeatDays,
		Completed:    t.Completed,
	}
}

func reminderFromScheduled(t model.ScheduledTask) Reminder {
	return Reminder{
		ID:           t.ID,
		Title:        t.Name,
		ReminderTime: t.ReminderTime,
		Frequency:    t.Frequency,
		RepeatDays:   t.RepeatDays,
		StartDate:    t.StartDate,
		DueDate:      t.DueDate,
		Completed:    t.Completed,
	}
}

// MinuteGate makes reminder evaluation idempotent per minute. The caller
// owns the gate; re-entering the check within the same minute (a re-mounted
// timer, an overlapping tick) fires nothing twice.
type MinuteGate struct {
	lastMinute string
}

// TryAcquire claims the given minute. It returns false when the minute was
// already claimed.
func (g *MinuteGate) TryAcquire(minute string) bool {
	if g.lastMinute == minute {
		return false
	}
	g.lastMinute = minute
	return true
}

// ReminderService evaluates which reminders fire at a given instant.
type ReminderService struct {
	store *store.Store
}

func NewReminderService(st *store.Store) *ReminderService {
	return &ReminderService{store: st}
}

// DueReminders returns the reminders firing at now's minute, or nothing when
// the gate already saw this minute. Frequency rules: daily fires every day,
// custom only on its listed weekdays, once only while today is inside the
// item's date window (unconditionally for date-less items).
func (s *ReminderService) DueReminders(ctx context.Context, now time.Time, gate *MinuteGate) []Reminder {
	minute := now.Format("15:04")
	if gate != nil && !gate.TryAcquire(minute) {
		return nil
	}

	tasks := store.Get(ctx, s.store, store.KeyTasks, []model.Task{})
	scheduled := store.Get(ctx, s.store, store.KeyScheduledTasks, []model.ScheduledTask{})

	items := make([]Reminder, 0, len(tasks)+len(scheduled))
	for _, t := range tasks {
		items = append(items, reminderFromTask(t))
	}
	for _, t := range scheduled {
		items = append(items, reminderFromScheduled(t))
	}

	return dueAt(items, now)
}

// dueAt is the pure evaluation over an explicit item list.
func dueAt(items []Reminder, now time.Time) []Reminder {
	minute := now.Format("15:04")
	weekday := now.Format("Mon")
	today := model.LocalDate(now)

	var due []Reminder
	for _, item := range items {
		if item.Completed || item.ReminderTime == "" || item.ReminderTime != minute {
			continue
		}
		if fires(item, weekday, today) {
			due = append(due, item)
		}
	}
	return due
}

func fires(item Reminder, weekday, today string) bool {
	switch item.Frequency {
	case model.FrequencyDaily:
		return true
	case model.FrequencyCustom:
		for _, day := range item.RepeatDays {
			if day == weekday {
				return true
			}
		}
		return false
	case model.FrequencyOnce:
		if item.StartDate != "" && item.DueDate != "" {
			return item.StartDate <= today && today <= item.DueDate
		}
		return true
	default:
		return false
	}
}
