package model

import (
	"strconv"
	"time"
)

// Frequency controls how often a task's reminder fires.
type Frequency string

const (
	FrequencyOnce   Frequency = "once"
	FrequencyDaily  Frequency = "daily"
	FrequencyCustom Frequency = "custom"
)

// Task is a single mood-tagged item in the ledger.
type Task struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	SmallStep    string     `json:"smallStep,omitempty"`
	Moods        []string   `json:"moods,omitempty"`
	ReminderTime string     `json:"reminderTime,omitempty"` // "HH:MM", empty = no reminder
	Frequency    Frequency  `json:"frequency,omitempty"`
	RepeatDays   []string   `json:"repeatDays,omitempty"` // weekday abbreviations, frequency=custom only
	Completed    bool       `json:"completed"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	TimeTaken    Minutes    `json:"timeTaken,omitempty"`
	PointsEarned int        `json:"pointsEarned,omitempty"`
	ProofImage   string     `json:"proofImage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ScheduledTask is a dated plan item with a work window.
type ScheduledTask struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	WorkToComplete string     `json:"workToComplete,omitempty"`
	StartDate      string     `json:"startDate"` // "2006-01-02"
	DueDate        string     `json:"dueDate"`
	ReminderTime   string     `json:"reminderTime,omitempty"`
	Frequency      Frequency  `json:"frequency,omitempty"`
	RepeatDays     []string   `json:"repeatDays,omitempty"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	TimeTaken      Minutes    `json:"timeTaken,omitempty"`
}

// NewID returns an opaque time-based identifier for ledger records.
func NewID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}
