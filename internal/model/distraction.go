package model

import "time"

// DistractionType is a named distraction source (an app, usually) with the
// reasons the user has recorded for reaching for it.
type DistractionType struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Reasons []string `json:"reasons"`
}

// DistractionLog records one distraction episode. TypeID is the owning
// relation; App keeps the denormalized name so records written before the
// id relation existed still resolve.
type DistractionLog struct {
	ID       string    `json:"id"`
	TypeID   string    `json:"typeId,omitempty"`
	App      string    `json:"app"`
	Reasons  []string  `json:"reasons,omitempty"`
	Duration Minutes   `json:"duration"`
	Date     time.Time `json:"date"`
}

// WorkLog is an unstructured work session not tied to a Task.
type WorkLog struct {
	ID        string    `json:"id"`
	TaskTitle string    `json:"taskTitle"`
	Duration  Minutes   `json:"duration"`
	Date      time.Time `json:"date"`
}
