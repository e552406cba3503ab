package model

import "time"

// ReflectionEntry is a day-closing snapshot submitted by the user. The most
// recent entry for a calendar day is authoritative when several exist.
type ReflectionEntry struct {
	ID                   string    `json:"id"`
	Date                 time.Time `json:"date"`
	ProcrastinationScore int       `json:"procrastinationScore"`
	WorkScore            int       `json:"workScore"`
	TomorrowGoal         string    `json:"tomorrowGoal,omitempty"`
	DistractionCount     int       `json:"distractionCount"`
	DistractionTime      Minutes   `json:"distractionTime"`
	TasksDoneCount       int       `json:"tasksDoneCount"`
	TaskTime             Minutes   `json:"taskTime"`
	PointsScored         int       `json:"pointsScored"`
}
