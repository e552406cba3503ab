package model

import "time"

// DateLayout is the calendar-date form used for streak bookkeeping and
// scheduled-task windows. Always the user's local day, never UTC.
const DateLayout = "2006-01-02"

// UserStats is the singleton gamification record for a user.
type UserStats struct {
	TotalPoints    int    `json:"totalPoints"`
	CurrentStreak  int    `json:"currentStreak"`
	LongestStreak  int    `json:"longestStreak"`
	LastActiveDate string `json:"lastActiveDate,omitempty"` // DateLayout, empty = never active
}

// LocalDate formats t as a calendar date in its own location.
func LocalDate(t time.Time) string {
	return t.Format(DateLayout)
}
