package model

import "time"

// TimeOfDay buckets the local clock into the four analysis ranges.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"   // [05:00, 12:00)
	Afternoon TimeOfDay = "afternoon" // [12:00, 17:00)
	Evening   TimeOfDay = "evening"   // [17:00, 21:00)
	Night     TimeOfDay = "night"     // [21:00, 05:00), wraps midnight
)

// BucketFor returns the time-of-day bucket for t's local hour.
func BucketFor(t time.Time) TimeOfDay {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// Event is an append-only audit record. Events are never mutated after
// creation; only the local Synced flag flips once the event reaches the
// remote store. Synced itself is never uploaded.
type Event struct {
	EventID    string         `json:"event_id"`
	UserID     string         `json:"user_id"`
	Timestamp  time.Time      `json:"timestamp"`
	Date       string         `json:"date"` // DateLayout
	TimeOfDay  TimeOfDay      `json:"time_of_day"`
	EventType  string         `json:"event_type"`
	MoodBefore string         `json:"mood_before"`
	Payload    map[string]any `json:"payload,omitempty"`
	Synced     bool           `json:"synced"`
}
