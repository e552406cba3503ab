package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"productivity-ledger/internal/model"
	"productivity-ledger/internal/store"
)

// Heuristic thresholds. Named so the rules stay testable; there is no
// statistical model behind any of this.
const (
	// analysisWindowDays is the trailing window, inclusive of today.
	analysisWindowDays = 30
	// completionBonus weights a completed item against raw minutes.
	completionBonus = 10
	// peakScoreThreshold gates the peak-performance insight so sparse data
	// does not produce false confidence.
	peakScoreThreshold = 50
	// distractionAlertThreshold gates the distraction alert on the worst
	// bucket's episode count.
	distractionAlertThreshold = 2
)

// bucketOrder fixes evaluation order so ties resolve deterministically.
var bucketOrder = []model.TimeOfDay{model.Morning, model.Afternoon, model.Evening, model.Night}

var bucketLabels = map[model.TimeOfDay]string{
	model.Morning:   "morning (5AM - 12PM)",
	model.Afternoon: "afternoon (12PM - 5PM)",
	model.Evening:   "evening (5PM - 9PM)",
	model.Night:     "night (9PM - 5AM)",
}

// BucketStats accumulates completed activity for one time-of-day bucket.
type BucketStats struct {
	Attempts     int
	Completed    int
	TotalMinutes int
	Score        int
}

// TriggerCount is one distraction app and how often it appeared.
type TriggerCount struct {
	App   string
	Count int
}

// InsightType tags the tone of a generated insight.
type InsightType string

const (
	InsightSuccess InsightType = "success"
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
)

// Insight is one human-readable observation.
type Insight struct {
	Type  InsightType
	Title string
	Text  string
}

func windowCutoff(now time.Time) time.Time {
	cutoff := now.AddDate(0, 0, -analysisWindowDays)
	y, m, d := cutoff.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// AnalyzeProductivityByTime buckets every completed task, scheduled task and
// work session from the trailing window by local time of day and scores each
// bucket as minutes plus a bonus per completion.
func AnalyzeProductivityByTime(tasks []model.Task, scheduled []model.ScheduledTask, workLogs []model.WorkLog, now time.Time) map[model.TimeOfDay]BucketStats {
	buckets := make(map[model.TimeOfDay]BucketStats, len(bucketOrder))
	for _, b := range bucketOrder {
		buckets[b] = BucketStats{}
	}
	cutoff := windowCutoff(now)

	record := func(at time.Time, minutes model.Minutes) {
		if at.Before(cutoff) {
			return
		}
		b := model.BucketFor(at.In(now.Location()))
		stats := buckets[b]
		stats.Attempts++
		stats.Completed++
		stats.TotalMinutes += int(minutes)
		buckets[b] = stats
	}

	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		record(*t.CompletedAt, t.TimeTaken)
	}
	for _, t := range scheduled {
		if t.CompletedAt == nil {
			continue
		}
		record(*t.CompletedAt, t.TimeTaken)
	}
	for _, w := range workLogs {
		record(w.Date, w.Duration)
	}

	for b, stats := range buckets {
		stats.Score = stats.TotalMinutes + completionBonus*stats.Completed
		buckets[b] = stats
	}
	return buckets
}

// AnalyzeDistractionTriggers counts distraction episodes per app and per
// time-of-day bucket over the trailing window. Triggers come back sorted by
// count descending, name ascending on ties.
func AnalyzeDistractionTriggers(logs []model.DistractionLog, now time.Time) ([]TriggerCount, map[model.TimeOfDay]int) {
	cutoff := windowCutoff(now)
	counts := make(map[string]int)
	patterns := make(map[model.TimeOfDay]int, len(bucketOrder))
	for _, b := range bucketOrder {
		patterns[b] = 0
	}

	for _, l := range logs {
		if l.Date.Before(cutoff) {
			continue
		}
		counts[l.App]++
		patterns[model.BucketFor(l.Date.In(now.Location()))]++
	}

	triggers := make([]TriggerCount, 0, len(counts))
	for app, count := range counts {
		triggers = append(triggers, TriggerCount{App: app, Count: count})
	}
	sort.Slice(triggers, func(i, j int) bool {
		if triggers[i].Count != triggers[j].Count {
			return triggers[i].Count > triggers[j].Count
		}
		return triggers[i].App < triggers[j].App
	})
	return triggers, patterns
}

// InsightService generates ranked observations from the stored history. The
// rules run in a fixed order; each either contributes an insight or stays
// quiet, and a filler keeps the output from ever feeling empty.
type InsightService struct {
	store *store.Store
}

func NewInsightService(st *store.Store) *InsightService {
	return &InsightService{store: st}
}

func (s *InsightService) Generate(ctx context.Context, now time.Time) []Insight {
	tasks := store.Get(ctx, s.store, store.KeyTasks, []model.Task{})
	scheduled := store.Get(ctx, s.store, store.KeyScheduledTasks, []model.ScheduledTask{})
	workLogs := store.Get(ctx, s.store, store.KeyWorkLogs, []model.WorkLog{})
	distLogs := store.Get(ctx, s.store, store.KeyDistractionLogs, []model.DistractionLog{})

	productivity := AnalyzeProductivityByTime(tasks, scheduled, workLogs, now)
	triggers, patterns := AnalyzeDistractionTriggers(distLogs, now)

	rules := []func() (Insight, bool){
		func() (Insight, bool) { return peakPerformanceRule(productivity) },
		func() (Insight, bool) { return distractionAlertRule(triggers, patterns) },
	}

	var insights []Insight
	for _, rule := range rules {
		if insight, ok := rule(); ok {
			insights = append(insights, insight)
		}
	}
	if len(insights) < 2 {
		insights = append(insights, Insight{
			Type:  InsightInfo,
			Title: "Tip",
			Text:  "Log more work and distractions to unlock deeper insights into your habits.",
		})
	}
	return insights
}

func peakPerformanceRule(productivity map[model.TimeOfDay]BucketStats) (Insight, bool) {
	best := bucketOrder[0]
	maxScore := -1
	for _, b := range bucketOrder {
		if productivity[b].Score > maxScore {
			maxScore = productivity[b].Score
			best = b
		}
	}
	if maxScore <= peakScoreThreshold {
		return Insight{}, false
	}
	return Insight{
		Type:  InsightSuccess,
		Title: "Peak Performance",
		Text:  fmt.Sprintf("You are naturally most productive in the %s. Schedule your hardest tasks then!", bucketLabels[best]),
	}, true
}

func distractionAlertRule(triggers []TriggerCount, patterns map[model.TimeOfDay]int) (Insight, bool) {
	if len(triggers) == 0 {
		return Insight{}, false
	}
	worst := bucketOrder[0]
	maxCount := -1
	for _, b := range bucketOrder {
		if patterns[b] > maxCount {
			maxCount = patterns[b]
			worst = b
		}
	}
	if maxCount <= distractionAlertThreshold {
		return Insight{}, false
	}
	return Insight{
		Type:  InsightWarning,
		Title: "Distraction Alert",
		Text:  fmt.Sprintf("Watch out for %s in the %s. It's your top distraction.", triggers[0].App, worst),
	}, true
}
