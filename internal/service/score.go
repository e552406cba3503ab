package service

import (
	"math"
	"sort"
	"time"

	"productivity-ledger/internal/model"
)

// legacyBasePoints reconstructs pointsEarned for records written before tasks
// stored their award: 10 base plus one point per minute worked.
const legacyBasePoints = 10

// RawLogs bundles the four raw collections the score calculator reads.
type RawLogs struct {
	Tasks           []model.Task
	Scheduled       []model.ScheduledTask
	WorkLogs        []model.WorkLog
	DistractionLogs []model.DistractionLog
}

// AggregateOptions control call-site-specific counting rules.
type AggregateOptions struct {
	// CountWorkLogs includes work sessions in TasksDoneCount.
	CountWorkLogs bool
}

// DailyAggregate is the derived picture of one calendar day.
type DailyAggregate struct {
	Date                 time.Time
	TaskTime             model.Minutes
	DistractionTime      model.Minutes
	DistractionCount     int
	TasksDoneCount       int
	PointsScored         int
	WorkScore            int
	ProcrastinationScore int
}

// sameCalendarDay reports whether t falls on day's calendar date, using
// day's location as the local clock. Day boundaries are local midnights.
func sameCalendarDay(t, day time.Time) bool {
	y1, m1, d1 := t.In(day.Location()).Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func taskPoints(earned int, taken model.Minutes) int {
	if earned > 0 {
		return earned
	}
	return legacyBasePoints + int(taken)
}

// ComputeDailyAggregate derives the aggregate for the calendar day containing
// `day`. Pure: it only reads the given logs. Days with no logged time score
// zero on both axes, never a division by zero.
func ComputeDailyAggregate(day time.Time, logs RawLogs, opts AggregateOptions) DailyAggregate {
	agg := DailyAggregate{Date: day}

	for _, t := range logs.Tasks {
		if !t.Completed || t.CompletedAt == nil || !sameCalendarDay(*t.CompletedAt, day) {
			continue
		}
		agg.TaskTime += t.TimeTaken
		agg.TasksDoneCount++
		agg.PointsScored += taskPoints(t.PointsEarned, t.TimeTaken)
	}
	for _, t := range logs.Scheduled {
		if !t.Completed || t.CompletedAt == nil || !sameCalendarDay(*t.CompletedAt, day) {
			continue
		}
		agg.TaskTime += t.TimeTaken
		agg.TasksDoneCount++
		agg.PointsScored += taskPoints(0, t.TimeTaken)
	}
	for _, w := range logs.WorkLogs {
		if !sameCalendarDay(w.Date, day) {
			continue
		}
		agg.TaskTime += w.Duration
		agg.PointsScored += int(w.Duration)
		if opts.CountWorkLogs {
			agg.TasksDoneCount++
		}
	}
	for _, d := range logs.DistractionLogs {
		if !sameCalendarDay(d.Date, day) {
			continue
		}
		agg.DistractionTime += d.Duration
		agg.DistractionCount++
	}

	total := int(agg.TaskTime + agg.DistractionTime)
	if total > 0 {
		agg.ProcrastinationScore = int(math.Round(100 * float64(agg.DistractionTime) / float64(total)))
		agg.WorkScore = 100 - agg.ProcrastinationScore
	}

	return agg
}

// RangeAggregates derives one aggregate per calendar day from `from` through
// `to` inclusive. Past days with a day-closing reflection snapshot use the
// latest snapshot for that day; the current day always uses the live
// aggregate, even when a reflection was already submitted earlier today.
func RangeAggregates(from, to time.Time, logs RawLogs, reflections []model.ReflectionEntry, now time.Time, opts AggregateOptions) []DailyAggregate {
	snapshots := latestReflectionPerDay(reflections, from.Location())

	var out []DailyAggregate
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if snap, ok := snapshots[model.LocalDate(day.In(from.Location()))]; ok && !sameCalendarDay(now, day) {
			out = append(out, DailyAggregate{
				Date:                 day,
				TaskTime:             snap.TaskTime,
				DistractionTime:      snap.DistractionTime,
				DistractionCount:     snap.DistractionCount,
				TasksDoneCount:       snap.TasksDoneCount,
				PointsScored:         snap.PointsScored,
				WorkScore:            snap.WorkScore,
				ProcrastinationScore: snap.ProcrastinationScore,
			})
			continue
		}
		out = append(out, ComputeDailyAggregate(day, logs, opts))
	}
	return out
}

// latestReflectionPerDay picks the authoritative (most recent) snapshot for
// each calendar day.
func latestReflectionPerDay(reflections []model.ReflectionEntry, loc *time.Location) map[string]model.ReflectionEntry {
	byDay := make(map[string]model.ReflectionEntry)
	sorted := make([]model.ReflectionEntry, len(reflections))
	copy(sorted, reflections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	for _, entry := range sorted {
		byDay[model.LocalDate(entry.Date.In(loc))] = entry
	}
	return byDay
}
