package domain

import (
	"math"
	"sort"
	"time"
)

const (
	day        = 24 * time.Hour
	dayLayout  = "2006-01-02"
	weekWindow = 7
)

// Stats summarizes a user's ledger.
type Stats struct {
	LatestWeight        float64 `json:"latestWeight"`
	StartWeight         float64 `json:"startWeight"`
	WeightChangePercent float64 `json:"weightChangePercent"`
	WorkoutsThisWeek    int     `json:"workoutsThisWeek"`
	TargetProgress      float64 `json:"targetProgress"`
	Streak              int     `json:"streak"`
	TotalWorkouts       int     `json:"totalWorkouts"`
	WorkoutDays         int     `json:"workoutDays"`
}

// ComputeStats derives Stats for u as of now. Calendar days are taken in
// now's location.
func ComputeStats(u *User, now time.Time) Stats {
	weights := u.Progress.Weight
	latest, start := u.Profile.Weight, u.Profile.Weight
	if n := len(weights); n > 0 {
		latest = weights[n-1].Value
		start = weights[0].Value
	}

	var change float64
	if len(weights) > 1 && start != 0 {
		change = roundTo((latest-start)/start*100, 1)
	}

	var targetProgress float64
	if u.Goals.TargetWeight != 0 {
		targetProgress = roundTo(latest/u.Goals.TargetWeight*100, 1)
	}

	thisWeek := 0
	days := make(map[string]struct{})
	for _, w := range u.Progress.Workouts {
		if math.Ceil(math.Abs(now.Sub(w.Timestamp).Hours())/24) <= weekWindow {
			thisWeek++
		}
		days[CalendarDay(w.Timestamp, now.Location())] = struct{}{}
	}

	return Stats{
		LatestWeight:        latest,
		StartWeight:         start,
		WeightChangePercent: change,
		WorkoutsThisWeek:    thisWeek,
		TargetProgress:      targetProgress,
		Streak:              Streak(u.Progress.Workouts, now),
		TotalWorkouts:       len(u.Progress.Workouts),
		WorkoutDays:         len(days),
	}
}

// Streak counts consecutive calendar days, ending today, with at least one
// workout. A missing today yields 0.
func Streak(workouts []WorkoutEntry, now time.Time) int {
	if len(workouts) == 0 {
		return 0
	}
	loc := now.Location()

	seen := make(map[time.Time]struct{}, len(workouts))
	dates := make([]time.Time, 0, len(workouts))
	for _, w := range workouts {
		d := dateOf(w.Timestamp.In(loc))
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	today := dateOf(now)
	streak := 0
	for _, d := range dates {
		if DaysBetween(d, today) != streak {
			break
		}
		streak++
	}
	return streak
}

// CalendarDay formats t as YYYY-MM-DD in loc.
func CalendarDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayLayout)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return CalendarDay(a, loc) == CalendarDay(b, loc)
}

// DaysBetween returns the whole calendar days from a to b, ignoring time of
// day and DST shifts.
func DaysBetween(a, b time.Time) int {
	return int(dateOf(b).Sub(dateOf(a)) / day)
}

// dateOf maps t's calendar date to UTC midnight so date arithmetic is exact.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
