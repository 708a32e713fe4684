package app

import (
	"context"
	"math"
	"sort"
	"time"

	"liftit/internal/domain"
)

// Chart metrics.
const (
	MetricWeight  = "weight"
	MetricProtein = "protein"
	MetricWorkout = "workout"
)

const (
	defaultChartDays = 30
	averageWindow    = 7
)

// Chart windows at least this long overflow time.Duration and include every
// entry.
const unboundedChartDays = int(math.MaxInt64 / (24 * time.Hour))

// MetricsService derives targets, chart series and dashboards from the
// users held by a UserStore.
type MetricsService struct {
	users *UserStore
}

// NewMetricsService creates a MetricsService reading from users.
func NewMetricsService(users *UserStore) *MetricsService {
	return &MetricsService{users: users}
}

// Macros returns the daily calorie and macronutrient targets for a user.
func (s *MetricsService) Macros(ctx context.Context, userID string) (*domain.Macros, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	m := domain.MacrosFor(u.Profile)
	return &m, nil
}

// ChartPoint is a single point of a chart series.
type ChartPoint struct {
	Day   string     `json:"day"`
	Label string     `json:"label"`
	Value float64    `json:"value"`
	Count int        `json:"count,omitempty"`
	At    *time.Time `json:"at,omitempty"`
}

// Series is a chart-ready series over a trailing window.
type Series struct {
	Metric string       `json:"metric"`
	Days   int          `json:"days"`
	Points []ChartPoint `json:"points"`
}

// ConvertWeight rewrites the values of a weight series from kg into unit,
// rounded to one decimal. Other metrics are left unchanged.
func (s *Series) ConvertWeight(unit string) {
	if s.Metric != MetricWeight {
		return
	}
	for i := range s.Points {
		s.Points[i].Value = domain.Round(domain.KgTo(s.Points[i].Value, unit)*10) / 10
	}
}

// Chart returns the series for metric over the trailing days. Unknown
// metrics yield an empty series.
func (s *MetricsService) Chart(ctx context.Context, userID, metric string, days int) (*Series, error) {
	if days <= 0 {
		days = defaultChartDays
	}

	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.users.Now()
	loc := now.Location()
	var cutoff time.Time
	if days < unboundedChartDays {
		cutoff = now.Add(-time.Duration(days) * 24 * time.Hour)
	}
	series := &Series{Metric: metric, Days: days, Points: []ChartPoint{}}

	switch metric {
	case MetricWeight:
		var entries []domain.WeightEntry
		for _, e := range u.Progress.Weight {
			if !e.Timestamp.Before(cutoff) {
				entries = append(entries, e)
			}
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Timestamp.Before(entries[j].Timestamp)
		})
		for _, e := range entries {
			at := e.Timestamp
			t := at.In(loc)
			series.Points = append(series.Points, ChartPoint{
				Day:   domain.CalendarDay(t, loc),
				Label: t.Format("2 Jan"),
				Value: e.Value,
				At:    &at,
			})
		}

	case MetricProtein:
		totals := make(map[string]float64)
		for _, e := range u.Progress.Nutrition {
			if !e.Timestamp.Before(cutoff) {
				totals[domain.CalendarDay(e.Timestamp, loc)] += e.Protein
			}
		}
		for _, d := range sortedDays(totals) {
			series.Points = append(series.Points, ChartPoint{
				Day:   d,
				Label: dayLabel(d, "2 Jan", loc),
				Value: totals[d],
			})
		}

	case MetricWorkout:
		minutes := make(map[string]float64)
		counts := make(map[string]int)
		for _, e := range u.Progress.Workouts {
			if !e.Timestamp.Before(cutoff) {
				d := domain.CalendarDay(e.Timestamp, loc)
				minutes[d] += e.Duration
				counts[d]++
			}
		}
		for _, d := range sortedDays(minutes) {
			series.Points = append(series.Points, ChartPoint{
				Day:   d,
				Label: dayLabel(d, "2", loc),
				Value: minutes[d] / 60,
				Count: counts[d],
			})
		}
	}
	return series, nil
}

func sortedDays[V any](m map[string]V) []string {
	days := make([]string, 0, len(m))
	for d := range m {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

func dayLabel(day, layout string, loc *time.Location) string {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return day
	}
	return t.Format(layout)
}

// Dashboard is the summary rendered on the home screen.
type Dashboard struct {
	User     DashboardUser `json:"user"`
	Stats    domain.Stats  `json:"stats"`
	Macros   domain.Macros `json:"macros"`
	Averages Averages      `json:"averages"`
	Progress GoalProgress  `json:"progress"`
	Today    TodaySummary  `json:"today"`
}

// DashboardUser is the public part of the user record.
type DashboardUser struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Profile domain.Profile `json:"profile"`
}

// Averages are trailing 7-day nutrition averages.
type Averages struct {
	Protein       int     `json:"protein"`
	Calories      int     `json:"calories"`
	TargetProtein float64 `json:"targetProtein"`
}

// GoalProgress holds capped percentages towards the user's goals.
type GoalProgress struct {
	Weight  int `json:"weight"`
	Protein int `json:"protein"`
}

// TodaySummary reports what was logged today.
type TodaySummary struct {
	Date      string                 `json:"date"`
	Label     string                 `json:"label"`
	Workout   bool                   `json:"workout"`
	Nutrition *domain.NutritionEntry `json:"nutrition"`
}

// Dashboard composes stats, targets, averages and today's flags for a user.
func (s *MetricsService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.users.Now()
	loc := now.Location()
	stats := domain.ComputeStats(u, now)

	var n int
	var protein, calories float64
	for _, e := range u.Progress.Nutrition {
		if math.Floor(now.Sub(e.Timestamp).Hours()/24) <= averageWindow {
			n++
			protein += e.Protein
			calories += e.Calories
		}
	}
	avg := Averages{TargetProtein: u.Goals.TargetProtein}
	if n > 0 {
		avg.Protein = int(domain.Round(protein / float64(n)))
		avg.Calories = int(domain.Round(calories / float64(n)))
	}

	today := TodaySummary{
		Date:  domain.CalendarDay(now, loc),
		Label: now.Format("Monday, 2 January"),
	}
	for _, w := range u.Progress.Workouts {
		if domain.SameDay(w.Timestamp, now, loc) {
			today.Workout = true
			break
		}
	}
	for i := range u.Progress.Nutrition {
		if domain.SameDay(u.Progress.Nutrition[i].Timestamp, now, loc) {
			entry := u.Progress.Nutrition[i]
			today.Nutrition = &entry
			break
		}
	}

	return &Dashboard{
		User:     DashboardUser{Name: u.Name, Email: u.Email, Profile: u.Profile},
		Stats:    stats,
		Macros:   domain.MacrosFor(u.Profile),
		Averages: avg,
		Progress: GoalProgress{
			Weight:  domain.ProgressPercent(stats.LatestWeight, u.Goals.TargetWeight),
			Protein: domain.ProgressPercent(float64(avg.Protein), u.Goals.TargetProtein),
		},
		Today: today,
	}, nil
}
