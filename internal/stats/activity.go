// Package stats reduces farm records into the summaries shown on the
// dashboard. Every aggregator is a pure function over an already-fetched,
// already-ownership-scoped slice of records: no I/O, no shared state, safe
// to call concurrently.
package stats

import "github.com/mkanyika/shamba/internal/domain"

// maxRecentActivities bounds the recent slice in ActivityStats.
const maxRecentActivities = 10

type ActivityStats struct {
	TotalActivities  int                         `json:"totalActivities"`
	ActivityCounts   map[domain.ActivityType]int `json:"activityCounts"`
	MonthlyActivity  map[string]int              `json:"monthlyActivity"`
	RecentActivities []domain.Activity           `json:"recentActivities"`
}

// AggregateActivities reduces activities into per-type counts, per-month
// counts, and a recent slice. The input is expected most-recent-first; the
// recent slice preserves whatever order the caller supplied. Month keys are
// the first seven characters of the ISO date ("YYYY-MM").
func AggregateActivities(activities []domain.Activity) ActivityStats {
	s := ActivityStats{
		TotalActivities: len(activities),
		ActivityCounts:  make(map[domain.ActivityType]int),
		MonthlyActivity: make(map[string]int),
	}

	for _, a := range activities {
		s.ActivityCounts[a.Type]++
		month := a.Date
		if len(month) > 7 {
			month = month[:7]
		}
		s.MonthlyActivity[month]++
	}

	n := len(activities)
	if n > maxRecentActivities {
		n = maxRecentActivities
	}
	s.RecentActivities = append([]domain.Activity{}, activities[:n]...)

	return s
}
