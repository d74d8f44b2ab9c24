package stats

import "github.com/mkanyika/shamba/internal/domain"

// maxRecentIssues bounds the recent-issues slice in HealthStats.
const maxRecentIssues = 5

type HealthStats struct {
	TotalRecords      int                         `json:"totalRecords"`
	StatusCounts      map[domain.HealthStatus]int `json:"statusCounts"`
	CropCounts        map[string]int              `json:"cropCounts"`
	RecentIssues      []domain.HealthRecord       `json:"recentIssues"`
	HealthyPercentage float64                     `json:"healthyPercentage"`
}

// AggregateHealth reduces crop health records into status and per-crop
// counts, a recent-issues slice (diseased or treated records, input order,
// first five), and a healthy percentage. Recovered records count toward the
// healthy percentage: a crop that was diseased and has recovered is healthy
// for the ratio. Statuses outside the known set still count in TotalRecords
// and StatusCounts but never in the healthy numerator.
func AggregateHealth(records []domain.HealthRecord) HealthStats {
	s := HealthStats{
		TotalRecords: len(records),
		StatusCounts: make(map[domain.HealthStatus]int),
		CropCounts:   make(map[string]int),
		RecentIssues: []domain.HealthRecord{},
	}

	for _, r := range records {
		s.StatusCounts[r.Status]++
		s.CropCounts[r.CropName]++
		if len(s.RecentIssues) < maxRecentIssues &&
			(r.Status == domain.StatusDiseased || r.Status == domain.StatusTreated) {
			s.RecentIssues = append(s.RecentIssues, r)
		}
	}

	if len(records) > 0 {
		healthy := s.StatusCounts[domain.StatusHealthy] + s.StatusCounts[domain.StatusRecovered]
		s.HealthyPercentage = float64(healthy) / float64(len(records)) * 100
	}

	return s
}
