package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkanyika/shamba/internal/domain"
)

func act(id string, t domain.ActivityType, date string) domain.Activity {
	return domain.Activity{ID: id, FarmID: "f1", Type: t, CropName: "maize", Date: date}
}

func TestAggregateActivitiesCounts(t *testing.T) {
	activities := []domain.Activity{
		act("a1", domain.ActivitySowing, "2024-03-01"),
		act("a2", domain.ActivitySowing, "2024-03-15"),
		act("a3", domain.ActivityHarvesting, "2024-04-02"),
	}

	s := AggregateActivities(activities)

	assert.Equal(t, 3, s.TotalActivities)
	assert.Equal(t, map[domain.ActivityType]int{
		domain.ActivitySowing:     2,
		domain.ActivityHarvesting: 1,
	}, s.ActivityCounts)
	assert.Equal(t, map[string]int{"2024-03": 2, "2024-04": 1}, s.MonthlyActivity)
}

func TestAggregateActivitiesEmpty(t *testing.T) {
	s := AggregateActivities(nil)

	assert.Zero(t, s.TotalActivities)
	assert.Empty(t, s.ActivityCounts)
	assert.Empty(t, s.MonthlyActivity)
	assert.Empty(t, s.RecentActivities)
	assert.NotNil(t, s.ActivityCounts)
	assert.NotNil(t, s.MonthlyActivity)
}

func TestAggregateActivitiesRecentSlice(t *testing.T) {
	var activities []domain.Activity
	for i := 0; i < 25; i++ {
		activities = append(activities, act(fmt.Sprintf("a%d", i), domain.ActivityWeeding, "2024-05-01"))
	}

	s := AggregateActivities(activities)

	assert.Len(t, s.RecentActivities, 10)
	// Input order preserved verbatim, no re-sorting.
	assert.Equal(t, "a0", s.RecentActivities[0].ID)
	assert.Equal(t, "a9", s.RecentActivities[9].ID)
}

func TestAggregateActivitiesRecentShorterThanCap(t *testing.T) {
	activities := []domain.Activity{
		act("a1", domain.ActivitySpraying, "2024-01-05"),
		act("a2", domain.ActivityIrrigation, "2024-01-06"),
	}

	s := AggregateActivities(activities)

	assert.Len(t, s.RecentActivities, 2)
	assert.Equal(t, s.TotalActivities, len(s.RecentActivities))
}

func TestAggregateActivitiesAbsentTypesHaveNoEntry(t *testing.T) {
	s := AggregateActivities([]domain.Activity{act("a1", domain.ActivitySowing, "2024-02-10")})

	_, ok := s.ActivityCounts[domain.ActivityHarvesting]
	assert.False(t, ok, "types absent from input must produce no entry, not zero")
}

func TestAggregateActivitiesIdempotent(t *testing.T) {
	activities := []domain.Activity{
		act("a1", domain.ActivitySowing, "2024-03-01"),
		act("a2", domain.ActivityHarvesting, "2024-04-02"),
	}

	first := AggregateActivities(activities)
	second := AggregateActivities(activities)

	assert.Equal(t, first, second)
}
