package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkanyika/shamba/internal/domain"
)

func TestActivityStoreCreate(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	activities := NewActivityStore(d)

	a, err := activities.Create(ctx, owner.ID, domain.Activity{
		FarmID:      farm.ID,
		Type:        domain.ActivitySowing,
		Description: "sowed two rows of maize",
		CropName:    "maize",
		Date:        "2024-03-01",
		Metadata:    &domain.ActivityMetadata{DurationHours: 3, AreaAcres: 0.5, Materials: []string{"DK777 seed"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, domain.ActivitySowing, a.Type)
	require.NotNil(t, a.Metadata)
	assert.Equal(t, 3.0, a.Metadata.DurationHours)
	assert.Equal(t, []string{"DK777 seed"}, a.Metadata.Materials)
}

func TestActivityStoreCreateUnownedFarm(t *testing.T) {
	d := openTestDB(t)
	_, farm := seedFarm(t, d)
	other, _ := seedOtherUser(t, d)
	ctx := context.Background()

	_, err := NewActivityStore(d).Create(ctx, other.ID, domain.Activity{
		FarmID: farm.ID,
		Type:   domain.ActivityWeeding,
		Date:   "2024-03-02",
	})
	assert.ErrorIs(t, err, domain.ErrFarmNotFound)
}

func TestActivityStoreListOrdering(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	activities := NewActivityStore(d)

	for _, date := range []string{"2024-03-01", "2024-03-20", "2024-03-10"} {
		_, err := activities.Create(ctx, owner.ID, domain.Activity{
			FarmID: farm.ID, Type: domain.ActivityIrrigation, Date: date,
		})
		require.NoError(t, err)
	}

	list, err := activities.List(ctx, owner.ID, farm.ID, nil, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-03-20", list[0].Date)
	assert.Equal(t, "2024-03-10", list[1].Date)
	assert.Equal(t, "2024-03-01", list[2].Date)
}

func TestActivityStoreListDateRange(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	activities := NewActivityStore(d)

	for _, date := range []string{"2024-02-28", "2024-03-01", "2024-03-31", "2024-04-01"} {
		_, err := activities.Create(ctx, owner.ID, domain.Activity{
			FarmID: farm.ID, Type: domain.ActivitySpraying, Date: date,
		})
		require.NoError(t, err)
	}

	rng := &domain.DateRange{Start: "2024-03-01", End: "2024-03-31"}
	list, err := activities.List(ctx, owner.ID, farm.ID, rng, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-31", list[0].Date)
	assert.Equal(t, "2024-03-01", list[1].Date)
}

func TestActivityStoreListLimit(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	activities := NewActivityStore(d)

	for _, date := range []string{"2024-05-01", "2024-05-02", "2024-05-03"} {
		_, err := activities.Create(ctx, owner.ID, domain.Activity{
			FarmID: farm.ID, Type: domain.ActivityWeeding, Date: date,
		})
		require.NoError(t, err)
	}

	list, err := activities.List(ctx, owner.ID, farm.ID, nil, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestActivityStoreListUnownedFarm(t *testing.T) {
	d := openTestDB(t)
	_, farm := seedFarm(t, d)
	other, _ := seedOtherUser(t, d)
	ctx := context.Background()

	_, err := NewActivityStore(d).List(ctx, other.ID, farm.ID, nil, 0)
	assert.ErrorIs(t, err, domain.ErrFarmNotFound)
}

func TestActivityStoreUpdateAndDelete(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	other, _ := seedOtherUser(t, d)
	ctx := context.Background()
	activities := NewActivityStore(d)

	a, err := activities.Create(ctx, owner.ID, domain.Activity{
		FarmID: farm.ID, Type: domain.ActivityHarvesting, Date: "2024-06-10", CropName: "maize",
	})
	require.NoError(t, err)

	a.Description = "harvested the north rows"
	updated, err := activities.Update(ctx, owner.ID, *a)
	require.NoError(t, err)
	assert.Equal(t, "harvested the north rows", updated.Description)

	// A different user cannot touch it.
	_, err = activities.Update(ctx, other.ID, *a)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	err = activities.Delete(ctx, other.ID, a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, activities.Delete(ctx, owner.ID, a.ID))
	list, err := activities.List(ctx, owner.ID, farm.ID, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, list)
}
