package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkanyika/shamba/internal/domain"
)

func TestExpenseStoreCreateAndList(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	expenses := NewExpenseStore(d)

	e, err := expenses.Create(ctx, owner.ID, domain.Expense{
		FarmID:   farm.ID,
		Category: domain.ExpenseSeeds,
		ItemName: "hybrid maize seed",
		Quantity: 10,
		Unit:     "kg",
		Cost:     120.50,
		Date:     "2024-03-05",
		Notes:    "agrovet in town",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, 120.50, e.Cost)

	list, err := expenses.List(ctx, owner.ID, farm.ID, nil, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "hybrid maize seed", list[0].ItemName)
}

func TestExpenseStoreDateRangeInclusive(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	expenses := NewExpenseStore(d)

	for _, date := range []string{"2024-03-01", "2024-03-31", "2024-04-01"} {
		_, err := expenses.Create(ctx, owner.ID, domain.Expense{
			FarmID: farm.ID, Category: domain.ExpenseLabor, ItemName: "casual labor", Cost: 10, Date: date,
		})
		require.NoError(t, err)
	}

	rng := &domain.DateRange{Start: "2024-03-01", End: "2024-03-31"}
	list, err := expenses.List(ctx, owner.ID, farm.ID, rng, 0)
	require.NoError(t, err)
	require.Len(t, list, 2, "both boundary dates in, the day after out")
	for _, e := range list {
		assert.True(t, rng.Contains(e.Date))
	}
}

func TestExpenseStoreOpenEndedRange(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	expenses := NewExpenseStore(d)

	for _, date := range []string{"2024-02-15", "2024-03-02"} {
		_, err := expenses.Create(ctx, owner.ID, domain.Expense{
			FarmID: farm.ID, Category: domain.ExpenseOther, ItemName: "misc", Cost: 5, Date: date,
		})
		require.NoError(t, err)
	}

	list, err := expenses.List(ctx, owner.ID, farm.ID, &domain.DateRange{Start: "2024-03-01"}, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "2024-03-02", list[0].Date)
}

func TestExpenseStoreUnownedFarm(t *testing.T) {
	d := openTestDB(t)
	_, farm := seedFarm(t, d)
	other, _ := seedOtherUser(t, d)
	ctx := context.Background()

	_, err := NewExpenseStore(d).List(ctx, other.ID, farm.ID, nil, 0)
	assert.ErrorIs(t, err, domain.ErrFarmNotFound)
}
