package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkanyika/shamba/internal/domain"
)

func TestSaleStoreCreateAndList(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	sales := NewSaleStore(d)

	sale := domain.NewSale(farm.ID, "maize", 200, "kg", 0.45, "2024-07-15",
		&domain.BuyerInfo{Name: "Mnarok Traders", Contact: "+254700000000"})
	created, err := sales.Create(ctx, owner.ID, sale)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 90.0, created.TotalAmount)
	require.NotNil(t, created.Buyer)
	assert.Equal(t, "Mnarok Traders", created.Buyer.Name)

	list, err := sales.List(ctx, owner.ID, farm.ID, nil, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.TotalAmount, list[0].TotalAmount)
}

func TestSaleStoreNoBuyer(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	sales := NewSaleStore(d)

	created, err := sales.Create(ctx, owner.ID, domain.NewSale(farm.ID, "beans", 30, "kg", 1.2, "2024-07-20", nil))
	require.NoError(t, err)
	assert.Nil(t, created.Buyer)
}

func TestSaleStoreDateRangeOnSaleDate(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	sales := NewSaleStore(d)

	for _, date := range []string{"2024-06-30", "2024-07-01", "2024-07-31"} {
		_, err := sales.Create(ctx, owner.ID, domain.NewSale(farm.ID, "maize", 10, "kg", 1, date, nil))
		require.NoError(t, err)
	}

	list, err := sales.List(ctx, owner.ID, farm.ID, &domain.DateRange{Start: "2024-07-01", End: "2024-07-31"}, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSaleStoreUnownedFarm(t *testing.T) {
	d := openTestDB(t)
	_, farm := seedFarm(t, d)
	other, _ := seedOtherUser(t, d)
	ctx := context.Background()

	_, err := NewSaleStore(d).Create(ctx, other.ID, domain.NewSale(farm.ID, "maize", 10, "kg", 1, "2024-07-01", nil))
	assert.ErrorIs(t, err, domain.ErrFarmNotFound)
}
