package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkanyika/shamba/internal/domain"
)

func TestFarmStoreCreate(t *testing.T) {
	d := openTestDB(t)
	_, farm := seedFarm(t, d)

	assert.NotEmpty(t, farm.ID)
	assert.Equal(t, "River Plot", farm.Name)
	assert.Equal(t, "Kilifi", farm.Location.District)
	assert.Equal(t, 2.5, farm.LandSizeAcres)
	assert.Equal(t, []string{"maize", "beans"}, farm.PrimaryCrops)
	assert.False(t, farm.CreatedAt.IsZero())
}

func TestFarmStoreGetByIDScopedToOwner(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	other, _ := seedOtherUser(t, d)
	ctx := context.Background()
	farms := NewFarmStore(d)

	got, err := farms.GetByID(ctx, owner.ID, farm.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, farm.ID, got.ID)

	// Another user sees nothing, not an error.
	got, err = farms.GetByID(ctx, other.ID, farm.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFarmStoreListByUser(t *testing.T) {
	d := openTestDB(t)
	owner, _ := seedFarm(t, d)
	seedOtherUser(t, d)
	ctx := context.Background()
	farms := NewFarmStore(d)

	_, err := farms.Create(ctx, owner.ID, domain.Farm{Name: "Second Plot", LandSizeAcres: 0.8})
	require.NoError(t, err)

	list, err := farms.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestFarmStoreUpdate(t *testing.T) {
	d := openTestDB(t)
	owner, farm := seedFarm(t, d)
	ctx := context.Background()
	farms := NewFarmStore(d)

	farm.Name = "River Plot East"
	farm.IrrigationType = "drip"
	farm.PrimaryCrops = []string{"tomato"}

	updated, err := farms.Update(ctx, owner.ID, *farm)
	require.NoError(t, err)
	assert.Equal(t, "River Plot East", updated.Name)
	assert.Equal(t, "drip", updated.IrrigationType)
	assert.Equal(t, []string{"tomato"}, updated.PrimaryCrops)
}

func TestFarmStoreUpdateUnownedFarm(t *testing.T) {
	d := openTestDB(t)
	_, farm := seedFarm(t, d)
	other, _ := seedOtherUser(t, d)
	ctx := context.Background()

	farm.Name = "Hijacked"
	_, err := NewFarmStore(d).Update(ctx, other.ID, *farm)
	assert.ErrorIs(t, err, domain.ErrFarmNotFound)
}
