package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkanyika/shamba/internal/db"
	"github.com/mkanyika/shamba/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// seedFarm creates a user and one farm owned by it, returning both.
func seedFarm(t *testing.T, d *sql.DB) (*domain.User, *domain.Farm) {
	t.Helper()
	ctx := context.Background()

	user, err := NewUserStore(d).Create(ctx, "farmer@example.com")
	require.NoError(t, err)

	farm, err := NewFarmStore(d).Create(ctx, user.ID, domain.Farm{
		Name:          "River Plot",
		Location:      domain.Location{District: "Kilifi", Village: "Mtondia"},
		LandSizeAcres: 2.5,
		SoilType:      "loam",
		PrimaryCrops:  []string{"maize", "beans"},
	})
	require.NoError(t, err)
	return user, farm
}

// seedOtherUser creates a second user with their own farm, for ownership
// scoping tests.
func seedOtherUser(t *testing.T, d *sql.DB) (*domain.User, *domain.Farm) {
	t.Helper()
	ctx := context.Background()

	user, err := NewUserStore(d).Create(ctx, "neighbour@example.com")
	require.NoError(t, err)

	farm, err := NewFarmStore(d).Create(ctx, user.ID, domain.Farm{
		Name:          "Hill Plot",
		LandSizeAcres: 1.0,
	})
	require.NoError(t, err)
	return user, farm
}
