package stats

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mkanyika/shamba/internal/domain"
)

// maxSnapshotActivities bounds the recent slice in FarmSnapshot.
const maxSnapshotActivities = 5

// RecordAccess is the narrow seam the composer reads through. Implementations
// must scope every result to farms owned by the acting user and must return
// domain.ErrFarmNotFound when farmID does not resolve for that user; an
// unowned farm and an absent farm are indistinguishable to callers.
//
// List methods return records most-recent-first (date descending, then
// insertion order). The composer relies on this ordering for its recent
// activities slice.
type RecordAccess interface {
	ListActivities(ctx context.Context, farmID string, rng *domain.DateRange) ([]domain.Activity, error)
	ListExpenses(ctx context.Context, farmID string, rng *domain.DateRange) ([]domain.Expense, error)
	ListSales(ctx context.Context, farmID string, rng *domain.DateRange) ([]domain.Sale, error)
	ListHealthRecords(ctx context.Context, farmID string) ([]domain.HealthRecord, error)
}

type FarmSnapshot struct {
	TotalActivities  int               `json:"totalActivities"`
	MonthlyExpenses  float64           `json:"monthlyExpenses"`
	HealthRecords    int               `json:"healthRecords"`
	RecentActivities []domain.Activity `json:"recentActivities"`
}

// ComposeFarmStats assembles the per-farm dashboard snapshot: total activity
// count, expense total for the current calendar month, health record count,
// and the five most recent activities. The three reads are independent and
// issued concurrently; if any one fails the whole snapshot fails. There is
// no partial snapshot. A farm that does not resolve for the acting user
// yields (nil, nil), mirroring record-not-found rather than a system error.
func ComposeFarmStats(ctx context.Context, farmID string, records RecordAccess) (*FarmSnapshot, error) {
	var (
		activities []domain.Activity
		expenses   []domain.Expense
		health     []domain.HealthRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		activities, err = records.ListActivities(gctx, farmID, nil)
		return err
	})
	g.Go(func() error {
		var err error
		// Current month only. No upper bound: a stored date cannot be past
		// today, so the open end is harmless.
		rng := &domain.DateRange{Start: monthStart(time.Now().UTC())}
		expenses, err = records.ListExpenses(gctx, farmID, rng)
		return err
	})
	g.Go(func() error {
		var err error
		health, err = records.ListHealthRecords(gctx, farmID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, domain.ErrFarmNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var monthly float64
	for _, e := range expenses {
		monthly += e.Cost
	}

	n := len(activities)
	if n > maxSnapshotActivities {
		n = maxSnapshotActivities
	}

	return &FarmSnapshot{
		TotalActivities:  len(activities),
		MonthlyExpenses:  monthly,
		HealthRecords:    len(health),
		RecentActivities: append([]domain.Activity{}, activities[:n]...),
	}, nil
}

// monthStart returns the first day of now's month as an ISO date string.
func monthStart(now time.Time) string {
	return now.Format("2006-01") + "-01"
}
