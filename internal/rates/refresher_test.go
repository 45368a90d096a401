package rates

import (
	"context"
	"testing"
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticFetcher(rates map[time.Time]decimal.Decimal) (Fetcher, *int) {
	calls := 0
	return FetcherFunc(func(_ context.Context, start, end time.Time) map[time.Time]decimal.Decimal {
		calls++
		out := make(map[time.Time]decimal.Decimal)
		for day, rate := range rates {
			if !day.Before(start) && !day.After(end) {
				out[day] = rate
			}
		}
		return out
	}), &calls
}

func newTestRefresher(repo *memoryRepository, fetcher Fetcher, today time.Time) *Refresher {
	r := NewRefresher(NewStore(repo), fetcher)
	r.Now = func() time.Time { return today.Add(9 * time.Hour) }
	return r
}

func TestWindows(t *testing.T) {
	tests := []struct {
		name     string
		today    time.Time
		expected []Window
	}{
		{
			name:  "mid month",
			today: day(2024, 6, 20),
			expected: []Window{
				{day(2024, 6, 20), day(2024, 6, 20)},
				{day(2024, 6, 13), day(2024, 6, 20)},
				{day(2024, 5, 21), day(2024, 6, 20)},
			},
		},
		{
			name:  "start of month",
			today: day(2024, 3, 3),
			expected: []Window{
				{day(2024, 3, 3), day(2024, 3, 3)},
				{day(2024, 2, 25), day(2024, 3, 3)},
				{day(2024, 2, 2), day(2024, 3, 3)},
				{day(2024, 2, 24), day(2024, 2, 29)},
			},
		},
		{
			name:  "around the 15th",
			today: day(2024, 6, 16),
			expected: []Window{
				{day(2024, 6, 16), day(2024, 6, 16)},
				{day(2024, 6, 9), day(2024, 6, 16)},
				{day(2024, 5, 17), day(2024, 6, 16)},
				{day(2024, 6, 13), day(2024, 6, 17)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Windows(tt.today))
		})
	}
}

func TestAnchors(t *testing.T) {
	assert.Equal(t, []time.Time{day(2024, 6, 1), day(2024, 6, 15), day(2024, 5, 31), day(2024, 6, 10)}, Anchors(day(2024, 6, 10)))
	assert.Equal(t, []time.Time{day(2024, 6, 1), day(2024, 6, 15), day(2024, 6, 20)}, Anchors(day(2024, 6, 20)))
}

func TestRefresh_MergesAndFillsAnchors(t *testing.T) {
	repo := &memoryRepository{points: []domain.RatePoint{
		{Date: day(2024, 5, 1), Rate: d("4.80")},
		{Date: day(2024, 6, 3), Rate: d("4.00")},
	}}
	fetcher, calls := staticFetcher(map[time.Time]decimal.Decimal{
		day(2024, 6, 3):  d("4.66"),
		day(2024, 6, 14): d("4.60"),
		day(2024, 6, 19): d("4.58"),
	})
	r := newTestRefresher(repo, fetcher, day(2024, 6, 20))

	report, err := r.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, *calls)
	assert.Equal(t, 3, report.Fetched)
	assert.Equal(t, 1, report.Updated)
	// 06-14 and 06-19 fetched, then anchors 06-01 (from 06-03), 06-15 (from 06-14) and today (from 06-19)
	assert.Equal(t, 5, report.Added)
	assert.Equal(t, []time.Time{day(2024, 6, 1), day(2024, 6, 15), day(2024, 6, 20)}, report.AnchorsFilled)
	assert.True(t, report.Saved)
	assert.Equal(t, 1, repo.saves)

	rate, ok := r.Store.Rate(day(2024, 6, 1))
	require.True(t, ok)
	assert.True(t, rate.Equal(d("4.66")))
	rate, _ = r.Store.Rate(day(2024, 6, 15))
	assert.True(t, rate.Equal(d("4.60")))
	rate, _ = r.Store.Rate(day(2024, 6, 3))
	assert.True(t, rate.Equal(d("4.66")), "fetched rate wins over stored")

	// persisted newest first
	assert.Equal(t, day(2024, 6, 20), repo.points[0].Date)
	assert.Equal(t, day(2024, 5, 1), repo.points[len(repo.points)-1].Date)
}

// The 15th is only filled once it has arrived, even when a neighbour is in range.
func TestRefresh_SkipsAnchorsAfterToday(t *testing.T) {
	repo := &memoryRepository{}
	fetcher, _ := staticFetcher(map[time.Time]decimal.Decimal{
		day(2024, 6, 7):  d("4.70"),
		day(2024, 6, 10): d("4.65"),
	})
	r := newTestRefresher(repo, fetcher, day(2024, 6, 10))

	report, err := r.Refresh(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.AnchorsFilled)
	_, ok := r.Store.Rate(day(2024, 6, 15))
	assert.False(t, ok)
	assert.Equal(t, 2, r.Store.Len())
}

func TestRefresh_IsIdempotent(t *testing.T) {
	repo := &memoryRepository{points: []domain.RatePoint{{Date: day(2024, 5, 1), Rate: d("4.80")}}}
	fetcher, _ := staticFetcher(map[time.Time]decimal.Decimal{
		day(2024, 6, 14): d("4.60"),
		day(2024, 6, 19): d("4.58"),
	})

	_, err := newTestRefresher(repo, fetcher, day(2024, 6, 20)).Refresh(context.Background())
	require.NoError(t, err)
	snapshot := append([]domain.RatePoint(nil), repo.points...)
	require.Equal(t, 1, repo.saves)

	report, err := newTestRefresher(repo, fetcher, day(2024, 6, 20)).Refresh(context.Background())
	require.NoError(t, err)

	assert.False(t, report.Changed())
	assert.False(t, report.Saved)
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, snapshot, repo.points)
}

func TestRefresh_CarriesLatestForward(t *testing.T) {
	repo := &memoryRepository{points: []domain.RatePoint{{Date: day(2024, 6, 10), Rate: d("4.70")}}}
	fetcher, _ := staticFetcher(nil)
	r := newTestRefresher(repo, fetcher, day(2024, 6, 20))

	report, err := r.Refresh(context.Background())
	require.NoError(t, err)

	assert.True(t, report.CarriedForward)
	assert.True(t, report.Saved)
	rate, ok := r.Store.Rate(day(2024, 6, 20))
	require.True(t, ok)
	assert.True(t, rate.Equal(d("4.70")))

	// a second run on the same day changes nothing
	report, err = newTestRefresher(repo, fetcher, day(2024, 6, 20)).Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, report.CarriedForward)
	assert.False(t, report.Saved)
}

func TestRefresh_NothingAvailable(t *testing.T) {
	repo := &memoryRepository{}
	fetcher, _ := staticFetcher(nil)

	report, err := newTestRefresher(repo, fetcher, day(2024, 6, 20)).Refresh(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Saved)
	assert.Equal(t, 0, repo.saves)
}

func TestRefresh_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetcher, calls := staticFetcher(nil)

	_, err := newTestRefresher(&memoryRepository{}, fetcher, day(2024, 6, 20)).Refresh(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, *calls)
}
