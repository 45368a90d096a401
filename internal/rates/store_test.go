package rates

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/actuclaim/actuclaim/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// memoryRepository is an in-memory Repository for tests.
type memoryRepository struct {
	points  []domain.RatePoint
	saves   int
	loadErr error
	saveErr error
}

func (m *memoryRepository) Load(context.Context) ([]domain.RatePoint, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if len(m.points) == 0 {
		return nil, ErrNoData
	}
	return append([]domain.RatePoint(nil), m.points...), nil
}

func (m *memoryRepository) Save(_ context.Context, points []domain.RatePoint) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.points = append([]domain.RatePoint(nil), points...)
	return nil
}

func (m *memoryRepository) Name() string { return "memory" }

func sampleSeries() []domain.RatePoint {
	return []domain.RatePoint{
		{Date: day(2024, 3, 1), Rate: d("4.90")},
		{Date: day(2024, 1, 1), Rate: d("5.00")},
		{Date: day(2024, 2, 1), Rate: d("4.95")},
		{Date: day(2024, 4, 1), Rate: d("4.80")},
	}
}

func loadedStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(&memoryRepository{points: sampleSeries()})
	require.NoError(t, s.Load(context.Background()))
	return s
}

func TestStore_LoadSortsAscending(t *testing.T) {
	s := loadedStore(t)

	points := s.Points()
	require.Len(t, points, 4)
	for i := 1; i < len(points); i++ {
		assert.True(t, points[i-1].Date.Before(points[i].Date))
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s := NewStore(&memoryRepository{})
	err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoData)

	s = NewStore(&memoryRepository{loadErr: errors.New("disk on fire")})
	err = s.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestStore_AverageRate(t *testing.T) {
	s := loadedStore(t)

	tests := []struct {
		name     string
		start    time.Time
		end      time.Time
		rate     string
		source   string
		points   int
		fallback bool
	}{
		{"whole series", day(2024, 1, 1), day(2024, 4, 1), "4.91", "range", 4, false},
		{"inclusive bounds", day(2024, 2, 1), day(2024, 3, 1), "4.93", "range", 2, false},
		{"single point", day(2024, 1, 15), day(2024, 2, 15), "4.95", "range", 1, false},
		{"before earliest", day(2023, 1, 1), day(2023, 6, 1), "5.00", "earliest", 0, false},
		{"after latest", day(2024, 5, 1), day(2024, 6, 1), "4.80", "latest", 0, false},
		{"gap inside series", day(2024, 1, 2), day(2024, 1, 20), "2.5", "default", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := s.AverageRate(tt.start, tt.end)
			assert.True(t, l.Rate.Equal(d(tt.rate)), "got %s", l.Rate)
			assert.Equal(t, tt.source, l.Source)
			assert.Equal(t, tt.points, l.Points)
			assert.Equal(t, tt.fallback, l.Fallback)
		})
	}
}

func TestStore_AverageRateEmptySeries(t *testing.T) {
	s := NewStore(&memoryRepository{})

	l := s.AverageRate(day(2024, 1, 1), day(2024, 6, 1))
	assert.True(t, l.Fallback)
	assert.Equal(t, "default", l.Source)
	assert.True(t, l.Rate.Equal(DefaultRatePercent))
}

func TestStore_Upsert(t *testing.T) {
	s := loadedStore(t)

	added, updated := s.Upsert([]domain.RatePoint{
		{Date: day(2024, 2, 1), Rate: d("4.95")},
		{Date: day(2024, 3, 1), Rate: d("4.85")},
		{Date: time.Date(2024, 5, 1, 17, 30, 0, 0, time.UTC), Rate: d("4.70")},
	})
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, updated)

	rate, ok := s.Rate(day(2024, 3, 1))
	require.True(t, ok)
	assert.True(t, rate.Equal(d("4.85")))

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, day(2024, 5, 1), latest.Date)
	assert.Equal(t, 5, s.Len())
}

func TestStore_SaveNewestFirst(t *testing.T) {
	repo := &memoryRepository{points: sampleSeries()}
	s := NewStore(repo)
	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.Save(context.Background()))

	require.Len(t, repo.points, 4)
	assert.Equal(t, day(2024, 4, 1), repo.points[0].Date)
	assert.Equal(t, day(2024, 1, 1), repo.points[3].Date)
}

func TestStore_Statistics(t *testing.T) {
	s := loadedStore(t)
	stats := s.Statistics()

	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, day(2024, 1, 1), stats.Earliest)
	assert.Equal(t, day(2024, 4, 1), stats.Latest)
	assert.True(t, stats.Mean.Equal(d("4.9125")), "mean %s", stats.Mean)
	assert.True(t, stats.Median.Equal(d("4.925")), "median %s", stats.Median)
	assert.True(t, stats.Min.Equal(d("4.80")))
	assert.True(t, stats.Max.Equal(d("5.00")))
	assert.Empty(t, stats.MissingMonths)

	assert.Equal(t, Statistics{}, NewStore(&memoryRepository{}).Statistics())
}

func TestStore_ValidateDataQuality(t *testing.T) {
	repo := &memoryRepository{points: []domain.RatePoint{
		{Date: day(2024, 1, 1), Rate: d("5")},
		{Date: day(2024, 1, 2), Rate: d("-0.1")},
		{Date: day(2024, 4, 1), Rate: d("40")},
	}}
	s := NewStore(repo)
	require.NoError(t, s.Load(context.Background()))

	issues, err := s.ValidateDataQuality()
	require.NoError(t, err)
	require.Len(t, issues, 3)
	assert.Contains(t, issues[0], "Negative rate")
	assert.Contains(t, issues[1], "Implausible rate")
	assert.Contains(t, issues[2], "Gap of 90 days")

	stats := s.Statistics()
	assert.Equal(t, []string{"2024-02", "2024-03"}, stats.MissingMonths)

	_, err = NewStore(&memoryRepository{}).ValidateDataQuality()
	assert.ErrorIs(t, err, ErrNoData)
}
